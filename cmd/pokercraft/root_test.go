package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the CLI with args and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, _, err := run(t, append(args, "-o", "json")...)
	require.NoError(t, err)
	require.NoError(t, jsoniter.UnmarshalFromString(out, v), out)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_UnknownOutputFormat(t *testing.T) {
	_, _, err := run(t, "luck", "--sample", "0.5:1", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRoot_UnknownLogLevel(t *testing.T) {
	_, _, err := run(t, "luck", "--sample", "0.5:1", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log level")
}

func TestRoot_DebugLogsGoToStderr(t *testing.T) {
	t.Setenv("COLORIZE_LOG", "false")
	stdout, stderr, err := run(t, "luck", "--sample", "0.5:1", "--log-level", "debug", "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, stderr, "configuration loaded")
	assert.NotContains(t, stdout, "configuration loaded")
}

func TestRoot_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "pokercraft.yaml", "output: yaml\n")
	out, _, err := run(t, "luck", "--sample", "0.5:1", "--sample", "0.5:0", "--config", cfg)
	require.NoError(t, err)

	var rep luckReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep), out)
	assert.Equal(t, 2, rep.Samples)
}

func TestRoot_FlagOverridesConfigFile(t *testing.T) {
	cfg := writeFile(t, "pokercraft.yaml", "output: yaml\n")
	var rep luckReport
	runJSON(t, &rep, "luck", "--sample", "0.5:1", "--config", cfg)
	assert.Equal(t, 1, rep.Samples)
}

func TestRoot_Env(t *testing.T) {
	t.Setenv("POKERCRAFT_OUTPUT", "yaml")
	out, _, err := run(t, "luck", "--sample", "0.25:0")
	require.NoError(t, err)

	var rep luckReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep), out)
	assert.InDelta(t, 0.25, rep.Expected, 1e-12)
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, _, err := run(t, "luck", "--sample", "0.5:1", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
