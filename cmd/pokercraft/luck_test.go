package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/pokercraft-core/pkg/luck"
)

func TestLuckCommand_InlineSamples(t *testing.T) {
	var rep luckReport
	runJSON(t, &rep, "luck", "--sample", "0.5:1", "--sample", "0.5:0")

	assert.Equal(t, 2, rep.Samples)
	assert.InDelta(t, 1.0, rep.Expected, 1e-12)
	assert.InDelta(t, 1.0, rep.Observed, 1e-12)
	assert.InDelta(t, 0.0, rep.ZScore, 1e-12)
	assert.InDelta(t, 0.75, rep.Tails.Upper, 1e-9)
	assert.InDelta(t, 0.75, rep.Tails.Lower, 1e-9)
	assert.InDelta(t, 1.0, rep.Tails.TwoSided, 1e-9)
}

func TestLuckCommand_SamplesFile(t *testing.T) {
	path := writeFile(t, "allins.yaml", "- {equity: 1, outcome: 1}\n- {equity: 0.5, outcome: 1}\n")

	var rep luckReport
	runJSON(t, &rep, "luck", path)

	assert.Equal(t, 2, rep.Samples)
	assert.InDelta(t, 1.5, rep.Expected, 1e-12)
	assert.InDelta(t, 2.0, rep.Observed, 1e-12)
	assert.InDelta(t, 1.0, rep.ZScore, 1e-12)
	assert.InDelta(t, 0.5, rep.Tails.Upper, 1e-9)
	assert.InDelta(t, 1.0, rep.Tails.Lower, 1e-9)
}

func TestLuckCommand_JSONSamplesFileWithInline(t *testing.T) {
	path := writeFile(t, "allins.json", `[{"equity": 0.5, "outcome": 0}]`)

	var rep luckReport
	runJSON(t, &rep, "luck", path, "--sample", "0.5:1")
	assert.Equal(t, 2, rep.Samples)
	assert.InDelta(t, 1.0, rep.Observed, 1e-12)
}

func TestLuckCommand_Errors(t *testing.T) {
	_, _, err := run(t, "luck", "--sample", "1.5:1")
	assert.True(t, errors.Is(err, luck.ErrInvalidEquityBound), "got %v", err)

	_, _, err = run(t, "luck", "--sample", "1:0")
	assert.True(t, errors.Is(err, luck.ErrImpossibleOutcome), "got %v", err)

	_, _, err = run(t, "luck", "--sample", "0.5")
	assert.Error(t, err)

	_, _, err = run(t, "luck", "--sample", "half:1")
	assert.Error(t, err)

	_, _, err = run(t, "luck")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no samples")
}

func TestParseSample(t *testing.T) {
	s, err := parseSample(" 0.25 : 0.5 ")
	require.NoError(t, err)
	assert.Equal(t, luck.Sample{Equity: 0.25, Outcome: 0.5}, s)
}
