package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/pokercraft-core/pkg/equity"
	"github.com/behrlich/pokercraft-core/pkg/notation"
)

func seedCache(t *testing.T, path string, a, b string, wl equity.WinLose) {
	t.Helper()
	hero, err := notation.ParseCombo(a)
	require.NoError(t, err)
	villain, err := notation.ParseCombo(b)
	require.NoError(t, err)

	cache := equity.NewHUPreflopCache()
	cache.Put(hero, villain, wl)
	require.NoError(t, cache.SaveFile(path))
}

func TestHUCacheCommand_QueryBothOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hu.txt.gz")
	seedCache(t, path, "AsAd", "KsKd", equity.WinLose{Win: 1284228, Lose: 428076})

	var rep cacheEntryReport
	runJSON(t, &rep, "hucache", "query", "AsAd", "KsKd", "--file", path)
	assert.Equal(t, uint64(1284228), rep.Win)
	assert.Equal(t, uint64(428076), rep.Lose)
	assert.InDelta(t, 0.75, rep.Equity, 1e-12)

	var swapped cacheEntryReport
	runJSON(t, &swapped, "hucache", "query", "KsKd", "AsAd", "--file", path)
	assert.Equal(t, "KsKd", swapped.Hero)
	assert.Equal(t, uint64(428076), swapped.Win)
	assert.Equal(t, uint64(1284228), swapped.Lose)
	assert.InDelta(t, 0.25, swapped.Equity, 1e-12)
}

func TestHUCacheCommand_QueryMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hu.txt.gz")
	seedCache(t, path, "AsAd", "KsKd", equity.WinLose{Win: equity.HUBoards})

	_, _, err := run(t, "hucache", "query", "AsAd", "QsQd", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not cached")

	_, _, err = run(t, "hucache", "query", "AsAd", "KsKd", "--file", filepath.Join(t.TempDir(), "none.gz"))
	assert.Error(t, err)
}

func TestHUCacheCommand_BuildSkipsCachedPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hu.txt.gz")
	seedCache(t, path, "AsAd", "KsKd", equity.WinLose{Win: 5, Lose: equity.HUBoards - 7, Tie: 2})

	var rep cacheBuildReport
	runJSON(t, &rep, "hucache", "build", "--hero", "AsAd", "--villain", "KsKd,AsKs", "--file", path)
	assert.Equal(t, 1, rep.Pairs)
	assert.Equal(t, 1, rep.Entries)

	// the seeded counts survive because nothing was recomputed
	var entry cacheEntryReport
	runJSON(t, &entry, "hucache", "query", "KsKd", "AsAd", "--file", path)
	assert.Equal(t, uint64(equity.HUBoards-7), entry.Win)
}

func TestHUCacheCommand_Build(t *testing.T) {
	if testing.Short() {
		t.Skip("enumerates 1.7M boards")
	}
	path := filepath.Join(t.TempDir(), "hu.txt.gz")

	var rep cacheBuildReport
	runJSON(t, &rep, "hucache", "build", "--hero", "AsAd", "--villain", "KsKd", "--file", path, "--quiet")
	assert.Equal(t, 1, rep.Entries)

	var entry cacheEntryReport
	runJSON(t, &entry, "hucache", "query", "AsAd", "KsKd", "--file", path)
	assert.Equal(t, uint64(equity.HUBoards), entry.Win+entry.Lose+entry.Tie)
	assert.InDelta(t, 0.8236+0.0054/2, entry.Equity, 1e-4)
}

func TestHUCacheCommand_BuildBadRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hu.txt.gz")
	_, _, err := run(t, "hucache", "build", "--hero", "AK", "--villain", "KK", "--file", path)
	assert.Error(t, err)
}
