package equity

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/behrlich/pokercraft-core/pkg/notation"
)

// ErrInvalidCacheFile is returned when a cache file cannot be decoded
var ErrInvalidCacheFile = errors.New("invalid heads-up cache file")

// HUBoards is the number of boards dealt to one heads-up preflop matchup, C(48, 5)
const HUBoards = 1712304

// WinLose is a heads-up preflop showdown tally from one player's side
type WinLose struct {
	Win  uint64
	Lose uint64
	Tie  uint64
}

// Total returns the number of boards
func (w WinLose) Total() uint64 { return w.Win + w.Lose + w.Tie }

// Equity returns the pot share, counting ties as half
func (w WinLose) Equity() float64 {
	if w.Total() == 0 {
		return 0
	}
	return (float64(w.Win) + float64(w.Tie)/2) / float64(w.Total())
}

// Swap returns the tally from the opponent's side
func (w WinLose) Swap() WinLose {
	return WinLose{Win: w.Lose, Lose: w.Win, Tie: w.Tie}
}

type pairKey struct {
	a, b notation.Combo
}

// orderPair returns the stored key for (a, b) and whether b is stored first
func orderPair(a, b notation.Combo) (pairKey, bool) {
	a, b = a.Canonical(), b.Canonical()
	if comboLess(b, a) {
		return pairKey{a: b, b: a}, true
	}
	return pairKey{a: a, b: b}, false
}

func comboLess(x, y notation.Combo) bool {
	if x.Card1 != y.Card1 {
		return x.Card1.Index() < y.Card1.Index()
	}
	return x.Card2.Index() < y.Card2.Index()
}

// HUPreflopCache stores preflop heads-up tallies keyed by an unordered pair of hands.
// It is safe for concurrent use.
type HUPreflopCache struct {
	mu      sync.RWMutex
	entries map[pairKey]WinLose
	opts    []Option
	logger  zerolog.Logger
}

// NewHUPreflopCache returns an empty cache. opts are passed to Compute by Build.
func NewHUPreflopCache(opts ...Option) *HUPreflopCache {
	return &HUPreflopCache{
		entries: make(map[pairKey]WinLose),
		opts:    opts,
		logger:  buildOptions(opts).logger,
	}
}

// Len returns the number of stored pairs
func (c *HUPreflopCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Get returns the tally of a against b
func (c *HUPreflopCache) Get(a, b notation.Combo) (WinLose, bool) {
	key, swapped := orderPair(a, b)

	c.mu.RLock()
	wl, ok := c.entries[key]
	c.mu.RUnlock()

	if swapped {
		wl = wl.Swap()
	}
	return wl, ok
}

// Put stores the tally of a against b
func (c *HUPreflopCache) Put(a, b notation.Combo, wl WinLose) {
	key, swapped := orderPair(a, b)
	if swapped {
		wl = wl.Swap()
	}

	c.mu.Lock()
	c.entries[key] = wl
	c.mu.Unlock()
}

// Pairs returns every distinct unordered pair of non-overlapping hands with
// one hand from each range
func Pairs(hero, villain []notation.Combo) [][2]notation.Combo {
	seen := make(map[pairKey]bool)
	var pairs [][2]notation.Combo
	for _, a := range hero {
		for _, b := range villain {
			if a.Card1 == b.Card1 || a.Card1 == b.Card2 || a.Card2 == b.Card1 || a.Card2 == b.Card2 {
				continue
			}
			key, _ := orderPair(a, b)
			if seen[key] {
				continue
			}
			seen[key] = true
			pairs = append(pairs, [2]notation.Combo{a, b})
		}
	}
	return pairs
}

// Build computes and stores every pair not already cached. progress, if not
// nil, is called after each pair with the number of pairs handled so far.
// Cancellation is checked between pairs.
func (c *HUPreflopCache) Build(ctx context.Context, pairs [][2]notation.Combo, progress func(done int)) error {
	computed := 0
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, ok := c.Get(p[0], p[1]); !ok {
			res, err := ComputeContext(ctx, p[:], nil, c.opts...)
			if err != nil {
				return errors.Wrapf(err, "pair %s vs %s", p[0], p[1])
			}
			wins, lose, err := res.WinLosses(0)
			if err != nil {
				return err
			}
			c.Put(p[0], p[1], WinLose{Win: wins[0], Lose: lose, Tie: wins[1]})
			computed++
		}

		if progress != nil {
			progress(i + 1)
		}
	}

	c.logger.Debug().
		Int("pairs", len(pairs)).
		Int("computed", computed).
		Int("size", c.Len()).
		Msg("heads-up cache built")
	return nil
}

// Save writes the cache as gzip-compressed lines "AsAd KsKd win lose tie",
// sorted for stable output
func (c *HUPreflopCache) Save(w io.Writer) error {
	c.mu.RLock()
	lines := make([]string, 0, len(c.entries))
	for key, wl := range c.entries {
		lines = append(lines, fmt.Sprintf("%s %s %d %d %d", key.a, key.b, wl.Win, wl.Lose, wl.Tie))
	}
	c.mu.RUnlock()
	sort.Strings(lines)

	zw := gzip.NewWriter(w)
	closed := false
	defer func() {
		if !closed {
			zw.Close()
		}
	}()

	bw := bufio.NewWriter(zw)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return errors.Wrap(err, "write cache")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush cache")
	}
	closed = true
	return errors.Wrap(zw.Close(), "close gzip stream")
}

// Load reads entries written by Save into the cache
func (c *HUPreflopCache) Load(r io.Reader) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrapf(ErrInvalidCacheFile, "gzip: %v", err)
	}
	defer zr.Close()

	scanner := bufio.NewScanner(zr)
	lineNo := 0
	loaded := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		a, b, wl, err := parseCacheLine(line)
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
		c.Put(a, b, wl)
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(ErrInvalidCacheFile, "read: %v", err)
	}

	c.logger.Debug().Int("entries", loaded).Msg("heads-up cache loaded")
	return nil
}

func parseCacheLine(line string) (notation.Combo, notation.Combo, WinLose, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return notation.Combo{}, notation.Combo{}, WinLose{}, errors.Wrapf(ErrInvalidCacheFile, "expected 5 fields, got %d", len(fields))
	}

	a, err := notation.ParseCombo(fields[0])
	if err != nil {
		return notation.Combo{}, notation.Combo{}, WinLose{}, errors.Wrapf(ErrInvalidCacheFile, "%v", err)
	}
	b, err := notation.ParseCombo(fields[1])
	if err != nil {
		return notation.Combo{}, notation.Combo{}, WinLose{}, errors.Wrapf(ErrInvalidCacheFile, "%v", err)
	}
	if a.Card1 == b.Card1 || a.Card1 == b.Card2 || a.Card2 == b.Card1 || a.Card2 == b.Card2 {
		return notation.Combo{}, notation.Combo{}, WinLose{}, errors.Wrapf(ErrInvalidCacheFile, "%s and %s share a card", a, b)
	}

	var counts [3]uint64
	for i := range counts {
		counts[i], err = strconv.ParseUint(fields[2+i], 10, 64)
		if err != nil {
			return notation.Combo{}, notation.Combo{}, WinLose{}, errors.Wrapf(ErrInvalidCacheFile, "count %q", fields[2+i])
		}
	}

	wl := WinLose{Win: counts[0], Lose: counts[1], Tie: counts[2]}
	if wl.Total() != HUBoards {
		return notation.Combo{}, notation.Combo{}, WinLose{}, errors.Wrapf(ErrInvalidCacheFile, "%d boards, want %d", wl.Total(), HUBoards)
	}
	return a, b, wl, nil
}

// LoadFile loads a cache file from disk into the cache
func (c *HUPreflopCache) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open cache file")
	}
	defer f.Close()
	return c.Load(f)
}

// SaveFile writes the cache to disk, replacing any existing file
func (c *HUPreflopCache) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create cache file")
	}
	if err := c.Save(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close cache file")
}
