package chembl

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

// InChI strings for large molecules run long; give the scanner headroom.
const maxLineBytes = 1 << 20

// Stats counts what a single load saw. Skipped lines do not fail the
// load; they are surfaced here so bad input stays visible.
type Stats struct {
	Lines         int       `json:"lines"`
	Loaded        int       `json:"loaded"`
	SkippedLines  int       `json:"skipped_lines"`
	HeaderSkipped int       `json:"header_skipped"`
	DuplicateIDs  int       `json:"duplicate_ids"`
	LoadedAt      time.Time `json:"loaded_at"`
}

// Option adjusts how Load builds a Store.
type Option func(*Store)

// WithRand makes Sample draw from r instead of the process-wide source.
// Tests use this to get deterministic samples.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// Load reads the tab-separated compound dump at path and builds a fresh
// Store in one sequential pass. Each line contributes its first four
// fields (chembl_id, canonical SMILES, standard InChI, InChI key); extra
// columns are ignored. A header row is detected by its first field and
// skipped. Lines with fewer than four fields are skipped and counted. A
// later line with a duplicate ID overwrites the earlier record.
//
// Load fails only on I/O errors. To pick up a new dump, call Load again
// and swap the returned Store in; an existing Store is never mutated.
func Load(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open compound dump: %w", err)
	}
	defer f.Close()

	s := &Store{byID: make(map[string]Compound)}
	for _, opt := range opts {
		opt(s)
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		s.stats.Lines++

		fields := strings.Split(line, "\t")
		if fields[colChemblID] == headerToken {
			s.stats.HeaderSkipped++
			continue
		}
		if len(fields) < numColumns {
			s.stats.SkippedLines++
			continue
		}

		id := fields[colChemblID]
		if _, exists := s.byID[id]; exists {
			s.stats.DuplicateIDs++
		}
		s.byID[id] = newCompound(fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read compound dump %s: %w", path, err)
	}

	// Final guard against a header row that slipped past detection.
	delete(s.byID, headerToken)

	s.ids = make([]string, 0, len(s.byID))
	for id := range s.byID {
		s.ids = append(s.ids, id)
	}
	s.stats.Loaded = len(s.byID)
	s.stats.LoadedAt = time.Now()
	return s, nil
}
