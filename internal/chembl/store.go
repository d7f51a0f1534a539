package chembl

import "math/rand"

// Store is an in-memory index of ChEMBL compounds keyed by ID. It is
// immutable once Load returns, so any number of readers can share it
// without locking. Reloading means building a new Store and replacing
// the pointer.
type Store struct {
	byID  map[string]Compound
	ids   []string // fixed traversal order for pagination and sampling
	stats Stats
	rng   *rand.Rand // nil means the process-wide source
}

// Get looks up a compound by exact ChEMBL ID.
func (s *Store) Get(id string) (Compound, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// All returns the full mapping. Callers must not mutate it and must not
// assume any ordering.
func (s *Store) All() map[string]Compound {
	return s.byID
}

// Len reports the number of loaded compounds.
func (s *Store) Len() int {
	return len(s.byID)
}

// Stats reports the counters from the load that built this store.
func (s *Store) Stats() Stats {
	return s.stats
}

// SMILESIDPairs returns every SMILES string and every ID as two parallel
// slices: smiles[i] belongs to ids[i]. The traversal is the store's own
// fixed order and carries no relation to file order.
func (s *Store) SMILESIDPairs() (smiles, ids []string) {
	smiles = make([]string, 0, len(s.ids))
	ids = make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		smiles = append(smiles, s.byID[id].CanonicalSMILES)
		ids = append(ids, id)
	}
	return smiles, ids
}

// Page returns up to limit compounds starting at offset in the store's
// traversal order.
func (s *Store) Page(offset, limit int) []Compound {
	if offset < 0 || offset >= len(s.ids) || limit <= 0 {
		return []Compound{}
	}
	end := offset + limit
	if end > len(s.ids) {
		end = len(s.ids)
	}
	out := make([]Compound, 0, end-offset)
	for _, id := range s.ids[offset:end] {
		out = append(out, s.byID[id])
	}
	return out
}

// Sample returns k distinct compounds drawn uniformly at random without
// replacement. If k is at least Len, every compound is returned. The
// store is not mutated.
func (s *Store) Sample(k int) []Compound {
	if k < 0 {
		k = 0
	}
	if k > len(s.ids) {
		k = len(s.ids)
	}

	picked := make([]string, len(s.ids))
	copy(picked, s.ids)
	swap := func(i, j int) { picked[i], picked[j] = picked[j], picked[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(picked), swap)
	} else {
		rand.Shuffle(len(picked), swap)
	}

	out := make([]Compound, k)
	for i, id := range picked[:k] {
		out[i] = s.byID[id]
	}
	return out
}
