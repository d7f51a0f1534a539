package chembl

import "sort"

// topPrefixCount caps the prefix table in a Summary.
const topPrefixCount = 10

// KeyPrefixCount is one bucket of the InChI-key prefix histogram.
type KeyPrefixCount struct {
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

// Summary describes the loaded dataset in aggregate: record count, the
// spread of SMILES lengths, and the most common InChI-key prefixes
// (first two characters). Cheap enough to recompute on every reload.
type Summary struct {
	Records        int              `json:"records"`
	MinSMILESLen   int              `json:"min_smiles_len"`
	MaxSMILESLen   int              `json:"max_smiles_len"`
	MeanSMILESLen  float64          `json:"mean_smiles_len"`
	TopKeyPrefixes []KeyPrefixCount `json:"top_key_prefixes"`
}

// Summarize walks the store once and derives the dataset summary.
func (s *Store) Summarize() *Summary {
	out := &Summary{
		Records:        len(s.byID),
		TopKeyPrefixes: make([]KeyPrefixCount, 0),
	}
	if out.Records == 0 {
		return out
	}

	prefixes := make(map[string]int)
	totalLen := 0
	first := true
	for _, c := range s.byID {
		n := len(c.CanonicalSMILES)
		totalLen += n
		if first || n < out.MinSMILESLen {
			out.MinSMILESLen = n
		}
		if first || n > out.MaxSMILESLen {
			out.MaxSMILESLen = n
		}
		first = false

		key := c.StandardInchiKey
		if len(key) >= 2 {
			prefixes[key[:2]]++
		}
	}
	out.MeanSMILESLen = float64(totalLen) / float64(out.Records)

	for p, n := range prefixes {
		out.TopKeyPrefixes = append(out.TopKeyPrefixes, KeyPrefixCount{Prefix: p, Count: n})
	}
	sort.Slice(out.TopKeyPrefixes, func(i, j int) bool {
		a, b := out.TopKeyPrefixes[i], out.TopKeyPrefixes[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Prefix < b.Prefix
	})
	if len(out.TopKeyPrefixes) > topPrefixCount {
		out.TopKeyPrefixes = out.TopKeyPrefixes[:topPrefixCount]
	}
	return out
}
