// Package models holds the JSON shapes the HTTP layer serves.
package models

import (
	"time"

	"chembldb/internal/chembl"
)

// CompoundPage is the paginated listing envelope.
type CompoundPage struct {
	Data   []chembl.Compound `json:"data"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// PairsResponse carries the parallel SMILES/ID slices. smiles[i] and
// chembl_ids[i] describe the same compound.
type PairsResponse struct {
	SMILES []string `json:"smiles"`
	IDs    []string `json:"chembl_ids"`
}

// StatsResponse reports the counters of the load behind the live store.
type StatsResponse struct {
	Records       int       `json:"records"`
	Lines         int       `json:"lines"`
	SkippedLines  int       `json:"skipped_lines"`
	HeaderSkipped int       `json:"header_skipped"`
	DuplicateIDs  int       `json:"duplicate_ids"`
	LoadedAt      time.Time `json:"loaded_at"`
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status  string `json:"status"` // "ok" or "loading"
	Records int    `json:"records"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
