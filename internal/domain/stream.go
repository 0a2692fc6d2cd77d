package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamImportRequest = "stream:imports:request"
	StreamImportDone    = "stream:imports:done"
)

// ImportKind selects the importer a job is dispatched to.
type ImportKind string

const (
	ImportNetex        ImportKind = "netex"
	ImportBaseStations ImportKind = "base_stations"
	ImportBaseCities   ImportKind = "base_cities"
)

// Valid reports whether k names a known importer.
func (k ImportKind) Valid() bool {
	switch k {
	case ImportNetex, ImportBaseStations, ImportBaseCities:
		return true
	}
	return false
}

// ImportJob - входящее событие на импорт файла
type ImportJob struct {
	JobID     uuid.UUID  `json:"job_id"`
	Kind      ImportKind `json:"kind"`
	Path      string     `json:"path"`
	CreatedAt time.Time  `json:"created_at"`
}

// ImportResult summarises one finished import.
type ImportResult struct {
	Kind         ImportKind `json:"kind"`
	Members      int        `json:"members,omitempty"`
	FailedFiles  []string   `json:"failed_files,omitempty"`
	Chains       int        `json:"chains,omitempty"`
	ChainStops   int        `json:"chain_stops,omitempty"`
	Collisions   int        `json:"collisions,omitempty"`
	Rows         int        `json:"rows,omitempty"`
	SkippedRows  int        `json:"skipped_rows,omitempty"`
	DurationMSec int64      `json:"duration_ms"`
}

// ImportDoneEvent - результат импорта
type ImportDoneEvent struct {
	JobID  uuid.UUID     `json:"job_id"`
	Kind   ImportKind    `json:"kind"`
	Result *ImportResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
