package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportKind_Valid(t *testing.T) {
	tests := []struct {
		name     string
		kind     ImportKind
		expected bool
	}{
		{name: "netex archive", kind: ImportNetex, expected: true},
		{name: "base stations", kind: ImportBaseStations, expected: true},
		{name: "base cities", kind: ImportBaseCities, expected: true},
		{name: "empty kind", kind: "", expected: false},
		{name: "unknown kind", kind: "gtfs", expected: false},
		{name: "case sensitive", kind: "NETEX", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.Valid())
		})
	}
}

func TestImportJob_JSONFieldNames(t *testing.T) {
	job := ImportJob{
		JobID:     uuid.MustParse("3f1c2a9e-8d4b-4c1e-9a7f-2b6d5e4c3a10"),
		Kind:      ImportNetex,
		Path:      "/data/netex.zip",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(job)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "3f1c2a9e-8d4b-4c1e-9a7f-2b6d5e4c3a10", raw["job_id"])
	assert.Equal(t, "netex", raw["kind"])
	assert.Equal(t, "/data/netex.zip", raw["path"])
}

func TestImportDoneEvent_OmitsEmptyError(t *testing.T) {
	event := ImportDoneEvent{
		JobID:  uuid.New(),
		Kind:   ImportBaseCities,
		Result: &ImportResult{Kind: ImportBaseCities, Rows: 12},
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)
	assert.Contains(t, string(data), `"rows":12`)
}
