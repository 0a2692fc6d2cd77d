package suggest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityToken(t *testing.T) {
	remap := map[string]string{
		"Praha-Smíchov": "Praha",
		"Brno":          "Brno",
		"Ostrava":       "Ostrava-město",
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bracket suffix", input: "Prague [A]", expected: "Prague"},
		{name: "comma suffix", input: "Brno, hl.n.", expected: "Brno"},
		{name: "bracket wins over earlier comma", input: "Lhota, u Kolína [KO]", expected: "Lhota, u Kolína"},
		{name: "first bracket occurrence", input: "Písek [PI] [x]", expected: "Písek"},
		{name: "first comma occurrence", input: "Kolín,,nádr.", expected: "Kolín"},
		{name: "whole name", input: "Pardubice", expected: "Pardubice"},
		{name: "bracket without leading space", input: "Tábor[TA]", expected: "Tábor[TA]"},
		{name: "remapped after split", input: "Praha-Smíchov, nádr.", expected: "Praha"},
		{name: "remap applies to whole name", input: "Ostrava", expected: "Ostrava-město"},
		{name: "remap is verbatim", input: "ostrava", expected: "ostrava"},
		{name: "empty name", input: "", expected: ""},
		{name: "leading comma", input: ",x", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CityToken(tt.input, remap))
		})
	}
}

func TestCityToken_NilRemap(t *testing.T) {
	assert.Equal(t, "Kolín", CityToken("Kolín [KO]", nil))
}

func TestCityTokens_KeepsPositions(t *testing.T) {
	tokens := CityTokens([]string{"Prague [A]", "Prague [A]", "Brno, hl.n.", "Prague [B]"}, nil)
	assert.Equal(t, []string{"Prague", "Prague", "Brno", "Prague"}, tokens)
}

func TestLoadRemap(t *testing.T) {
	dir := t.TempDir()

	t.Run("tab separated", func(t *testing.T) {
		path := filepath.Join(dir, "remap.txt")
		content := "Praha-Smíchov\tPraha\r\nno tab here\nBrno-Židenice\tBrno\n\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		remap, err := LoadRemap(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"Praha-Smíchov": "Praha",
			"Brno-Židenice": "Brno",
		}, remap)
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "remap.yaml")
		content := "\"Praha-Smíchov\": Praha\nBrno-Židenice: Brno\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		remap, err := LoadRemap(path)
		require.NoError(t, err)
		assert.Equal(t, "Praha", remap["Praha-Smíchov"])
		assert.Equal(t, "Brno", remap["Brno-Židenice"])
	})

	t.Run("empty yaml", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yml")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		remap, err := LoadRemap(path)
		require.NoError(t, err)
		assert.Empty(t, remap)
	})

	t.Run("no path", func(t *testing.T) {
		remap, err := LoadRemap("")
		require.NoError(t, err)
		assert.Empty(t, remap)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRemap(filepath.Join(dir, "missing.txt"))
		assert.Error(t, err)
	})
}
