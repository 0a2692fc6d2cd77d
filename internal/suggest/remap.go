package suggest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRemap reads the city remap table. Files ending in .yml or .yaml hold a
// YAML mapping; anything else is read as tab-separated "name<TAB>canonical"
// lines, where lines without a tab are ignored. An empty path yields an
// empty table.
func LoadRemap(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open city remap: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return parseRemapYAML(f)
	default:
		return parseRemapTSV(f)
	}
}

func parseRemapTSV(r io.Reader) (map[string]string, error) {
	remap := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if from, to, ok := strings.Cut(line, "\t"); ok {
			remap[from] = to
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read city remap: %w", err)
	}
	return remap, nil
}

func parseRemapYAML(r io.Reader) (map[string]string, error) {
	remap := make(map[string]string)
	if err := yaml.NewDecoder(r).Decode(&remap); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode city remap: %w", err)
	}
	return remap, nil
}
