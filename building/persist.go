package building

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes the model to dir/name, creating dir if needed, and returns the
// written path. The extension of name selects the format: ".json" for JSON,
// ".db" or ".sqlite" for a SQLite database.
func (m *Model) Save(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty model file name")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		err = m.saveJSON(path)
	case ".db", ".sqlite":
		err = m.saveSQLite(path)
	default:
		return "", fmt.Errorf("unsupported model file extension %q", ext)
	}
	if err != nil {
		return "", fmt.Errorf("save model %s: %w", path, err)
	}
	return path, nil
}

// Load reads a model saved by Save.
func Load(path string) (*Model, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return loadJSON(path)
	case ".db", ".sqlite":
		return loadSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported model file extension %q", ext)
	}
}

func (m *Model) saveJSON(path string) error {
	b, err := json.MarshalIndent(m, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func loadJSON(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err = json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return &m, nil
}
