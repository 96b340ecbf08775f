package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/reference.yaml
var embeddedTables []byte

var defaultIndex = sync.OnceValue(func() *Index {
	t, err := ParseTables(embeddedTables)
	if err != nil {
		panic(fmt.Sprintf("reference: embedded dataset is invalid: %v", err))
	}
	return NewIndex(t)
})

// Default returns the index over the embedded dataset. It is built on first use and
// shared afterwards.
func Default() *Index {
	return defaultIndex()
}

// ParseTables decodes and validates a YAML reference dataset.
func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("decode reference tables: %w", err)
	}
	if len(t.Airlines) == 0 && len(t.Aircraft) == 0 && len(t.Airports) == 0 {
		return Tables{}, errors.New("reference tables are empty")
	}
	v := validator.New()
	if err := v.Struct(t); err != nil {
		return Tables{}, fmt.Errorf("validate reference tables: %w", err)
	}
	return t, nil
}

// LoadTables reads a YAML reference dataset from disk.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read reference tables: %w", err)
	}
	return ParseTables(data)
}

// NewIndexFromFile loads a dataset from path, or uses the embedded one when path is empty.
func NewIndexFromFile(path string, opts ...Option) (*Index, error) {
	if path == "" {
		t, err := ParseTables(embeddedTables)
		if err != nil {
			return nil, err
		}
		return NewIndex(t, opts...), nil
	}
	t, err := LoadTables(path)
	if err != nil {
		return nil, err
	}
	return NewIndex(t, opts...), nil
}
