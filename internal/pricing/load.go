package pricing

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Parse decodes a YAML cost document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing cost table YAML: %w", err)
	}
	return doc, nil
}

// LoadDocument reads a YAML cost document from path.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading cost table file: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and indexes a YAML cost table.
func LoadFile(path string) (*Table, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return NewTable(doc)
}

// DefaultDocument returns a fresh copy of the embedded default cost document.
func DefaultDocument() Document {
	doc, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return doc
}

// Default returns the table built from the embedded default document.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = NewTable(DefaultDocument())
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded cost table is invalid: %v", defaultErr))
	}
	return defaultTable
}
