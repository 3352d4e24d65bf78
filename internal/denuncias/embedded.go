package denuncias

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/demo.json
var demoJSON []byte

// LoadEmbedded decodes the demonstration dataset compiled into the binary.
// The result is always marked SourceMock.
func LoadEmbedded() (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(demoJSON, &ds); err != nil {
		return nil, fmt.Errorf("decode embedded denuncias: %w", err)
	}
	ds.Source = SourceMock
	return &ds, nil
}

// NewEmbeddedSource serves the demonstration dataset.
func NewEmbeddedSource() (*StaticSource, error) {
	ds, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	return NewStaticSource(ds), nil
}
