package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unmarshaler decodes an artifact document into v.
type Unmarshaler func(data []byte, v any) error

// codecFor picks the document codec from the file extension.
func codecFor(path string) (Unmarshaler, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal, nil
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	default:
		return nil, fmt.Errorf("unsupported artifact format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// readDocument reads path and returns its bytes with the matching codec.
func readDocument(path string) ([]byte, Unmarshaler, error) {
	unmarshal, err := codecFor(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, unmarshal, nil
}

// header is the part every preprocessor and model document shares.
type header struct {
	Kind    string `json:"kind" yaml:"kind"`
	Version string `json:"version" yaml:"version"`
}
