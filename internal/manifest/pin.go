package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Pin is the pinned package-set descriptor: a content-addressed reference
// resolved by an external fetch capability. The core treats the pinned set
// itself as opaque; only the identity and integrity hash matter here.
type Pin struct {
	URL    string `json:"url"`
	Rev    string `json:"rev"`
	SHA256 string `json:"sha256"`
}

// LoadPin reads and parses a pin descriptor JSON file.
func LoadPin(path string) (*Pin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pin file: %w", err)
	}

	var pin Pin
	if err := json.Unmarshal(data, &pin); err != nil {
		return nil, fmt.Errorf("failed to parse pin JSON: %w", err)
	}

	if pin.Rev == "" {
		return nil, fmt.Errorf("pin must have a rev")
	}
	if pin.SHA256 == "" {
		return nil, fmt.Errorf("pin %s must have a sha256 integrity hash", pin.Rev)
	}

	return &pin, nil
}
