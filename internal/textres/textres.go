// Package textres reads text resource files: the translated texts that
// components refer to by key.
package textres

import (
	"encoding/json"
	"fmt"
	"os"
)

// Resource is one translated text.
type Resource struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// File is the content of one text resource file.
type File struct {
	Language  string     `json:"language"`
	Resources []Resource `json:"resources"`
}

// Load reads a text resource file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text resources: %w", err)
	}
	f, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode parses text resources. Every resource needs an id.
func Decode(b []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to decode text resources: %w", err)
	}
	for i, r := range f.Resources {
		if r.ID == "" {
			return nil, fmt.Errorf("text resource #%d has no id", i)
		}
	}
	return &f, nil
}

// Merge collects the texts of files written in language, or with no language
// set. A key defined twice takes the later value.
func Merge(language string, files ...*File) map[string]string {
	out := make(map[string]string)
	for _, f := range files {
		if f == nil || (f.Language != "" && f.Language != language) {
			continue
		}
		for _, r := range f.Resources {
			out[r.ID] = r.Value
		}
	}
	return out
}
