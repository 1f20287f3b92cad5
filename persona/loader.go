package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"persona-relay/domain"

	"gopkg.in/yaml.v3"
)

type personaFile struct {
	Personas []domain.Persona `yaml:"personas"`
}

// LoadFile reads personas from a YAML document of the form:
//
//	personas:
//	  - selectors: [nova, n]
//	    name: Nova
//	    avatar_url: https://example.org/nova.png
//	    restricted_users: ["42"]
func LoadFile(path string) ([]domain.Persona, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML persona document.
func Parse(data []byte) ([]domain.Persona, error) {
	var file personaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode persona file: %w", err)
	}
	return file.Personas, nil
}

// Load reads, validates and indexes a persona file.
func Load(path string) (*Registry, error) {
	personas, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(personas)
}
