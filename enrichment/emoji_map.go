package enrichment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadEmojiMap reads a YAML mapping of emoji names to image URLs.
// Names are stored without the surrounding colons. An empty path yields no entries.
func LoadEmojiMap(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read emoji map: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode emoji map: %w", err)
	}
	out := make(map[string]string, len(raw))
	for name, url := range raw {
		name = strings.Trim(strings.TrimSpace(name), ":")
		if name == "" || strings.TrimSpace(url) == "" {
			continue
		}
		out[name] = strings.TrimSpace(url)
	}
	return out, nil
}
