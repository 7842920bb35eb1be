package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Store persists arbitrary per-plugin key-value configuration. Values are
// exchanged with plugins as JSON documents and kept in a single YAML file.
type Store struct {
	path string
	v    *viper.Viper
}

// NewStore opens (or prepares to create) the plugin settings file at path.
func NewStore(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("error reading plugin settings: %w", err)
			}
		}
	}

	return &Store{path: path, v: v}, nil
}

// DefaultStorePath returns $HOME/.strata/plugins.yaml.
func DefaultStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".strata", "plugins.yaml"), nil
}

// Get returns the stored configuration document for the named plugin. A
// plugin with no stored configuration gets an empty JSON object.
func (s *Store) Get(plugin string) ([]byte, error) {
	raw := s.v.GetStringMap("plugins." + plugin)
	if len(raw) == 0 {
		return []byte("{}"), nil
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding configuration for %s: %w", plugin, err)
	}

	return doc, nil
}

// Set stores a JSON configuration document for the named plugin and writes
// the settings file.
func (s *Store) Set(plugin string, doc []byte) error {
	var values map[string]any
	if err := json.Unmarshal(doc, &values); err != nil {
		return fmt.Errorf("decoding configuration for %s: %w", plugin, err)
	}

	s.v.Set("plugins."+plugin, values)

	return s.save()
}

// Delete removes the stored configuration for the named plugin.
func (s *Store) Delete(plugin string) error {
	all := s.v.GetStringMap("plugins")
	if _, ok := all[plugin]; !ok {
		return nil
	}
	delete(all, plugin)
	s.v.Set("plugins", all)

	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	return s.v.WriteConfigAs(s.path)
}
