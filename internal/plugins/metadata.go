package plugins

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Metadata describes a plugin module. It is supplied by the plugin itself
// through its Metadata export and is immutable once read.
type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Author       string   `json:"author"`
	License      string   `json:"license"`
	Dependencies []string `json:"dependencies,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Validate checks the required metadata fields.
func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrValidation)
	}

	return nil
}

// DeclaresCapability reports whether the metadata capability list names c.
func (m Metadata) DeclaresCapability(c Capability) bool {
	for _, name := range m.Capabilities {
		if name == string(c) {
			return true
		}
	}

	return false
}

// readSidecar loads the optional `<module>.json` metadata file next to a
// plugin module. Sidecar values only pre-seed display fields; the module's
// own exported metadata always wins.
func readSidecar(modulePath string) (Metadata, bool) {
	data, err := os.ReadFile(sidecarPath(modulePath))
	if err != nil {
		return Metadata{}, false
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, false
	}

	return meta, true
}

func sidecarPath(modulePath string) string {
	return strings.TrimSuffix(modulePath, moduleSuffix) + ".json"
}

// mergeMetadata overlays the module's exported metadata on the sidecar
// defaults, field by field.
func mergeMetadata(sidecar, exported Metadata) Metadata {
	merged := sidecar
	if exported.Name != "" {
		merged.Name = exported.Name
	}
	if exported.Version != "" {
		merged.Version = exported.Version
	}
	if exported.Description != "" {
		merged.Description = exported.Description
	}
	if exported.Author != "" {
		merged.Author = exported.Author
	}
	if exported.License != "" {
		merged.License = exported.License
	}
	if len(exported.Dependencies) > 0 {
		merged.Dependencies = exported.Dependencies
	}
	if len(exported.Capabilities) > 0 {
		merged.Capabilities = exported.Capabilities
	}
	if len(exported.Tags) > 0 {
		merged.Tags = exported.Tags
	}

	return merged
}
