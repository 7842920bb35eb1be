package strataplugin

import "encoding/json"

// Metadata is the document a plugin returns from its Metadata export. The
// host merges it over any sidecar defaults shipped beside the module.
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

// WriteMetadata encodes the metadata document into guest memory and returns
// the packed result for the Metadata export.
func WriteMetadata(m Metadata) uint64 {
	data, err := json.Marshal(m)
	if err != nil {
		return 0
	}

	return WriteResult(data)
}
