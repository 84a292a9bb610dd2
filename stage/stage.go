// Package stage flattens elements into plain key-value records for bulk
// ingestion into tabular and document stores, and writes those records out
// in the formats ingestion tooling consumes (JSONL, JSON, CSV, TSV, YAML).
// The projection is one-way: there is no inverse, and derived display keys
// may appear beyond what the codec's interchange form carries.
package stage

import (
	"github.com/docrange/stratum/element"
)

// ProjectorConfig holds configuration options for the projection.
type ProjectorConfig struct {
	// FlattenMetadata flattens metadata into dot-notation keys on the
	// top-level record ("metadata.page_number"). When false, metadata stays
	// nested under a single "metadata" key.
	FlattenMetadata bool

	// MetadataPrefix is the key prefix used for flattened metadata.
	// Default: "metadata".
	MetadataPrefix string
}

// DefaultProjectorConfig returns sensible defaults: flattened metadata under
// the "metadata." prefix.
func DefaultProjectorConfig() ProjectorConfig {
	return ProjectorConfig{
		FlattenMetadata: true,
		MetadataPrefix:  "metadata",
	}
}

// Projector flattens elements into plain records.
type Projector struct {
	config ProjectorConfig
}

// NewProjector creates a projector with default configuration.
func NewProjector() *Projector {
	return &Projector{config: DefaultProjectorConfig()}
}

// NewProjectorWithConfig creates a projector with custom configuration.
func NewProjectorWithConfig(config ProjectorConfig) *Projector {
	if config.MetadataPrefix == "" {
		config.MetadataPrefix = "metadata"
	}
	return &Projector{config: config}
}

// Project returns one flat record per element, order preserved. Every record
// carries "element_id", "text" and "category"; metadata fields follow
// sparsely per the configuration.
func (p *Projector) Project(elements []element.Element) []map[string]any {
	records := make([]map[string]any, len(elements))
	for i, el := range elements {
		rec := map[string]any{
			"element_id": el.ID,
			"text":       el.Text,
			"category":   string(el.Category),
		}

		meta := el.Metadata.ToMap()
		if len(meta) > 0 {
			if p.config.FlattenMetadata {
				for k, v := range flatten(meta, p.config.MetadataPrefix) {
					rec[k] = v
				}
			} else {
				rec["metadata"] = meta
			}
		}

		records[i] = rec
	}
	return records
}

// ToDicts flattens elements with the default configuration.
func ToDicts(elements []element.Element) []map[string]any {
	return NewProjector().Project(elements)
}

// flatten converts nested maps into dot-notation keys.
func flatten(data map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			for nk, nv := range flatten(v, fullKey) {
				result[nk] = nv
			}
		default:
			result[fullKey] = value
		}
	}
	return result
}
