// Package codec converts ordered element sequences to and from their
// structured interchange form: a list of records with stable keys "type",
// "text", "element_id" and "metadata", encoded as JSON. The mapping is a
// faithful inverse: decoding an encoded sequence yields structurally equal
// elements, with element IDs carried through verbatim rather than
// recomputed.
package codec

import (
	"errors"
	"fmt"

	"github.com/docrange/stratum/element"
)

var (
	// ErrUnknownCategory is returned by Decode when a record's type tag is
	// not in the codec's category set and no fallback is configured.
	ErrUnknownCategory = errors.New("codec: unknown element category")

	// ErrDecode is returned when input text is not a well-formed record
	// sequence. No partial result accompanies it.
	ErrDecode = errors.New("codec: malformed element data")
)

// Record is the structured form of one element. Field names are stable
// across versions; readers ignore extra keys rather than reject them.
type Record struct {
	Type      string         `json:"type"`
	Text      string         `json:"text"`
	ElementID string         `json:"element_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Config holds codec configuration.
type Config struct {
	// Categories is the category set the codec accepts on decode. The set
	// is explicit rather than ambient so callers can pin a version or test
	// with a custom set.
	Categories []element.Category

	// FallbackToText, when true, materializes records with an unrecognized
	// type tag as generic Text elements (text and ID preserved) instead of
	// failing with ErrUnknownCategory. Off by default so unknown tags fail
	// loudly.
	FallbackToText bool

	// PrettyPrint indents JSON output from the persistence entry points.
	PrettyPrint bool
}

// DefaultConfig returns the default codec configuration: the full category
// set of this library version, no fallback, compact output.
func DefaultConfig() Config {
	return Config{
		Categories: element.DefaultCategories(),
	}
}

// Codec maps element sequences to record sequences and back.
type Codec struct {
	categories map[element.Category]struct{}
	fallback   bool
	pretty     bool
}

// NewCodec creates a codec with the default configuration.
func NewCodec() *Codec {
	return NewCodecWithConfig(DefaultConfig())
}

// NewCodecWithConfig creates a codec with custom configuration.
func NewCodecWithConfig(config Config) *Codec {
	c := &Codec{
		categories: make(map[element.Category]struct{}, len(config.Categories)),
		fallback:   config.FallbackToText,
		pretty:     config.PrettyPrint,
	}
	for _, cat := range config.Categories {
		c.categories[cat] = struct{}{}
	}
	return c
}

// Encode converts elements to records, preserving order. Metadata is emitted
// sparsely: fields at their empty sentinel are absent, and an element with no
// metadata set produces a record with no metadata key at all.
func (c *Codec) Encode(elements []element.Element) []Record {
	records := make([]Record, len(elements))
	for i, el := range elements {
		rec := Record{
			Type:      string(el.Category),
			Text:      el.Text,
			ElementID: el.ID,
		}
		if meta := el.Metadata.ToMap(); len(meta) > 0 {
			rec.Metadata = meta
		}
		records[i] = rec
	}
	return records
}

// Decode converts records back to elements, preserving order. Element IDs
// are carried over verbatim; a record with no element_id gets a
// deterministic ID at construction so the result never holds an unidentified
// element. A record whose type tag is outside the codec's category set fails
// with ErrUnknownCategory unless the fallback policy is enabled, in which
// case it materializes as a generic Text element with its text and ID
// intact.
func (c *Codec) Decode(records []Record) ([]element.Element, error) {
	elements := make([]element.Element, len(records))
	for i, rec := range records {
		category := element.Category(rec.Type)
		if _, known := c.categories[category]; !known {
			if !c.fallback {
				return nil, fmt.Errorf("%w: %q (record %d)", ErrUnknownCategory, rec.Type, i)
			}
			category = element.CategoryText
		}
		elements[i] = element.NewWithOptions(category, rec.Text, element.Options{
			ID:       rec.ElementID,
			Metadata: element.FromMap(rec.Metadata),
		})
	}
	return elements, nil
}
