// Package stratum is a serialization and identity layer for partitioned
// document elements. Format-specific partitioners produce ordered element
// sequences; stratum assigns each element a deterministic or unique
// identifier, round-trips sequences through a stable JSON interchange form,
// and flattens them into plain records for ingestion pipelines.
//
// Basic usage:
//
//	elements := []element.Element{
//	    element.NewTitle("Important points:"),
//	    element.NewListItem("Hamburgers are delicious"),
//	}
//	if err := stratum.Save("out.json", elements); err != nil {
//	    // handle error
//	}
//	loaded, err := stratum.Load("out.json")
//
// The package-level functions use a default codec. For custom category sets,
// fallback policies or pretty printing, use the codec package directly.
package stratum

import (
	"github.com/docrange/stratum/codec"
	"github.com/docrange/stratum/element"
	"github.com/docrange/stratum/stage"
)

// ToJSON serializes elements to their JSON interchange form.
func ToJSON(elements []element.Element) (string, error) {
	return codec.NewCodec().ToString(elements)
}

// FromJSON reconstructs elements from their JSON interchange form. Element
// IDs are preserved verbatim, never recomputed on load.
func FromJSON(s string) ([]element.Element, error) {
	return codec.NewCodec().FromString(s)
}

// Save writes elements to a file at path. The file is finalized atomically:
// a failed save leaves no partial file at path.
func Save(path string, elements []element.Element) error {
	return codec.NewCodec().SaveFile(path, elements)
}

// Load reads elements from the file at path.
func Load(path string) ([]element.Element, error) {
	return codec.NewCodec().LoadFile(path)
}

// ToDicts flattens elements into one plain record per element for bulk
// ingestion. The projection is one-way.
func ToDicts(elements []element.Element) []map[string]any {
	return stage.ToDicts(elements)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	elements := stratum.Must(stratum.Load("out.json"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
