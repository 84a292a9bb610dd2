package codec

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docrange/stratum/element"
)

// ============================================================================
// String Persistence Tests
// ============================================================================

func TestStringRoundTrip(t *testing.T) {
	elements := []element.Element{
		element.NewTitle("A"),
		element.NewNarrativeText("B"),
		element.NewTable("C"),
	}

	c := NewCodec()
	s, err := c.ToString(elements)
	if err != nil {
		t.Fatalf("ToString() error = %v", err)
	}

	decoded, err := c.FromString(s)
	if err != nil {
		t.Fatalf("FromString() error = %v", err)
	}
	if !element.Equal(decoded, elements) {
		t.Errorf("string round trip changed elements:\n got %+v\nwant %+v", decoded, elements)
	}
}

func TestToStringStableKeys(t *testing.T) {
	s, err := NewCodec().ToString([]element.Element{element.NewTitle("A")})
	if err != nil {
		t.Fatalf("ToString() error = %v", err)
	}

	for _, key := range []string{`"type"`, `"text"`, `"element_id"`} {
		if !strings.Contains(s, key) {
			t.Errorf("serialized form missing key %s: %s", key, s)
		}
	}
	if strings.Contains(s, `"metadata"`) {
		t.Errorf("metadata key present for element with no metadata set: %s", s)
	}
}

func TestFromStringMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "this is not json"},
		{"wrong shape", `{"type": "Title"}`},
		{"truncated", `[{"type": "Title", "te`},
		{"trailing garbage", `[{"type": "Title", "text": "A", "element_id": "id-1"}] this is trailing garbage`},
		{"second value", `[{"type": "Title", "text": "A", "element_id": "id-1"}] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCodec().FromString(tt.input)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("FromString() error = %v, want ErrDecode", err)
			}
			if got != nil {
				t.Errorf("FromString() = %v, want no partial result", got)
			}
		})
	}
}

func TestFromStringIgnoresExtraRecordKeys(t *testing.T) {
	input := `[{"type": "Title", "text": "A", "element_id": "id-1", "future_key": true}]`

	decoded, err := NewCodec().FromString(input)
	if err != nil {
		t.Fatalf("FromString() error = %v", err)
	}
	if len(decoded) != 1 || decoded[0].Text != "A" || decoded[0].ID != "id-1" {
		t.Errorf("FromString() = %+v, want record decoded with unknown keys ignored", decoded)
	}
}

// ============================================================================
// File Persistence Tests
// ============================================================================

func TestFileRoundTrip(t *testing.T) {
	elements := []element.Element{
		element.NewTitle("A"),
		element.NewNarrativeText("B"),
		element.NewWithOptions(element.CategoryTable, "C", element.Options{
			Metadata: element.Metadata{Filename: "source.html", PageNumber: 1},
		}),
	}

	path := filepath.Join(t.TempDir(), "elements.json")
	c := NewCodec()

	if err := c.SaveFile(path, elements); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	decoded, err := c.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !element.Equal(decoded, elements) {
		t.Errorf("file round trip changed elements:\n got %+v\nwant %+v", decoded, elements)
	}
}

func TestSaveFileUnwritablePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "nested")
	path := filepath.Join(dir, "elements.json")

	err := NewCodec().SaveFile(path, []element.Element{element.NewTitle("A")})
	if err == nil {
		t.Fatal("SaveFile() to path in nonexistent directory succeeded")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("SaveFile() left a file behind after failing")
	}
}

func TestSaveFileLeavesNoScratchOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	// A directory at the destination makes the final rename fail after the
	// scratch file was written.
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	err := NewCodec().SaveFile(path, []element.Element{element.NewTitle("A")})
	if err == nil {
		t.Fatal("SaveFile() over a directory succeeded")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp") {
			t.Errorf("scratch file %q left behind after failure", entry.Name())
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := NewCodec().LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("LoadFile() on missing file succeeded")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want os.ErrNotExist in the chain", err)
	}
}

func TestSaveFilePrettyPrint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrettyPrint = true

	path := filepath.Join(t.TempDir(), "pretty.json")
	c := NewCodecWithConfig(cfg)
	if err := c.SaveFile(path, []element.Element{element.NewTitle("A")}); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("pretty output not indented: %s", data)
	}

	decoded, err := c.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(decoded) != 1 || decoded[0].Text != "A" {
		t.Errorf("pretty round trip = %+v, want original element", decoded)
	}
}
