package stratum_test

import (
	"path/filepath"
	"testing"

	"github.com/docrange/stratum"
	"github.com/docrange/stratum/element"
)

func TestJSONRoundTrip(t *testing.T) {
	elements := []element.Element{
		element.NewNarrativeText("This is a test document to use for unit tests."),
		element.NewAddress("Doylestown, PA 18901"),
		element.NewTitle("Important points:"),
		element.NewListItem("Hamburgers are delicious"),
		element.NewListItem("Dogs are the best"),
		element.NewListItem("I love fuzzy blankets"),
	}

	s, err := stratum.ToJSON(elements)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	decoded, err := stratum.FromJSON(s)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if !element.Equal(decoded, elements) {
		t.Errorf("JSON round trip changed elements:\n got %+v\nwant %+v", decoded, elements)
	}
}

func TestSaveLoad(t *testing.T) {
	elements := []element.Element{
		element.NewTitle("A"),
		element.NewNarrativeText("B"),
	}

	path := filepath.Join(t.TempDir(), "elements.json")
	if err := stratum.Save(path, elements); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := stratum.Must(stratum.Load(path))
	if !element.Equal(loaded, elements) {
		t.Errorf("Load() = %+v, want %+v", loaded, elements)
	}
}

func TestToDicts(t *testing.T) {
	records := stratum.ToDicts([]element.Element{element.NewTitle("A")})
	if len(records) != 1 {
		t.Fatalf("ToDicts() returned %d records, want 1", len(records))
	}
	for _, key := range []string{"element_id", "text", "category"} {
		if _, ok := records[0][key]; !ok {
			t.Errorf("projection missing required key %q: %v", key, records[0])
		}
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	stratum.Must(stratum.Load(filepath.Join(t.TempDir(), "missing.json")))
}
