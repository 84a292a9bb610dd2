package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docrange/stratum/element"
)

// Save encodes elements and writes the JSON record sequence to w.
func (c *Codec) Save(w io.Writer, elements []element.Element) error {
	encoder := json.NewEncoder(w)
	if c.pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(c.Encode(elements)); err != nil {
		return fmt.Errorf("codec: encoding elements: %w", err)
	}
	return nil
}

// Load reads a JSON record sequence from r and reconstructs the elements.
// Malformed input, including anything trailing the record array, fails with
// an error wrapping ErrDecode and no partial result; an unrecognized
// category tag fails per the fallback policy (see Decode).
func (c *Codec) Load(r io.Reader) ([]element.Element, error) {
	decoder := json.NewDecoder(r)
	var records []Record
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	// The decoder stops at the end of the first JSON value; the parse is
	// strict, so whatever follows must be end of input.
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after element records", ErrDecode)
	}
	return c.Decode(records)
}

// SaveFile writes the element sequence to path. The write goes to a scratch
// file in the destination directory which is synced and renamed into place
// only on full success, so a failed save never leaves a corrupted file at
// path. The scratch file is removed on every failure path.
func (c *Codec) SaveFile(path string, elements []element.Element) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("codec: creating scratch file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if err := c.Save(tmp, elements); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("codec: syncing scratch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("codec: closing scratch file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("codec: finalizing %s: %w", path, err)
	}
	return nil
}

// LoadFile reads an element sequence from the file at path. Access failures
// surface the underlying os error in the chain; malformed content fails per
// Load.
func (c *Codec) LoadFile(path string) ([]element.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("codec: opening %s: %w", path, err)
	}
	defer f.Close()

	return c.Load(f)
}

// ToString returns the JSON record sequence as an in-memory string.
func (c *Codec) ToString(elements []element.Element) (string, error) {
	var buf bytes.Buffer
	if err := c.Save(&buf, elements); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FromString reconstructs an element sequence from in-memory JSON text.
func (c *Codec) FromString(s string) ([]element.Element, error) {
	return c.Load(strings.NewReader(s))
}
