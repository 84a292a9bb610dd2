package element

import (
	"reflect"
	"time"
)

// Coordinates locates an element on its source page as a polygon of points
// in the producer's coordinate system.
type Coordinates struct {
	// Points are the polygon vertices as (x, y) pairs.
	Points [][2]float64

	// System names the coordinate system (e.g. "PixelSpace").
	System string

	// LayoutWidth and LayoutHeight are the page dimensions in that system.
	LayoutWidth  float64
	LayoutHeight float64
}

// Equal reports structural equality of two coordinate records.
func (c *Coordinates) Equal(other *Coordinates) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.System != other.System ||
		c.LayoutWidth != other.LayoutWidth ||
		c.LayoutHeight != other.LayoutHeight ||
		len(c.Points) != len(other.Points) {
		return false
	}
	for i := range c.Points {
		if c.Points[i] != other.Points[i] {
			return false
		}
	}
	return true
}

// Metadata carries the optional per-element fields. Every field has an
// explicit empty sentinel — "" for strings, 0 for ints (page numbers are
// 1-based upstream, so 0 never occurs as a real value), the zero time for
// LastModified, empty for slices, nil for Coordinates — and a field at its
// sentinel is omitted from every serialized form. Metadata is owned by its
// element; equality is structural.
type Metadata struct {
	// Filename is the base name of the source file.
	Filename string

	// FileDirectory is the directory of the source file.
	FileDirectory string

	// Filetype is the detected MIME type of the source file.
	Filetype string

	// URL is the source URL for web-derived content.
	URL string

	// PageName is the sheet or page name (e.g. a spreadsheet tab).
	PageName string

	// Section is the document section the element belongs to.
	Section string

	// Subject is the message subject for email-derived content.
	Subject string

	// TextAsHTML is the HTML rendering of tabular content.
	TextAsHTML string

	// ParentID is the ID of the parent element in a structural hierarchy.
	ParentID string

	// SentFrom and SentTo are sender/recipient lists for email content.
	SentFrom []string
	SentTo   []string

	// Languages lists detected languages of the text, best guess first.
	Languages []string

	// EmphasizedTextContents lists text runs that were bold or italic.
	EmphasizedTextContents []string

	// PageNumber is the 1-based page the element appeared on.
	PageNumber int

	// CategoryDepth is the element's depth among elements of its category
	// (e.g. heading level), starting at 1.
	CategoryDepth int

	// LastModified is the source file's modification time.
	LastModified time.Time

	// Coordinates locates the element on the page.
	Coordinates *Coordinates

	// Extra carries fields added by upstream producers that this library
	// does not interpret structurally. They are copied through every
	// serialized form opaquely.
	Extra map[string]any
}

// Serialized metadata key names. Stable across versions.
const (
	keyFilename      = "filename"
	keyFileDirectory = "file_directory"
	keyFiletype      = "filetype"
	keyURL           = "url"
	keyPageName      = "page_name"
	keySection       = "section"
	keySubject       = "subject"
	keyTextAsHTML    = "text_as_html"
	keyParentID      = "parent_id"
	keySentFrom      = "sent_from"
	keySentTo        = "sent_to"
	keyLanguages     = "languages"
	keyEmphasized    = "emphasized_text_contents"
	keyPageNumber    = "page_number"
	keyCategoryDepth = "category_depth"
	keyLastModified  = "last_modified"
	keyCoordinates   = "coordinates"

	coordKeyPoints       = "points"
	coordKeySystem       = "system"
	coordKeyLayoutWidth  = "layout_width"
	coordKeyLayoutHeight = "layout_height"
)

// IsZero reports whether no field is set.
func (m Metadata) IsZero() bool {
	return len(m.ToMap()) == 0
}

// ToMap returns the sparse key-value form of the metadata: only fields away
// from their empty sentinel appear. A metadata with nothing set maps to an
// empty map.
func (m Metadata) ToMap() map[string]any {
	out := make(map[string]any)

	if m.Filename != "" {
		out[keyFilename] = m.Filename
	}
	if m.FileDirectory != "" {
		out[keyFileDirectory] = m.FileDirectory
	}
	if m.Filetype != "" {
		out[keyFiletype] = m.Filetype
	}
	if m.URL != "" {
		out[keyURL] = m.URL
	}
	if m.PageName != "" {
		out[keyPageName] = m.PageName
	}
	if m.Section != "" {
		out[keySection] = m.Section
	}
	if m.Subject != "" {
		out[keySubject] = m.Subject
	}
	if m.TextAsHTML != "" {
		out[keyTextAsHTML] = m.TextAsHTML
	}
	if m.ParentID != "" {
		out[keyParentID] = m.ParentID
	}
	if len(m.SentFrom) > 0 {
		out[keySentFrom] = stringsToAny(m.SentFrom)
	}
	if len(m.SentTo) > 0 {
		out[keySentTo] = stringsToAny(m.SentTo)
	}
	if len(m.Languages) > 0 {
		out[keyLanguages] = stringsToAny(m.Languages)
	}
	if len(m.EmphasizedTextContents) > 0 {
		out[keyEmphasized] = stringsToAny(m.EmphasizedTextContents)
	}
	if m.PageNumber != 0 {
		out[keyPageNumber] = m.PageNumber
	}
	if m.CategoryDepth != 0 {
		out[keyCategoryDepth] = m.CategoryDepth
	}
	if !m.LastModified.IsZero() {
		out[keyLastModified] = m.LastModified.Format(time.RFC3339)
	}
	if m.Coordinates != nil {
		out[keyCoordinates] = coordinatesToMap(m.Coordinates)
	}

	for k, v := range m.Extra {
		if _, shadowed := out[k]; !shadowed {
			out[k] = v
		}
	}

	return out
}

// FromMap reconstructs metadata from its sparse key-value form. Known keys
// populate their fields; unknown keys land in Extra so nothing an upstream
// producer added is dropped. Values are accepted in the shapes a JSON or YAML
// decode produces (numbers as float64, string lists as []any).
func FromMap(in map[string]any) Metadata {
	var m Metadata
	for k, v := range in {
		switch k {
		case keyFilename:
			m.Filename, _ = v.(string)
		case keyFileDirectory:
			m.FileDirectory, _ = v.(string)
		case keyFiletype:
			m.Filetype, _ = v.(string)
		case keyURL:
			m.URL, _ = v.(string)
		case keyPageName:
			m.PageName, _ = v.(string)
		case keySection:
			m.Section, _ = v.(string)
		case keySubject:
			m.Subject, _ = v.(string)
		case keyTextAsHTML:
			m.TextAsHTML, _ = v.(string)
		case keyParentID:
			m.ParentID, _ = v.(string)
		case keySentFrom:
			m.SentFrom = toStrings(v)
		case keySentTo:
			m.SentTo = toStrings(v)
		case keyLanguages:
			m.Languages = toStrings(v)
		case keyEmphasized:
			m.EmphasizedTextContents = toStrings(v)
		case keyPageNumber:
			m.PageNumber = toInt(v)
		case keyCategoryDepth:
			m.CategoryDepth = toInt(v)
		case keyLastModified:
			if s, ok := v.(string); ok {
				if t, err := time.Parse(time.RFC3339, s); err == nil {
					m.LastModified = t
					continue
				}
			}
			m.setExtra(k, v)
		case keyCoordinates:
			if c := coordinatesFromValue(v); c != nil {
				m.Coordinates = c
				continue
			}
			m.setExtra(k, v)
		default:
			m.setExtra(k, v)
		}
	}
	return m
}

func (m *Metadata) setExtra(k string, v any) {
	if m.Extra == nil {
		m.Extra = make(map[string]any)
	}
	m.Extra[k] = v
}

// Merge returns a copy of m with every field of other that is away from its
// empty sentinel applied on top. Extra maps are unioned, other winning on
// key conflicts.
func (m Metadata) Merge(other Metadata) Metadata {
	merged := m
	if len(m.Extra) > 0 {
		merged.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			merged.Extra[k] = v
		}
	} else {
		merged.Extra = nil
	}

	if other.Filename != "" {
		merged.Filename = other.Filename
	}
	if other.FileDirectory != "" {
		merged.FileDirectory = other.FileDirectory
	}
	if other.Filetype != "" {
		merged.Filetype = other.Filetype
	}
	if other.URL != "" {
		merged.URL = other.URL
	}
	if other.PageName != "" {
		merged.PageName = other.PageName
	}
	if other.Section != "" {
		merged.Section = other.Section
	}
	if other.Subject != "" {
		merged.Subject = other.Subject
	}
	if other.TextAsHTML != "" {
		merged.TextAsHTML = other.TextAsHTML
	}
	if other.ParentID != "" {
		merged.ParentID = other.ParentID
	}
	if len(other.SentFrom) > 0 {
		merged.SentFrom = other.SentFrom
	}
	if len(other.SentTo) > 0 {
		merged.SentTo = other.SentTo
	}
	if len(other.Languages) > 0 {
		merged.Languages = other.Languages
	}
	if len(other.EmphasizedTextContents) > 0 {
		merged.EmphasizedTextContents = other.EmphasizedTextContents
	}
	if other.PageNumber != 0 {
		merged.PageNumber = other.PageNumber
	}
	if other.CategoryDepth != 0 {
		merged.CategoryDepth = other.CategoryDepth
	}
	if !other.LastModified.IsZero() {
		merged.LastModified = other.LastModified
	}
	if other.Coordinates != nil {
		merged.Coordinates = other.Coordinates
	}
	for k, v := range other.Extra {
		merged.setExtra(k, v)
	}
	return merged
}

// Equal reports structural equality. Two metadata values are equal when
// their sparse forms carry the same fields with the same values.
func (m Metadata) Equal(other Metadata) bool {
	return reflect.DeepEqual(m.ToMap(), other.ToMap())
}

// Conversion helpers. Serialized forms come back from JSON/YAML decoding
// with generic shapes; these accept both the decoded and the native shapes.

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func toStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toInt(v any) int {
	switch vv := v.(type) {
	case int:
		return vv
	case int64:
		return int(vv)
	case float64:
		return int(vv)
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	switch vv := v.(type) {
	case float64:
		return vv
	case int:
		return float64(vv)
	case int64:
		return float64(vv)
	default:
		return 0
	}
}

func coordinatesToMap(c *Coordinates) map[string]any {
	points := make([]any, len(c.Points))
	for i, p := range c.Points {
		points[i] = []any{p[0], p[1]}
	}
	out := map[string]any{
		coordKeyPoints: points,
	}
	if c.System != "" {
		out[coordKeySystem] = c.System
	}
	if c.LayoutWidth != 0 {
		out[coordKeyLayoutWidth] = c.LayoutWidth
	}
	if c.LayoutHeight != 0 {
		out[coordKeyLayoutHeight] = c.LayoutHeight
	}
	return out
}

func coordinatesFromValue(v any) *Coordinates {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	c := &Coordinates{}
	if s, ok := m[coordKeySystem].(string); ok {
		c.System = s
	}
	c.LayoutWidth = toFloat(m[coordKeyLayoutWidth])
	c.LayoutHeight = toFloat(m[coordKeyLayoutHeight])

	raw, ok := m[coordKeyPoints].([]any)
	if !ok {
		return nil
	}
	c.Points = make([][2]float64, 0, len(raw))
	for _, rp := range raw {
		pair, ok := rp.([]any)
		if !ok || len(pair) != 2 {
			return nil
		}
		c.Points = append(c.Points, [2]float64{toFloat(pair[0]), toFloat(pair[1])})
	}
	return c
}
