// Package element defines the document element model: the categories an
// element can have, the metadata attached to it, and how its identifier is
// assigned. Elements are produced by format-specific partitioners (not part
// of this module) and consumed by the codec and stage packages.
package element

// Category identifies the semantic role of an element within its source
// document. Categories are a closed set at a given library version, but the
// type is an open string so that records produced by newer versions can be
// carried through opaquely rather than rejected.
type Category string

const (
	// CategoryTitle is a document or section title.
	CategoryTitle Category = "Title"
	// CategoryNarrativeText is running body text.
	CategoryNarrativeText Category = "NarrativeText"
	// CategoryListItem is a single item of a bulleted or numbered list.
	CategoryListItem Category = "ListItem"
	// CategoryTable is tabular content; the HTML rendering, when available,
	// travels in the text_as_html metadata field.
	CategoryTable Category = "Table"
	// CategoryHeader is a page header.
	CategoryHeader Category = "Header"
	// CategoryFooter is a page footer.
	CategoryFooter Category = "Footer"
	// CategoryAddress is a postal address.
	CategoryAddress Category = "Address"
	// CategoryEmailAddress is an email address.
	CategoryEmailAddress Category = "EmailAddress"
	// CategoryFigureCaption is the caption of a figure or image.
	CategoryFigureCaption Category = "FigureCaption"
	// CategoryPageBreak marks a page boundary; its text is empty.
	CategoryPageBreak Category = "PageBreak"
	// CategoryCheckBox is a form checkbox.
	CategoryCheckBox Category = "CheckBox"
	// CategoryImage is an image; its text holds any alt text or OCR output
	// supplied by the producer.
	CategoryImage Category = "Image"
	// CategoryFormula is a mathematical formula.
	CategoryFormula Category = "Formula"
	// CategoryPageNumber is a printed page number.
	CategoryPageNumber Category = "PageNumber"
	// CategoryCompositeElement is a merged run of elements produced by
	// downstream chunking.
	CategoryCompositeElement Category = "CompositeElement"
	// CategoryText is the generic catch-all category. Records with an
	// unrecognized category tag materialize as CategoryText when the codec's
	// fallback policy is enabled.
	CategoryText Category = "Text"
)

// DefaultCategories returns the full category set known to this version of
// the library, in a stable order. The codec takes this set explicitly at
// construction so tests and forward-compatible callers can substitute their
// own.
func DefaultCategories() []Category {
	return []Category{
		CategoryTitle,
		CategoryNarrativeText,
		CategoryListItem,
		CategoryTable,
		CategoryHeader,
		CategoryFooter,
		CategoryAddress,
		CategoryEmailAddress,
		CategoryFigureCaption,
		CategoryPageBreak,
		CategoryCheckBox,
		CategoryImage,
		CategoryFormula,
		CategoryPageNumber,
		CategoryCompositeElement,
		CategoryText,
	}
}

// Element is one semantic unit of a partitioned document. It is a tagged
// variant: the Category field is the discriminant and the remaining fields
// are shared by every category. Elements are value objects; once constructed
// the ID never changes unless RecomputeID is called explicitly.
type Element struct {
	// Category is the variant tag. Exactly one per element, never empty.
	Category Category

	// Text is the textual content. May be empty (e.g. PageBreak).
	Text string

	// ID identifies the element. In the default deterministic mode it is the
	// hex SHA-256 of Text, so two elements with identical text share an ID.
	// See the identity documentation in this package for the trade-off.
	ID string

	// Metadata carries the optional per-element fields. All fields are
	// optional and absent fields are omitted from every serialized form.
	Metadata Metadata
}

// Options controls element construction beyond category and text.
type Options struct {
	// Metadata is attached to the element as-is.
	Metadata Metadata

	// IDMode selects how the ID is computed. Ignored when ID is set.
	IDMode IDMode

	// ID, when non-empty, is used verbatim. The codec uses this to carry
	// identifiers through a load unchanged.
	ID string
}

// New creates an element of the given category with a deterministic ID and
// empty metadata.
func New(category Category, text string) Element {
	return NewWithOptions(category, text, Options{})
}

// NewWithOptions creates an element with explicit construction options. The
// ID is assigned here, at construction, and is final.
func NewWithOptions(category Category, text string, opts Options) Element {
	id := opts.ID
	if id == "" {
		id = assignID(opts.IDMode, text)
	}
	return Element{
		Category: category,
		Text:     text,
		ID:       id,
		Metadata: opts.Metadata,
	}
}

// NewTitle creates a Title element.
func NewTitle(text string) Element { return New(CategoryTitle, text) }

// NewNarrativeText creates a NarrativeText element.
func NewNarrativeText(text string) Element { return New(CategoryNarrativeText, text) }

// NewListItem creates a ListItem element.
func NewListItem(text string) Element { return New(CategoryListItem, text) }

// NewTable creates a Table element. The HTML rendering of the table, if the
// producer has one, belongs in Metadata.TextAsHTML.
func NewTable(text string) Element { return New(CategoryTable, text) }

// NewAddress creates an Address element.
func NewAddress(text string) Element { return New(CategoryAddress, text) }

// NewText creates a generic Text element.
func NewText(text string) Element { return New(CategoryText, text) }

// String returns the element's text content, the display form used for
// debugging and logging by callers.
func (e Element) String() string {
	return e.Text
}

// WithText returns a copy of e carrying the new text. The ID is kept: text
// mutation never silently changes identity. Call RecomputeID on the result
// when a content-derived ID is wanted for the new text.
func (e Element) WithText(text string) Element {
	e.Text = text
	return e
}

// RecomputeID returns a copy of e whose ID is the deterministic hash of its
// current text.
func (e Element) RecomputeID() Element {
	e.ID = DeterministicID(e.Text)
	return e
}

// Equal reports structural equality, including metadata.
func (e Element) Equal(other Element) bool {
	return e.Category == other.Category &&
		e.Text == other.Text &&
		e.ID == other.ID &&
		e.Metadata.Equal(other.Metadata)
}

// Equal reports structural equality of two element sequences, order included.
func Equal(a, b []Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
