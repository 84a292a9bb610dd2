package codec

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/docrange/stratum/element"
)

// RenderText returns the display text for an element, dispatching on its
// category. For most categories this is just the element's text. A Table
// whose text is empty but whose metadata carries an HTML rendering
// (text_as_html) has its text derived from that HTML: cells joined by
// spaces, rows by newlines.
func (c *Codec) RenderText(el element.Element) string {
	if el.Category == element.CategoryTable && el.Text == "" && el.Metadata.TextAsHTML != "" {
		return tableTextFromHTML(el.Metadata.TextAsHTML)
	}
	return el.Text
}

// tableTextFromHTML extracts plain text from an HTML table fragment. Parsing
// never fails for fragments (the parser repairs as it goes), so a best-effort
// text form always comes back.
func tableTextFromHTML(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var rows []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					if text := strings.TrimSpace(textContent(c)); text != "" {
						cells = append(cells, text)
					}
				}
			}
			if len(cells) > 0 {
				rows = append(rows, strings.Join(cells, " "))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(rows) == 0 {
		// Not a table fragment; fall back to the whole text content.
		return strings.Join(strings.Fields(textContent(doc)), " ")
	}
	return strings.Join(rows, "\n")
}

// textContent returns the concatenated text of a node and its descendants.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
