// CLAUDE:SUMMARY Extracts interactive elements from captured HTML and suggests CSS selectors for them.
// Package hints turns a captured HTML snapshot into locator suggestions.
//
// Instead of handing an assistant the full serialized DOM, Extract walks
// the document and returns just the interactive elements (inputs,
// buttons, links, selects, ARIA widgets), each with a CSS selector built
// from the most stable attribute available: id, then name, then
// type/placeholder, then classes.
package hints

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Hint describes one interactive element found in a snapshot.
type Hint struct {
	Tag         string `json:"tag"`
	Role        string `json:"role,omitempty"`
	Type        string `json:"type,omitempty"`
	Label       string `json:"label,omitempty"`
	Selector    string `json:"selector"`
	Placeholder string `json:"placeholder,omitempty"`
	Href        string `json:"href,omitempty"`
}

// interactiveAtoms are element types always considered interactive.
var interactiveAtoms = map[atom.Atom]bool{
	atom.A:        true,
	atom.Button:   true,
	atom.Input:    true,
	atom.Select:   true,
	atom.Textarea: true,
}

// interactiveRoles are ARIA roles that mark otherwise-plain elements as
// interactive.
var interactiveRoles = map[string]bool{
	"button": true, "link": true, "textbox": true, "searchbox": true,
	"combobox": true, "listbox": true, "option": true, "checkbox": true,
	"radio": true, "switch": true, "slider": true, "spinbutton": true,
	"menuitem": true, "tab": true,
}

// Extract parses markup and returns hints for every interactive element,
// in document order.
func Extract(markup []byte) ([]Hint, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("hints: parse: %w", err)
	}

	var hints []Hint
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if h, ok := hintFor(n); ok {
				hints = append(hints, h)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hints, nil
}

func hintFor(n *html.Node) (Hint, bool) {
	role := attr(n, "role")
	if !interactiveAtoms[n.DataAtom] && !interactiveRoles[role] {
		return Hint{}, false
	}
	// Hidden inputs carry no locator value.
	if n.DataAtom == atom.Input && attr(n, "type") == "hidden" {
		return Hint{}, false
	}

	h := Hint{
		Tag:         n.Data,
		Role:        role,
		Type:        attr(n, "type"),
		Placeholder: attr(n, "placeholder"),
		Href:        attr(n, "href"),
		Selector:    selectorFor(n),
		Label:       labelFor(n),
	}
	return h, true
}

// selectorFor builds a CSS selector from the most stable attribute the
// element carries.
func selectorFor(n *html.Node) string {
	if id := attr(n, "id"); id != "" {
		return "#" + id
	}
	if name := attr(n, "name"); name != "" {
		return fmt.Sprintf("%s[name='%s']", n.Data, name)
	}

	sel := n.Data
	if typ := attr(n, "type"); typ != "" {
		sel += fmt.Sprintf("[type='%s']", typ)
	}
	if ph := attr(n, "placeholder"); ph != "" {
		sel += fmt.Sprintf("[placeholder='%s']", ph)
	}
	if sel != n.Data {
		return sel
	}

	if classes := strings.Fields(attr(n, "class")); len(classes) > 0 {
		// Two classes are usually enough to disambiguate without
		// becoming brittle.
		if len(classes) > 2 {
			classes = classes[:2]
		}
		return n.Data + "." + strings.Join(classes, ".")
	}
	if href := attr(n, "href"); href != "" && href != "#" {
		return fmt.Sprintf("%s[href='%s']", n.Data, href)
	}
	return n.Data
}

// labelFor derives a human-readable label: aria-label, then placeholder,
// then name, then visible text.
func labelFor(n *html.Node) string {
	for _, key := range []string{"aria-label", "placeholder", "name"} {
		if v := attr(n, key); v != "" {
			return v
		}
	}
	if text := collectText(n); text != "" {
		return text
	}
	return attr(n, "id")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collectText gathers the trimmed text content of a node, capped so a
// link wrapping half the page does not become a label.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if b.Len() > 80 {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	text := strings.Join(strings.Fields(b.String()), " ")
	if len(text) > 60 {
		text = text[:60]
	}
	return text
}
