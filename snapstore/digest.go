// CLAUDE:SUMMARY Markdown digest writer — sanitizes captured HTML and converts it for assistant consumption.
package snapstore

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Digester produces a compact companion document from captured HTML.
type Digester interface {
	Digest(html []byte) ([]byte, error)
}

// MarkdownDigest sanitizes captured HTML and renders it as markdown.
// The digest strips scripts, styles, and event handlers so an assistant
// reading the snapshot directory gets page text and structure without
// the noise of a full serialized DOM.
type MarkdownDigest struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// NewMarkdownDigest creates a digest converter with commonmark and table
// support.
func NewMarkdownDigest() *MarkdownDigest {
	return &MarkdownDigest{
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Digest implements Digester.
func (d *MarkdownDigest) Digest(html []byte) ([]byte, error) {
	clean := d.policy.SanitizeBytes(html)
	md, err := d.conv.ConvertString(string(clean))
	if err != nil {
		return nil, fmt.Errorf("snapstore: markdown convert: %w", err)
	}
	return []byte(md), nil
}
