package tree

import (
	"fmt"
	"io"

	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/utils"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is an HTML document parsed by net/html,
// with its embedded style sheets.
type Document struct {
	// Root is the <html> element
	Root *utils.HTMLNode
	// Quirks is true for documents without doctype.
	Quirks bool
	// Sheets are the author style sheets, found in <style> elements.
	Sheets []*StyleSheet
}

// ParseHTML parses an HTML document and its <style> elements.
// Invalid style content is reported in the returned error, but does not
// prevent the document from being used.
func ParseHTML(r io.Reader, loader *Loader) (*Document, error) {
	logger.ProgressLogger.Info("Parsing HTML")
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid html input: %s", err)
	}
	return NewDocument(root, loader)
}

// NewDocument wraps an already parsed document. If `loader` is nil, a default one is used.
func NewDocument(doc *html.Node, loader *Loader) (*Document, error) {
	if loader == nil {
		loader = NewLoader(nil)
	}
	root, hasDoctype := utils.DocumentElement(doc)
	if root == nil {
		return nil, fmt.Errorf("invalid html input: missing root element")
	}
	out := &Document{Root: root, Quirks: !hasDoctype}

	var errs error
	root.IterElements(func(node *utils.HTMLNode) {
		switch {
		case node.Is(atom.Style):
			if typ := node.Get("type"); typ != "" && typ != "text/css" {
				return
			}
			sheet, err := loader.Parse(node.GetChildText(), Author)
			errs = multierr.Append(errs, err)
			if sheet == nil {
				return
			}
			if media := node.Get("media"); media != "" {
				sheet.Rules = []Rule{&MediaRule{Media: parseMediaQuery(media), Rules: sheet.Rules}}
			}
			out.Sheets = append(out.Sheets, sheet)
		case node.Is(atom.Link) && utils.AsciiLower(node.Get("rel")) == "stylesheet":
			logger.WarningLogger.Warnf("External style sheet %q is not loaded", node.Get("href"))
		}
	})
	logger.ProgressLogger.Infof("Found %d style sheet(s)", len(out.Sheets))
	return out, errs
}

// Element returns the matching view of `node`, or nil if it is not an element.
func (d *Document) Element(node *html.Node) selector.Element {
	return selector.NewHTMLElement(node)
}

// Cascade returns the cascade of the document for the given medium:
// the user agent sheet, then the user sheets, then the author sheets.
func (d *Document) Cascade(medium string, userSheets ...*StyleSheet) *Cascade {
	sheets := append([]*StyleSheet{UAStyleSheet}, userSheets...)
	sheets = append(sheets, d.Sheets...)
	return &Cascade{
		Sheets:  sheets,
		Medium:  medium,
		Matcher: selector.Matcher{Quirks: d.Quirks},
	}
}
