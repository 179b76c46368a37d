package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	cli "github.com/urfave/cli/v3"
	"golang.org/x/net/html"

	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/html/tree"
	"github.com/benoitkugler/webstyle/logger"
)

// session is a parsed document, ready to be queried.
type session struct {
	query   *goquery.Document
	doc     *tree.Document
	cascade *tree.Cascade
	ctx     *tree.Context
}

// openSession parses the document given as first argument, with the
// style sheets and device options of the command line.
func openSession(cmd *cli.Command) (*session, error) {
	if cmd.NArg() == 0 {
		return nil, fmt.Errorf("missing SOURCE argument")
	}
	f, err := os.Open(cmd.Args().First())
	if err != nil {
		return nil, fmt.Errorf("unable to open document: %w", err)
	}
	defer f.Close()
	return newSession(f, cmd)
}

func newSession(r io.Reader, cmd *cli.Command) (*session, error) {
	query, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid html input: %w", err)
	}
	loader := tree.NewLoader(logger.Root())
	doc, err := tree.NewDocument(query.Nodes[0], loader)
	if doc == nil {
		return nil, err
	}
	if err != nil {
		// invalid rules are skipped
		logger.WarningLogger.Warnf("Errors in document style sheets: %s", err)
	}

	var userSheets []*tree.StyleSheet
	for _, file := range cmd.StringSlice("user-css") {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("unable to read user style sheet: %w", err)
		}
		sheet, err := loader.Parse(string(content), tree.User)
		if err != nil {
			logger.WarningLogger.Warnf("Errors in %s: %s", file, err)
		}
		if sheet != nil {
			userSheets = append(userSheets, sheet)
		}
	}

	ctx, err := styleContext(cmd)
	if err != nil {
		return nil, err
	}
	return &session{
		query:   query,
		doc:     doc,
		cascade: doc.Cascade(ctx.Medium, userSheets...),
		ctx:     ctx,
	}, nil
}

// styleContext returns the device description, using the profiles
// file if provided.
func styleContext(cmd *cli.Command) (*tree.Context, error) {
	medium := cmd.String("medium")
	profiles := tree.DefaultProfiles()
	if file := cmd.String("profiles"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("unable to open profiles: %w", err)
		}
		defer f.Close()
		if profiles, err = tree.LoadProfiles(f); err != nil {
			return nil, err
		}
	}
	db, ok := profiles.Database(medium)
	if !ok {
		return nil, fmt.Errorf("no profile for medium %q", medium)
	}
	return &tree.Context{Database: db, Medium: medium}, nil
}

// selectElements returns the elements matched by `sel`, in document order.
// Selectors are evaluated by goquery, or by the style engine if native is true
// (which supports the pseudo-classes of the cascade, like :dir() or :lang()).
func (s *session) selectElements(sel string, native bool) ([]selector.Element, error) {
	var nodes []*html.Node
	if native {
		list, err := selector.Parse(sel)
		if err != nil {
			return nil, err
		}
		for _, compiled := range list {
			nodes = append(nodes, selector.MatchAll((*html.Node)(s.doc.Root), compiled)...)
		}
		nodes = sortNodes(nodes)
	} else {
		matched, err := s.goquerySelect(sel)
		if err != nil {
			return nil, err
		}
		nodes = matched.Nodes
	}
	out := make([]selector.Element, 0, len(nodes))
	for _, node := range nodes {
		if el := s.doc.Element(node); el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

func (s *session) goquerySelect(sel string) (*goquery.Selection, error) {
	// goquery silently matches nothing on invalid selectors
	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", sel, err)
	}
	return s.query.FindMatcher(m), nil
}

// sortNodes removes duplicates and restores the document order.
func sortNodes(nodes []*html.Node) []*html.Node {
	set := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		set[n] = true
	}
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if set[n] {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if len(nodes) != 0 {
		root := nodes[0]
		for root.Parent != nil {
			root = root.Parent
		}
		walk(root)
	}
	return out
}

// describe returns a short description of `el`, like div#id.class
func describe(el selector.Element) string {
	var b strings.Builder
	b.WriteString(el.LocalName())
	if id := el.ID(); id != "" {
		b.WriteString("#" + id)
	}
	for _, class := range strings.Fields(el.ClassText()) {
		b.WriteString("." + class)
	}
	return b.String()
}
