package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	cli "github.com/urfave/cli/v3"
	"golang.org/x/net/html"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/html/layout"
	"github.com/benoitkugler/webstyle/html/tree"
	"github.com/benoitkugler/webstyle/utils"
	"github.com/benoitkugler/webstyle/utils/testutils/tracer"
)

func output(cmd *cli.Command) io.Writer { return cmd.Root().Writer }

// elements returns the elements selected by the --select flag
func (s *session) elements(cmd *cli.Command) ([]selector.Element, error) {
	sel := cmd.String("select")
	elements, err := s.selectElements(sel, cmd.Bool("native"))
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("no element matching %q", sel)
	}
	return elements, nil
}

func runComputed(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	elements, err := s.elements(cmd)
	if err != nil {
		return err
	}
	w := output(cmd)
	pseudo := strings.TrimLeft(cmd.String("pseudo"), ":")
	for _, el := range elements {
		style := s.cascade.ComputedStyle(el, pseudo, s.ctx)
		fmt.Fprintln(w, describe(el))
		for _, property := range cmd.StringSlice("property") {
			value, err := style.GetComputedValue(property)
			if err != nil {
				fmt.Fprintf(w, "  %s: <%s>\n", property, err)
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", property, value)
		}
	}
	return nil
}

func formatSides(sides [4]layout.Fl) string {
	chunks := make([]string, 4)
	for i, v := range sides {
		chunks[i] = utils.FormatFloat(v)
	}
	return strings.Join(chunks, " ")
}

func runBox(_ context.Context, cmd *cli.Command) error {
	unit, ok := pr.ParseUnit(cmd.String("unit"))
	if !ok {
		return fmt.Errorf("invalid unit %q", cmd.String("unit"))
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	elements, err := s.elements(cmd)
	if err != nil {
		return err
	}
	w := output(cmd)
	for _, el := range elements {
		fmt.Fprintln(w, describe(el))
		bv, err := layout.ElementBoxValues(s.cascade, el, s.ctx, unit)
		if errors.Is(err, layout.ErrNoBox) {
			fmt.Fprintln(w, "  no box")
			continue
		} else if err != nil {
			return err
		}
		fmt.Fprintf(w, "  width: %s\n", utils.FormatFloat(bv.Width))
		if !bv.HeightAuto {
			fmt.Fprintf(w, "  height: %s\n", utils.FormatFloat(bv.Height))
		}
		fmt.Fprintf(w, "  margin: %s\n", formatSides(bv.Margin))
		fmt.Fprintf(w, "  border: %s\n", formatSides(bv.Border))
		fmt.Fprintf(w, "  padding: %s\n", formatSides(bv.Padding))
		if bv.ColumnWidths != nil {
			columns := make([]string, len(bv.ColumnWidths))
			for i, c := range bv.ColumnWidths {
				columns[i] = utils.FormatFloat(c)
			}
			fmt.Fprintf(w, "  columns: %s\n", strings.Join(columns, " "))
		}
	}
	return nil
}

func runRules(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	elements, err := s.elements(cmd)
	if err != nil {
		return err
	}
	w := output(cmd)
	pseudo := strings.TrimLeft(cmd.String("pseudo"), ":")
	for _, el := range elements {
		fmt.Fprintln(w, describe(el))
		for _, rule := range s.cascade.MatchedRules(el, pseudo) {
			if rule.Sheet.Origin == tree.UserAgent && !cmd.Bool("ua") {
				continue
			}
			fmt.Fprintf(w, "  %-10s %-12s %s { %s }\n", rule.Sheet.Origin, rule.Specificity,
				rule.Rule.Selectors, rule.Rule.Declaration.MinifiedCSSText())
		}
		if style, ok := el.Attribute("", "style"); ok {
			fmt.Fprintf(w, "  %-10s %-12s style=%q\n", tree.Author, selector.Specificity{1}, style)
		}
	}
	return nil
}

func runTree(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	properties := cmd.StringSlice("property")
	all := cmd.Bool("all")
	label := func(el selector.Element) (string, bool) {
		style := s.cascade.ComputedStyle(el, "", s.ctx)
		if !all {
			if display, err := style.Keyword("display"); err == nil && display == "none" {
				return "", false
			}
		}
		chunks := []string{describe(el)}
		for _, property := range properties {
			value, err := style.GetComputedValue(property)
			if err != nil {
				value = "<" + err.Error() + ">"
			}
			chunks = append(chunks, fmt.Sprintf("%s=%s", property, value))
		}
		return strings.Join(chunks, " "), true
	}
	root := s.doc.Element((*html.Node)(s.doc.Root))
	tracer.NewWriterTracer(output(cmd)).DumpTree(tracer.ElementTree(root, label), "")
	return nil
}

func runSelector(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("missing SELECTOR argument")
	}
	list, err := selector.Parse(strings.Join(cmd.Args().Slice(), " "))
	if err != nil {
		return err
	}
	tr := tracer.NewWriterTracer(output(cmd))
	tr.DumpTree(tracer.SelectorTree(list), "")
	for _, sel := range list {
		tr.Dump(fmt.Sprintf("%s: specificity %s", sel, selector.SpecificityOf(sel)))
	}
	return nil
}
