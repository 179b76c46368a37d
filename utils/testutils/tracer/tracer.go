// Package tracer provides functions to dump selectors, element trees
// and box values, which may be used in debug mode.
package tracer

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/benoitkugler/webstyle/utils"
	"github.com/xlab/treeprint"
)

type Tracer struct {
	out io.Writer
}

// NewTracer panics if an error occurs.
func NewTracer(outFile string) Tracer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return Tracer{out: f}
}

// NewWriterTracer writes to `w`.
func NewWriterTracer(w io.Writer) Tracer { return Tracer{out: w} }

// FormatFloat returns "auto" for infinite values.
func FormatFloat(v utils.Fl) string {
	if math.IsInf(v, 0) {
		return "auto"
	}
	return utils.FormatFloat(v)
}

func (t Tracer) Dump(line string) {
	fmt.Fprintln(t.out, line)
}

func (t Tracer) DumpTree(tree treeprint.Tree, context string) {
	fmt.Fprintln(t.out, context)
	fmt.Fprint(t.out, tree.String())
	fmt.Fprintln(t.out)
}
