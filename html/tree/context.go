package tree

import (
	"unicode/utf8"

	pr "github.com/benoitkugler/webstyle/css/properties"
)

// Font describes the font used to measure text.
type Font struct {
	Families []string
	Size     Fl // in points
	Weight   int
	Style    string
}

// TextMeasurer measures text. Lengths are in points.
type TextMeasurer interface {
	// Metrics returns the font metrics, relative to the font size.
	Metrics(font Font) FontRatios
	// TextWidth returns the advance of `text`, on a single line.
	TextWidth(text string, font Font) Fl
}

// Context stores the external resources needed to resolve
// computed values. All fields are optional: a nil *Context
// is valid and equivalent to the zero value.
type Context struct {
	// Database provides the device information.
	// If nil, the built-in profile of Medium is used.
	Database StyleDatabase
	Medium   string

	// ViewportWidth and ViewportHeight, in points, take
	// precedence over the database when not zero.
	ViewportWidth, ViewportHeight Fl

	// Measurer is used for ex, cap, ch and ic units and by the
	// table layout. If nil, the database font ratios are used.
	Measurer TextMeasurer

	// Evaluator defaults to CalcEvaluator.
	Evaluator Evaluator
}

func (ctx *Context) database() StyleDatabase {
	if ctx == nil {
		return nil
	}
	if ctx.Database != nil {
		return ctx.Database
	}
	if ctx.Medium != "" {
		if db, ok := DefaultProfiles().Database(ctx.Medium); ok {
			return db
		}
	}
	return nil
}

func (ctx *Context) evaluator() Evaluator {
	if ctx == nil || ctx.Evaluator == nil {
		return CalcEvaluator{}
	}
	return ctx.Evaluator
}

// Viewport returns the size of the initial containing block, in points,
// or ErrStyleDatabaseRequired.
func (ctx *Context) Viewport() (width, height Fl, err error) {
	if ctx != nil && ctx.ViewportWidth != 0 && ctx.ViewportHeight != 0 {
		return ctx.ViewportWidth, ctx.ViewportHeight, nil
	}
	if db := ctx.database(); db != nil {
		w, h := db.ViewportSize()
		return w, h, nil
	}
	return 0, 0, ErrStyleDatabaseRequired
}

// mediumFontSize is the size of the `medium` keyword, in points.
func (ctx *Context) mediumFontSize() Fl {
	if db := ctx.database(); db != nil {
		_, size := db.DefaultFont()
		return size
	}
	return pr.MediumFontSize
}

// TextMeasurer returns the measurer used for ex, cap, ch and ic units,
// or nil if there is neither a measurer nor a database.
func (ctx *Context) TextMeasurer() TextMeasurer {
	if ctx != nil && ctx.Measurer != nil {
		return ctx.Measurer
	}
	if db := ctx.database(); db != nil {
		return ApproximateMeasurer{db}
	}
	return nil
}

// ApproximateMeasurer uses the font ratios of a database,
// assuming every character has the width of "0" (or of "水"
// for non ASCII characters).
type ApproximateMeasurer struct {
	Database StyleDatabase
}

func (am ApproximateMeasurer) Metrics(font Font) FontRatios {
	for _, family := range font.Families {
		if r, ok := am.Database.FontRatios(family); ok {
			return r
		}
	}
	family, _ := am.Database.DefaultFont()
	if r, ok := am.Database.FontRatios(family); ok {
		return r
	}
	return FontRatios{XHeight: 0.5, CapHeight: 0.7, ChWidth: 0.5, IcWidth: 1}
}

func (am ApproximateMeasurer) TextWidth(text string, font Font) Fl {
	ratios := am.Metrics(font)
	var width Fl
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		if r < utf8.RuneSelf {
			width += ratios.ChWidth
		} else {
			width += ratios.IcWidth
		}
	}
	return width * font.Size
}
