// Package declaration implements a CSS declaration block,
// as found in a style rule or a `style` attribute.
//
// A Declaration stores longhands (and custom properties) only:
// shorthands are expanded when set, and rebuilt when serialized.
// It is not safe for concurrent mutation.
package declaration

import (
	"sort"
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/shorthand"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/utils"
	"go.uber.org/multierr"
)

// Declaration is a list of properties, with their priority.
// The zero value is an empty, usable declaration.
type Declaration struct {
	props map[string]*property
	// order of assignment
	order []string

	// live shorthands: each one still claims at least one longhand
	live map[*record]bool
	// shorthands which lost all their claims to another shorthand,
	// the most recent last
	shadowed []*record
}

type property struct {
	value     string
	important bool
	// scope is the number of longhands set with the value :
	// 1 for a longhand, or the size of the shorthand
	scope int
	// owner is the shorthand which set the value, if any
	owner   *record
	pending bool
	// via is the shorthand of a pending value
	via string
}

// record is a shorthand assignment. It only tracks which longhands
// the shorthand claims: the values live in the longhand properties,
// and serialization rebuilds shorthands from them.
type record struct {
	name      string
	important bool
	// the longhands set by the shorthand, and
	// the ones which still have the shorthand value
	longhands utils.Set
	claims    utils.Set
}

func (r *record) clone() *record {
	out := *r
	out.longhands = r.longhands.Copy()
	out.claims = r.claims.Copy()
	return &out
}

// New parses the given declaration block. See SetCSSText.
func New(css string) (*Declaration, error) {
	var d Declaration
	err := d.SetCSSText(css)
	return &d, err
}

func (d *Declaration) init() {
	if d.props == nil {
		d.props = make(map[string]*property)
		d.live = make(map[*record]bool)
	}
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if pr.IsCustom(name) {
		return name
	}
	return utils.AsciiLower(name)
}

// SetProperty sets (or updates) the property `name`, which may be a shorthand.
// An empty value removes the property.
//
// A non important value never overrides an important one, and an important
// value only overrides an important value of equal or narrower scope:
// such assignments are silently ignored.
func (d *Declaration) SetProperty(name, value string, important bool) error {
	name = normalizeName(name)
	if strings.TrimSpace(value) == "" && !pr.IsCustom(name) {
		d.RemoveProperty(name)
		return nil
	}
	return d.set(name, parser.Tokenize(value), important)
}

func (d *Declaration) set(name string, tokens []parser.Token, important bool) error {
	d.init()
	if pr.IsShorthand(name) {
		longhands, err := validation.Expand(name, tokens)
		if err != nil {
			return err
		}
		d.setShorthand(name, longhands, important)
		return nil
	}
	value, err := validation.ValidateLonghand(name, tokens)
	if err != nil {
		return err
	}
	if !d.canOverride(name, important, 1) {
		return nil
	}
	d.release(name, nil)
	d.store(name, &property{value: value, important: important, scope: 1})
	return nil
}

// canOverride applies the priority rules
func (d *Declaration) canOverride(longhand string, important bool, scope int) bool {
	existing := d.props[longhand]
	if existing == nil || !existing.important {
		return true
	}
	return important && existing.scope <= scope
}

// store sets the property and moves it to the end of the assignment order
func (d *Declaration) store(name string, p *property) {
	if _, has := d.props[name]; has {
		d.removeFromOrder(name)
	}
	d.props[name] = p
	d.order = append(d.order, name)
}

func (d *Declaration) removeFromOrder(name string) {
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			return
		}
	}
}

func (d *Declaration) setShorthand(name string, longhands []validation.Longhand, important bool) {
	rec := &record{name: name, important: important, longhands: utils.NewSet(), claims: utils.NewSet()}
	for _, l := range longhands {
		rec.longhands.Add(l.Name)
		if !d.canOverride(l.Name, important, len(longhands)) {
			continue
		}
		d.release(l.Name, rec)
		d.store(l.Name, &property{
			value: l.Value, important: important, scope: len(longhands),
			owner: rec, pending: l.Pending,
		})
		if l.Pending {
			d.props[l.Name].via = name
		}
		rec.claims.Add(l.Name)
	}
	if len(rec.claims) != 0 {
		d.live[rec] = true
	}
}

// release removes the claim of the current owner of `longhand`, if any.
// `by` is the shorthand taking over the longhand, or nil.
func (d *Declaration) release(longhand string, by *record) {
	p := d.props[longhand]
	if p == nil || p.owner == nil {
		return
	}
	owner := p.owner
	delete(owner.claims, longhand)
	if len(owner.claims) != 0 {
		return
	}
	delete(d.live, owner)
	if by != nil {
		d.shadowed = append(d.shadowed, owner)
	}
}

// RemoveProperty removes the property `name` (which may be a shorthand)
// and returns its previous value, or an empty string.
func (d *Declaration) RemoveProperty(name string) string {
	name = normalizeName(name)
	old := d.GetPropertyValue(name)
	if d.props == nil {
		return old
	}
	if longhands := pr.Longhands(name); longhands != nil {
		for _, l := range longhands {
			d.removeLonghand(l, false)
		}
	} else {
		d.removeLonghand(name, true)
	}
	return old
}

func (d *Declaration) removeLonghand(name string, resurrect bool) {
	p := d.props[name]
	if p == nil {
		return
	}
	d.release(name, nil)
	delete(d.props, name)
	d.removeFromOrder(name)
	if resurrect && p.owner != nil && len(p.owner.claims) != 0 {
		d.resurrect(name, p.owner)
	}
}

// resurrect looks for a shadowed shorthand which also set `removed`
// and covers the longhands still claimed by `owner`, with an equal or higher
// priority. If found, it takes the claims back from `owner`.
// The longhand values are left untouched: only the claims move.
func (d *Declaration) resurrect(removed string, owner *record) {
	for i := len(d.shadowed) - 1; i >= 0; i-- {
		candidate := d.shadowed[i]
		if !candidate.longhands.Has(removed) || !owner.claims.IsSubset(candidate.longhands) {
			continue
		}
		if owner.important && !candidate.important {
			continue
		}
		d.shadowed = append(d.shadowed[:i], d.shadowed[i+1:]...)
		for l := range owner.claims {
			candidate.claims.Add(l)
			d.props[l].owner = candidate
		}
		owner.claims = utils.NewSet()
		delete(d.live, owner)
		d.live[candidate] = true
		return
	}
}

// GetPropertyValue returns the value of the property, or an empty string.
// For shorthands, the value is only returned if all the longhands are
// set, with the same priority, and may be represented by the shorthand.
func (d *Declaration) GetPropertyValue(name string) string {
	name = normalizeName(name)
	longhands := pr.Longhands(name)
	if longhands == nil {
		p := d.props[name]
		if p == nil || p.pending {
			return ""
		}
		return p.value
	}
	values := make([]string, len(longhands))
	pending := 0
	for i, l := range longhands {
		p := d.props[l]
		if p == nil || p.important != d.props[longhands[0]].important {
			return ""
		}
		if p.pending {
			pending++
		}
		values[i] = p.value
	}
	if pending != 0 {
		// all the longhands must come from the same pending value
		for _, l := range longhands {
			p := d.props[l]
			if !p.pending || p.via != name || p.value != values[0] {
				return ""
			}
		}
		return values[0]
	}
	value, _ := shorthand.Build(name, values)
	return value
}

// GetPropertyPriority returns "important" or an empty string.
// A shorthand is important if all its longhands are.
func (d *Declaration) GetPropertyPriority(name string) string {
	name = normalizeName(name)
	longhands := pr.Longhands(name)
	if longhands == nil {
		longhands = []string{name}
	}
	for _, l := range longhands {
		if p := d.props[l]; p == nil || !p.important {
			return ""
		}
	}
	return "important"
}

// Length returns the number of longhands and custom properties.
func (d *Declaration) Length() int { return len(d.order) }

// Item returns the name of the i-th property, in assignment order,
// or an empty string if `i` is out of range.
func (d *Declaration) Item(i int) string {
	if i < 0 || i >= len(d.order) {
		return ""
	}
	return d.order[i]
}

// PropertyNames returns the names of the longhands and custom properties,
// in assignment order.
func (d *Declaration) PropertyNames() []string {
	return append([]string(nil), d.order...)
}

// LiveShorthands returns the sorted names of the shorthands
// still claiming a longhand.
func (d *Declaration) LiveShorthands() []string {
	set := utils.NewSet()
	for r := range d.live {
		set.Add(r.name)
	}
	return set.Sorted()
}

// Get returns the declared value of the longhand or custom property `name`.
// For longhands set by a shorthand depending on var(), Value is the
// shorthand value, and Pending is true.
func (d *Declaration) Get(name string) (shorthand.Property, bool) {
	p := d.props[normalizeName(name)]
	if p == nil {
		return shorthand.Property{}, false
	}
	return d.export(normalizeName(name), p), true
}

func (d *Declaration) export(name string, p *property) shorthand.Property {
	out := shorthand.Property{Name: name, Value: p.value, Important: p.important, Pending: p.pending}
	if p.pending {
		out.Shorthand = p.via
	}
	return out
}

// Put stores an already validated longhand or custom property,
// replacing any previous value without applying the priority rules.
// It is used to build cascaded styles.
func (d *Declaration) Put(p shorthand.Property) {
	d.init()
	d.release(p.Name, nil)
	prop := &property{value: p.Value, important: p.Important, scope: 1, pending: p.Pending}
	if p.Pending {
		prop.via = p.Shorthand
	}
	d.store(p.Name, prop)
}

// Properties returns the longhands and custom properties, in assignment order.
func (d *Declaration) Properties() []shorthand.Property {
	out := make([]shorthand.Property, len(d.order))
	for i, name := range d.order {
		out[i] = d.export(name, d.props[name])
	}
	return out
}

// CSSText returns the canonical serialization, using shorthands when possible.
func (d *Declaration) CSSText() string {
	return shorthand.Text(shorthand.Collapse(d.Properties()))
}

// MinifiedCSSText returns the compact serialization.
func (d *Declaration) MinifiedCSSText() string {
	return shorthand.MinifiedText(shorthand.Collapse(d.Properties()))
}

// SetCSSText replaces the content of the declaration by
// the given declaration list. Invalid declarations are skipped:
// each one is logged and the returned error combines them.
func (d *Declaration) SetCSSText(css string) error {
	*d = Declaration{}
	d.init()
	declarations, err := parser.ParseDeclarationListString(css)
	for _, decl := range declarations {
		if errSet := d.set(decl.Name, decl.Value, decl.Important); errSet != nil {
			err = multierr.Append(err, errSet)
		}
	}
	for _, e := range multierr.Errors(err) {
		logger.WarningLogger.Warnf("Ignored declaration: %s", e)
	}
	return err
}

// Clone returns a deep copy of the declaration.
func (d *Declaration) Clone() *Declaration {
	out := &Declaration{}
	out.init()
	records := map[*record]*record{}
	cloneRecord := func(r *record) *record {
		if r == nil {
			return nil
		}
		if c, ok := records[r]; ok {
			return c
		}
		c := r.clone()
		records[r] = c
		return c
	}
	for name, p := range d.props {
		c := *p
		c.owner = cloneRecord(p.owner)
		out.props[name] = &c
	}
	for r := range d.live {
		out.live[cloneRecord(r)] = true
	}
	for _, r := range d.shadowed {
		out.shadowed = append(out.shadowed, cloneRecord(r))
	}
	out.order = append([]string(nil), d.order...)
	return out
}

// Diff is the result of comparing two declarations.
type Diff struct {
	LeftOnly  []string // properties only in the left declaration
	RightOnly []string // properties only in the right declaration
	Different []string // properties with different value or priority
}

// IsEmpty returns true if the declarations are equivalent.
func (df Diff) IsEmpty() bool {
	return len(df.LeftOnly) == 0 && len(df.RightOnly) == 0 && len(df.Different) == 0
}

// Diff compares the longhands and custom properties of `d` and `other`.
// The lists are sorted by name.
func (d *Declaration) Diff(other *Declaration) Diff {
	var out Diff
	for name, p := range d.props {
		q, ok := other.props[name]
		if !ok {
			out.LeftOnly = append(out.LeftOnly, name)
		} else if p.value != q.value || p.important != q.important || p.pending != q.pending {
			out.Different = append(out.Different, name)
		}
	}
	for name := range other.props {
		if _, ok := d.props[name]; !ok {
			out.RightOnly = append(out.RightOnly, name)
		}
	}
	sort.Strings(out.LeftOnly)
	sort.Strings(out.RightOnly)
	sort.Strings(out.Different)
	return out
}
