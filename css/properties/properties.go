package properties

import (
	"sort"

	"github.com/benoitkugler/webstyle/utils"
)

// Sides are given in the canonical order used by the four sides shorthands.
var Sides = [4]string{"top", "right", "bottom", "left"}

var (
	// Inherited stores the inherited longhand properties.
	Inherited = utils.NewSet()

	// KnownProperties stores the longhands and shorthands.
	KnownProperties = utils.NewSet()

	// shorthandsOf is the reverse of `shorthands`
	shorthandsOf = map[string][]string{}
)

func init() {
	for name, def := range definitions {
		KnownProperties.Add(name)
		if def.inherited {
			Inherited.Add(name)
		}
	}
	for name, longhands := range shorthands {
		KnownProperties.Add(name)
		for _, l := range longhands {
			shorthandsOf[l] = append(shorthandsOf[l], name)
		}
	}
	for _, list := range shorthandsOf {
		sort.Slice(list, func(i, j int) bool {
			li, lj := len(shorthands[list[i]]), len(shorthands[list[j]])
			if li != lj {
				return li > lj
			}
			return list[i] < list[j]
		})
	}
}

// IsKnown returns true for supported longhands and shorthands
// and for custom properties.
func IsKnown(name string) bool {
	return KnownProperties.Has(name) || IsCustom(name)
}

// IsShorthand returns true if `name` is a supported shorthand.
func IsShorthand(name string) bool {
	_, ok := shorthands[name]
	return ok
}

// Longhands returns the longhands set by the shorthand `name`,
// or nil if `name` is not a shorthand. The returned slice must not be mutated.
func Longhands(name string) []string {
	return shorthands[name]
}

// ShorthandsOf returns the shorthands setting the longhand `name`,
// the widest first. The returned slice must not be mutated.
func ShorthandsOf(name string) []string {
	return shorthandsOf[name]
}

// Shorthands returns the names of the supported shorthands, sorted.
func Shorthands() []string {
	out := make([]string, 0, len(shorthands))
	for name := range shorthands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Initial returns the specified initial value of the longhand `name`.
// For properties where HasContextInitial is true, it is only a fallback.
func Initial(name string) (string, bool) {
	def, ok := definitions[name]
	return def.initial, ok
}

// IsInherited returns true for inherited longhands and custom properties.
func IsInherited(name string) bool {
	return Inherited.Has(name) || IsCustom(name)
}

// HasContextInitial returns true if the initial value of the property depends
// on the document, the user agent or other properties.
func HasContextInitial(name string) bool {
	return contextInitial[name]
}
