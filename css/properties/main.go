// Package properties defines the static data about the CSS properties
// supported by the style engine (longhands of each shorthand, inheritance,
// initial values), and the types used for computed values.
//
// Schematically, the style computation is :
//
//	declared text (cascade)-> cascaded text (Compute)-> DimOrS
package properties

import (
	"github.com/benoitkugler/webstyle/utils"
)

type Fl = utils.Fl

// CSSWideKeywords may be used as the value of any property.
var CSSWideKeywords = utils.NewSet("initial", "inherit", "unset", "revert", "revert-layer")

// IsCSSWideKeyword is case-insensitive.
func IsCSSWideKeyword(s string) bool {
	return CSSWideKeywords.Has(utils.AsciiLower(s))
}

// IsCustom returns true for custom properties (--name).
func IsCustom(name string) bool {
	return len(name) > 2 && name[0] == '-' && name[1] == '-'
}
