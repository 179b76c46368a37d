package selector

// UIState stores the dynamic and form related states
// of an element, as used by the matching of pseudo-classes.
type UIState uint32

const (
	Link UIState = 1 << iota
	Visited
	Hover
	Active
	Focus
	FocusVisible
	FocusWithin
	Target
	Enabled
	Disabled
	Checked
	Indeterminate
	ReadOnly
	PlaceholderShown
	Default
	Valid
	Invalid
	Required
	Optional
	InRange
	OutOfRange
)

// Element is the view of a document element needed to match selectors.
//
// Navigation methods return nil when there is no such element;
// they only ever return elements (never text or comment nodes).
// Elements are compared with ==, so implementations should use pointer
// (or otherwise comparable) types.
type Element interface {
	// LocalName is the element name, lower-cased for HTML elements.
	LocalName() string
	NamespaceURI() string

	// Attribute returns the value of the given attribute, or "" and false.
	// An empty namespace selects attributes without namespace,
	// and "*" selects the first attribute with this name in any namespace.
	// The host decides how the name case is compared.
	Attribute(namespace, name string) (string, bool)
	ID() string
	// ClassText is the raw `class` attribute
	ClassText() string

	// Lang is the language of the element, as inherited
	// from its ancestors (may be empty).
	Lang() string
	// Dir is the resolved directionality, "ltr" or "rtl".
	Dir() string
	// State returns the dynamic and form states.
	State() UIState
	// IsEmpty returns true if the element has no element or text children.
	IsEmpty() bool

	Parent() Element
	PreviousSibling() Element
	NextSibling() Element
	FirstChild() Element
}
