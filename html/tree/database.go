package tree

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/utils"
	yaml "gopkg.in/yaml.v3"
)

type Fl = utils.Fl

// StyleDatabase provides the device and font information
// needed to resolve some relative units.
type StyleDatabase interface {
	// ViewportSize returns the size of the initial containing block, in points.
	ViewportSize() (width, height Fl)
	// NaturalUnit is the unit used to report lengths to the user.
	NaturalUnit() pr.Unit
	// DefaultFont returns the family and size (in points)
	// used for the `medium` keyword and the initial font-family.
	DefaultFont() (family string, size Fl)
	// DefaultColor is the initial value of `color`.
	DefaultColor() string
	// FontRatios returns the metrics of the given family, relative
	// to the font size.
	FontRatios(family string) (FontRatios, bool)
	// SystemFont returns the `font` shorthand value used for
	// system fonts like `caption`.
	SystemFont(name string) (string, bool)
}

// FontRatios are font metrics, given relatively to the font size.
type FontRatios struct {
	XHeight   Fl `yaml:"x-height"`
	CapHeight Fl `yaml:"cap-height"`
	ChWidth   Fl `yaml:"ch-width"`
	IcWidth   Fl `yaml:"ic-width"`
}

// Profile describes a device. Sizes are in CSS pixels.
// It implements StyleDatabase.
type Profile struct {
	Medium      string                `yaml:"medium"`
	Width       Fl                    `yaml:"width"`
	Height      Fl                    `yaml:"height"`
	FontFamily  string                `yaml:"font-family"`
	FontSize    Fl                    `yaml:"font-size"`
	Unit        string                `yaml:"natural-unit"`
	Color       string                `yaml:"color"`
	Fonts       map[string]FontRatios `yaml:"fonts"`
	SystemFonts map[string]string     `yaml:"system-fonts"`
}

var pxToPt = pr.LengthsToPoints[pr.Px]

func (p *Profile) ViewportSize() (width, height Fl) {
	return p.Width * pxToPt, p.Height * pxToPt
}

func (p *Profile) NaturalUnit() pr.Unit {
	if u, ok := pr.ParseUnit(p.Unit); ok && u.IsAbsoluteLength() {
		return u
	}
	return pr.Pt
}

func (p *Profile) DefaultFont() (string, Fl) {
	family, size := p.FontFamily, p.FontSize*pxToPt
	if family == "" {
		family = "serif"
	}
	if size <= 0 {
		size = pr.MediumFontSize
	}
	return family, size
}

func (p *Profile) DefaultColor() string {
	if p.Color == "" {
		return "canvastext"
	}
	return p.Color
}

func (p *Profile) FontRatios(family string) (FontRatios, bool) {
	r, ok := p.Fonts[utils.AsciiLower(family)]
	return r, ok
}

func (p *Profile) SystemFont(name string) (string, bool) {
	s, ok := p.SystemFonts[name]
	return s, ok
}

// ProfileSet stores profiles by medium.
type ProfileSet map[string]*Profile

// Database returns the profile for the given medium.
func (ps ProfileSet) Database(medium string) (StyleDatabase, bool) {
	p, ok := ps[utils.AsciiLower(medium)]
	if !ok {
		return nil, false
	}
	return p, true
}

type profileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadProfiles reads a yaml list of profiles.
func LoadProfiles(r io.Reader) (ProfileSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file profileFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	out := make(ProfileSet, len(file.Profiles))
	for _, p := range file.Profiles {
		if p.Medium == "" {
			return nil, fmt.Errorf("missing medium in profile")
		}
		if p.Width <= 0 || p.Height <= 0 {
			return nil, fmt.Errorf("invalid size for medium %s", p.Medium)
		}
		out[utils.AsciiLower(p.Medium)] = p
	}
	return out, nil
}

//go:embed profiles.yaml
var defaultProfiles []byte

var embeddedProfiles ProfileSet

func init() {
	var err error
	embeddedProfiles, err = LoadProfiles(bytes.NewReader(defaultProfiles))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded profiles: %s", err))
	}
}

// DefaultProfiles returns the built-in profiles for the
// "screen", "print" and "handheld" media.
func DefaultProfiles() ProfileSet { return embeddedProfiles }
