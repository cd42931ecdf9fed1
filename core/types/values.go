package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%g,%g,%g,%g)", c.R*255, c.G*255, c.B*255, c.A)
}

// ParseColor parses CSS-style color strings: #rgb, #rrggbb, #rrggbbaa,
// rgb(r,g,b) and rgba(r,g,b,a), plus a handful of keyword colors.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBColor(s)
	}
	return Color{}, fmt.Errorf("could not parse color from value '%s'", s)
}

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 1},
	"white":       {1, 1, 1, 1},
	"red":         {1, 0, 0, 1},
	"green":       {0, 128.0 / 255, 0, 1},
	"blue":        {0, 0, 1, 1},
	"yellow":      {1, 1, 0, 1},
	"transparent": {0, 0, 0, 0},
}

func parseHexColor(hex string) (Color, error) {
	parse := func(s string) (float64, error) {
		n, err := strconv.ParseUint(s, 16, 8)
		return float64(n) / 255, err
	}
	var parts []string
	switch len(hex) {
	case 3:
		parts = []string{hex[0:1] + hex[0:1], hex[1:2] + hex[1:2], hex[2:3] + hex[2:3], "ff"}
	case 6:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], "ff"}
	case 8:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], hex[6:8]}
	default:
		return Color{}, fmt.Errorf("could not parse color from value '#%s'", hex)
	}
	var out [4]float64
	for i, p := range parts {
		v, err := parse(p)
		if err != nil {
			return Color{}, fmt.Errorf("could not parse color from value '#%s'", hex)
		}
		out[i] = v
	}
	return Color{out[0], out[1], out[2], out[3]}, nil
}

func parseRGBColor(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("could not parse color from value '%s'", s)
	}
	fields := strings.Split(s[open+1:len(s)-1], ",")
	if len(fields) != 3 && len(fields) != 4 {
		return Color{}, fmt.Errorf("could not parse color from value '%s'", s)
	}
	var nums [4]float64
	nums[3] = 1
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Color{}, fmt.Errorf("could not parse color from value '%s'", s)
		}
		nums[i] = v
	}
	return Color{nums[0] / 255, nums[1] / 255, nums[2] / 255, nums[3]}, nil
}

// Padding holds per-edge sizes in CSS order: top, right, bottom, left.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// PaddingFrom converts a number or a 1-4 element numeric array using CSS
// shorthand expansion.
func PaddingFrom(v any) (Padding, error) {
	if n, ok := ToFloat(v); ok {
		return Padding{n, n, n, n}, nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) < 1 || len(arr) > 4 {
		return Padding{}, fmt.Errorf("could not parse padding from value '%v'", v)
	}
	nums := make([]float64, len(arr))
	for i, el := range arr {
		n, ok := ToFloat(el)
		if !ok {
			return Padding{}, fmt.Errorf("could not parse padding from value '%v'", v)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 1:
		return Padding{nums[0], nums[0], nums[0], nums[0]}, nil
	case 2:
		return Padding{nums[0], nums[1], nums[0], nums[1]}, nil
	case 3:
		return Padding{nums[0], nums[1], nums[2], nums[1]}, nil
	default:
		return Padding{nums[0], nums[1], nums[2], nums[3]}, nil
	}
}

// NumberArray is a variable-length list of numbers.
type NumberArray struct {
	Values []float64
}

// NumberArrayFrom converts a number or a numeric array.
func NumberArrayFrom(v any) (NumberArray, error) {
	if n, ok := ToFloat(v); ok {
		return NumberArray{Values: []float64{n}}, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return NumberArray{}, fmt.Errorf("could not parse numberArray from value '%v'", v)
	}
	nums := make([]float64, len(arr))
	for i, el := range arr {
		n, ok := ToFloat(el)
		if !ok {
			return NumberArray{}, fmt.Errorf("could not parse numberArray from value '%v'", v)
		}
		nums[i] = n
	}
	return NumberArray{Values: nums}, nil
}

// ColorArray is a variable-length list of colors.
type ColorArray struct {
	Values []Color
}

// ColorArrayFrom converts a color string or an array of color strings.
func ColorArrayFrom(v any) (ColorArray, error) {
	if s, ok := v.(string); ok {
		c, err := ParseColor(s)
		if err != nil {
			return ColorArray{}, err
		}
		return ColorArray{Values: []Color{c}}, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return ColorArray{}, fmt.Errorf("could not parse colorArray from value '%v'", v)
	}
	out := make([]Color, len(arr))
	for i, el := range arr {
		s, ok := el.(string)
		if !ok {
			return ColorArray{}, fmt.Errorf("could not parse colorArray from value '%v'", v)
		}
		c, err := ParseColor(s)
		if err != nil {
			return ColorArray{}, err
		}
		out[i] = c
	}
	return ColorArray{Values: out}, nil
}

// AnchorOffset pairs a named anchor with an x/y offset.
type AnchorOffset struct {
	Anchor  string
	OffsetX float64
	OffsetY float64
}

// VariableAnchorOffsetCollection is an ordered list of anchor/offset pairs.
type VariableAnchorOffsetCollection struct {
	Pairs []AnchorOffset
}

// VariableAnchorOffsetCollectionFrom converts the flat wire form
// [anchor, [x, y], anchor, [x, y], ...].
func VariableAnchorOffsetCollectionFrom(v any) (VariableAnchorOffsetCollection, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 || len(arr)%2 != 0 {
		return VariableAnchorOffsetCollection{}, fmt.Errorf("could not parse variableAnchorOffsetCollection from value '%v'", v)
	}
	pairs := make([]AnchorOffset, 0, len(arr)/2)
	for i := 0; i < len(arr); i += 2 {
		anchor, ok := arr[i].(string)
		if !ok {
			return VariableAnchorOffsetCollection{}, fmt.Errorf("could not parse variableAnchorOffsetCollection from value '%v'", v)
		}
		offset, ok := arr[i+1].([]any)
		if !ok || len(offset) != 2 {
			return VariableAnchorOffsetCollection{}, fmt.Errorf("could not parse variableAnchorOffsetCollection from value '%v'", v)
		}
		x, okX := ToFloat(offset[0])
		y, okY := ToFloat(offset[1])
		if !okX || !okY {
			return VariableAnchorOffsetCollection{}, fmt.Errorf("could not parse variableAnchorOffsetCollection from value '%v'", v)
		}
		pairs = append(pairs, AnchorOffset{Anchor: anchor, OffsetX: x, OffsetY: y})
	}
	return VariableAnchorOffsetCollection{Pairs: pairs}, nil
}

// ProjectionDefinition describes a projection, optionally transitioning
// between two projections.
type ProjectionDefinition struct {
	From       string
	To         string
	Transition float64
}

// ProjectionDefinitionFrom converts a projection name or a
// [from, to, transition] array.
func ProjectionDefinitionFrom(v any) (ProjectionDefinition, error) {
	if s, ok := v.(string); ok {
		return ProjectionDefinition{From: s, To: s, Transition: 1}, nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		return ProjectionDefinition{}, fmt.Errorf("could not parse projectionDefinition from value '%v'", v)
	}
	from, okFrom := arr[0].(string)
	to, okTo := arr[1].(string)
	t, okT := ToFloat(arr[2])
	if !okFrom || !okTo || !okT {
		return ProjectionDefinition{}, fmt.Errorf("could not parse projectionDefinition from value '%v'", v)
	}
	return ProjectionDefinition{From: from, To: to, Transition: t}, nil
}

// ResolvedImage names an image from the style's sprite. Availability is
// resolved by a later pass, never during parsing.
type ResolvedImage struct {
	Name      string
	Available bool
}

// FormattedSection is one run of text with optional overrides.
type FormattedSection struct {
	Text      string
	Scale     *float64
	FontStack string
	TextColor *Color
}

// Formatted is rich text composed of sections.
type Formatted struct {
	Sections []FormattedSection
}

// FormattedFrom converts a plain string into single-section formatted text.
func FormattedFrom(v any) (Formatted, error) {
	s, ok := v.(string)
	if !ok {
		return Formatted{}, fmt.Errorf("could not parse formatted from value '%v'", v)
	}
	return Formatted{Sections: []FormattedSection{{Text: s}}}, nil
}

// ToFloat widens any numeric value to float64. It is the single place that
// decides which Go numeric types count as expression numbers.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
