package atoms

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA styling value, grounded on original_source's
// Types.h `struct Color { int r, g, b, a; Color(const std::string &); }`.
type Color struct {
	R, G, B, A int
}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" hex literal. It returns a
// plain error; the compiler's interpretAction wraps it into an
// errors.InvalidColor diagnostic (E0103) carrying source position.
func ParseColor(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")
	switch len(s) {
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid colour literal %q: want #rrggbb or #rrggbbaa", hex)
	}

	component := func(i int) (int, error) {
		v, err := strconv.ParseUint(s[i:i+2], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid colour literal %q: %w", hex, err)
		}
		return int(v), nil
	}

	r, err := component(0)
	if err != nil {
		return Color{}, err
	}
	g, err := component(2)
	if err != nil {
		return Color{}, err
	}
	b, err := component(4)
	if err != nil {
		return Color{}, err
	}
	a := 255
	if len(s) == 8 {
		a, err = component(6)
		if err != nil {
			return Color{}, err
		}
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("%d %d %d %d", c.R, c.G, c.B, c.A)
}
