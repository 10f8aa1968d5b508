package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor accepts #RRGGBB or #RRGGBBAA.
func ParseHexColor(value string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var out [4]uint8
	out[3] = 0xFF
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color format: %s", value)
		}
		out[i] = v
	}
	return color.RGBA{R: out[0], G: out[1], B: out[2], A: out[3]}, nil
}
