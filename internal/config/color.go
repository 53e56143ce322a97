package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// ParseColor accepts "#rrggbb", "rgb(r, g, b)" and "rgba(r, g, b[, a])".
// An empty string yields the default grey. Alpha is a 0..1 fraction.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return dynamo.DefaultColor, nil
	}

	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	fn := s[:open]
	if fn != "rgb" && fn != "rgba" {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
		}
		ch[i] = uint8(v)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}
