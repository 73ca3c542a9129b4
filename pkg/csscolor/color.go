// Package csscolor converts CSS-like color strings into packed 32-bit RGBA values.
//
// Supported forms are hex (#rgb, #rgba, #rrggbb, #rrggbbaa), the legacy
// rgb()/rgba() and hsl()/hsla() functions, and the CSS named colors.
package csscolor

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrUnsupportedColorFormat is returned for strings matching none of the known grammars.
var ErrUnsupportedColorFormat = errors.New("unsupported color format")

// RGBA32 is a non-premultiplied color packed as 0xRRGGBBAA.
type RGBA32 uint32

// Transparent is the value of an empty color string and of the "transparent" keyword.
const Transparent RGBA32 = 0x00000000

// FromNRGBA packs c.
func FromNRGBA(c color.NRGBA) RGBA32 {
	return RGBA32(uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A))
}

func (c RGBA32) R() uint8 { return uint8(c >> 24) }
func (c RGBA32) G() uint8 { return uint8(c >> 16) }
func (c RGBA32) B() uint8 { return uint8(c >> 8) }
func (c RGBA32) A() uint8 { return uint8(c) }

// NRGBA returns c as a color.NRGBA.
func (c RGBA32) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// String formats c as "#rrggbbaa", which Parse accepts.
func (c RGBA32) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// Parse converts a color string to RGBA32. An empty string yields Transparent.
func Parse(s string) (RGBA32, error) {
	if s == "" {
		return Transparent, nil
	}

	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "#"):
		c, ok := parseHex(v[1:])
		if !ok {
			break
		}
		return c, nil
	case isFunc(v, "rgb", "rgba"):
		return parseRGB(scanNumbers(v)), nil
	case isFunc(v, "hsl", "hsla"):
		return parseHSL(scanNumbers(v)), nil
	default:
		if c, ok := named[v]; ok {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedColorFormat, s)
}

// MustParse is like Parse but panics on error. Meant for literals.
func MustParse(s string) RGBA32 {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseAll resolves every entry of a palette, keeping its order.
func ParseAll(specs []string) ([]RGBA32, error) {
	out := make([]RGBA32, len(specs))
	for i, s := range specs {
		c, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// isFunc reports whether v is a functional notation call to one of names.
func isFunc(v string, names ...string) bool {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return false
	}
	fn := strings.TrimSpace(v[:open])
	for _, n := range names {
		if fn == n {
			return true
		}
	}
	return false
}

func parseHex(h string) (RGBA32, bool) {
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return 0, false
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, false
	}

	switch len(h) {
	case 3:
		return RGBA32(nibbles(n, 3)<<8 | 0xFF), true
	case 4:
		return RGBA32(nibbles(n, 4)), true
	case 6:
		return RGBA32(n<<8 | 0xFF), true
	}
	return RGBA32(n), true
}

// nibbles widens the count low nibbles of n into bytes, duplicating each (0xf -> 0xff).
func nibbles(n uint64, count int) uint32 {
	var out uint32
	for i := count - 1; i >= 0; i-- {
		v := uint32(n>>(4*i)) & 0xF
		out = out<<8 | (v*16 + v)
	}
	return out
}

func parseRGB(nums []float64) RGBA32 {
	var ch [3]uint8
	for i := range ch {
		if i < len(nums) {
			ch[i] = channel(nums[i])
		}
	}
	return pack(ch[0], ch[1], ch[2], alphaAt(nums, 3))
}

// Channel selectors for the HSL to RGB conversion.
const (
	hslRed   = 0
	hslGreen = 8
	hslBlue  = 4
)

func parseHSL(nums []float64) RGBA32 {
	var h, s, l float64
	if len(nums) > 0 {
		h = nums[0]
	}
	if len(nums) > 1 {
		s = nums[1]
	}
	if len(nums) > 2 {
		l = nums[2]
	}

	part := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		a := s * math.Min(l, 1-l)
		v := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return channel(math.Round(v * 255))
	}
	return pack(part(hslRed), part(hslGreen), part(hslBlue), alphaAt(nums, 3))
}

func alphaAt(nums []float64, i int) uint8 {
	if i >= len(nums) {
		return 0xFF
	}
	return channel(math.Floor(nums[i] * 255))
}

// channel truncates v toward zero and clamps it into a byte.
func channel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func pack(r, g, b, a uint8) RGBA32 {
	return RGBA32(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}
