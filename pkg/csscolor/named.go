package csscolor

import "golang.org/x/image/colornames"

// named maps lowercase CSS color keywords to their values. It is built once
// from the SVG 1.1 keyword table and never modified afterwards.
var named = buildNamed()

func buildNamed() map[string]RGBA32 {
	m := make(map[string]RGBA32, len(colornames.Map)+2)
	for name, c := range colornames.Map {
		m[name] = pack(c.R, c.G, c.B, c.A)
	}
	// Keywords newer than SVG 1.1.
	m["transparent"] = Transparent
	m["rebeccapurple"] = 0x663399FF
	return m
}

// Named reports the value of a CSS color keyword.
func Named(name string) (RGBA32, bool) {
	c, ok := named[name]
	return c, ok
}
