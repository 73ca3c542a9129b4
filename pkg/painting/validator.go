// validator.go — Non-fatal checks on a painting's palette usage.
package painting

import (
	"fmt"

	"github.com/xob0t/gridpaint/pkg/pngenc"
)

// Validate returns warnings (never fatal errors) about a painting that will
// still encode, such as unused palette entries or a palette large enough to
// force truecolor output.
func (p *Painting) Validate() []string {
	var warnings []string

	if n := len(p.Palette); n > pngenc.MaxIndexedColors {
		warnings = append(warnings, fmt.Sprintf("palette has %d colors, so it is exported as truecolor instead of indexed", n))
	}

	used := make([]bool, len(p.Palette))
	for _, row := range p.Grid {
		for _, idx := range row {
			if idx >= 0 && idx < len(used) {
				used[idx] = true
			}
		}
	}
	unused := 0
	for _, u := range used {
		if !u {
			unused++
		}
	}
	if unused > 0 && len(p.Grid) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d of %d palette colors are not used", unused, len(p.Palette)))
	}

	seen := make(map[string]int, len(p.Palette))
	for i, c := range p.Palette {
		if j, ok := seen[c]; ok {
			warnings = append(warnings, fmt.Sprintf("palette entry %d duplicates entry %d (%q)", i, j, c))
			continue
		}
		seen[c] = i
	}

	return warnings
}
