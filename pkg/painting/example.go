// example.go — Sample painting for `gridpaint init`.
package painting

// ExampleJSON returns a small sample painting: a red heart on a transparent
// background, 8×7 cells of 16×16 pixels.
func ExampleJSON() string {
	return `{
  "name": "heart",
  "width": 8,
  "height": 7,
  "cellWidth": 16,
  "cellHeight": 16,
  "palette": ["transparent", "#000", "red", "rgba(255, 255, 255, 0.8)"],
  "grid": [
    [0, 1, 1, 0, 0, 1, 1, 0],
    [1, 2, 3, 1, 1, 2, 2, 1],
    [1, 2, 2, 2, 2, 2, 2, 1],
    [0, 1, 2, 2, 2, 2, 1, 0],
    [0, 0, 1, 2, 2, 1, 0, 0],
    [0, 0, 0, 1, 1, 0, 0, 0],
    [0, 0, 0, 0, 0, 0, 0, 0]
  ]
}`
}
