package logic

// KeypadRows and KeypadCols describe the 4x3 matrix dimensions.
const (
	KeypadRows = 4
	KeypadCols = 3
)

// keypadLayout maps matrix cells to key labels.
var keypadLayout = [KeypadRows][KeypadCols]string{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"7", "8", "9"},
	{"*", "0", "#"},
}

// KeyAt returns the label for a matrix cell, or "" if out of range.
func KeyAt(row, col int) string {
	if row < 0 || row >= KeypadRows || col < 0 || col >= KeypadCols {
		return ""
	}
	return keypadLayout[row][col]
}

// Edge represents a newly-pressed matrix cell.
type Edge struct {
	Row, Col int
}

// EdgeDetector tracks per-cell previous-pressed state and reports rising
// edges only (press, not hold or release).
type EdgeDetector struct {
	prev [][]bool
}

// NewEdgeDetector creates a detector for a rows x cols matrix.
func NewEdgeDetector(rows, cols int) *EdgeDetector {
	prev := make([][]bool, rows)
	for i := range prev {
		prev[i] = make([]bool, cols)
	}
	return &EdgeDetector{prev: prev}
}

// Rising compares a scanned frame against the previous one and returns the
// cells that transitioned from released to pressed, updating the stored
// state. Frames smaller than the matrix are ignored beyond their bounds.
func (d *EdgeDetector) Rising(frame [][]bool) []Edge {
	var edges []Edge
	for r := range d.prev {
		if r >= len(frame) {
			continue
		}
		for c := range d.prev[r] {
			if c >= len(frame[r]) {
				continue
			}
			pressed := frame[r][c]
			if pressed && !d.prev[r][c] {
				edges = append(edges, Edge{Row: r, Col: c})
			}
			d.prev[r][c] = pressed
		}
	}
	return edges
}

// Settle overrides the stored state for one cell. The scanner uses this
// after a debounce wait so a release observed during the wait does not
// register as a second edge.
func (d *EdgeDetector) Settle(row, col int, pressed bool) {
	if row < 0 || row >= len(d.prev) || col < 0 || col >= len(d.prev[row]) {
		return
	}
	d.prev[row][col] = pressed
}
