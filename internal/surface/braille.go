package surface

import "strings"

// Braille patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// minVisibleAlpha is the cutoff below which a monochrome dot is not
// worth setting at all.
const minVisibleAlpha = 0.02

// Braille renders onto a grid of Braille cells. Each cell holds 2x4
// dots, so a w x h cell grid exposes a (w*2) x (h*4) dot surface; the
// dot density stands in for device pixel ratio on terminals.
type Braille struct {
	Cols, Rows int
	Grid       [][]rune
}

func NewBraille(cols, rows int) *Braille {
	b := &Braille{
		Cols: cols,
		Rows: rows,
		Grid: make([][]rune, rows),
	}
	for i := range b.Grid {
		b.Grid[i] = make([]rune, cols)
		for j := range b.Grid[i] {
			b.Grid[i][j] = 0x2800
		}
	}
	return b
}

// Size reports the surface extent in dots.
func (b *Braille) Size() (float64, float64) {
	return float64(b.Cols * 2), float64(b.Rows * 4)
}

func (b *Braille) Clear() {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = 0x2800
		}
	}
}

// set turns on the dot at (x, y) in dot coordinates.
func (b *Braille) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= b.Cols || row >= b.Rows {
		return
	}
	b.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (b *Braille) FillCircle(cx, cy, r, alpha float64) {
	if alpha < minVisibleAlpha {
		return
	}
	if r < 1 {
		b.set(int(cx), int(cy))
		return
	}
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r2 {
				b.set(int(cx+dx), int(cy+dy))
			}
		}
	}
}

// StrokeLine draws a line using Bresenham's algorithm.
func (b *Braille) StrokeLine(fx0, fy0, fx1, fy1, alpha float64) {
	if alpha < minVisibleAlpha {
		return
	}
	x0, y0, x1, y1 := int(fx0), int(fy0), int(fx1), int(fy1)
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *Braille) String() string {
	var sb strings.Builder
	for _, row := range b.Grid {
		sb.WriteString(string(row) + "\n")
	}
	return sb.String()
}

// DotCount returns the number of lit dots.
func (b *Braille) DotCount() int {
	count := 0
	for _, row := range b.Grid {
		for _, cell := range row {
			v := cell - 0x2800
			for v != 0 {
				count += int(v & 1)
				v >>= 1
			}
		}
	}
	return count
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
