package tui

import "math"

// grid maps terminal cells onto arena pixels. One column spans scale
// pixels horizontally and one row spans 2*scale pixels vertically.
type grid struct {
	cols, rows int
	scale      float64
}

func newGrid(arenaW, arenaH, termW, termH int) grid {
	termW = max(termW, 1)
	termH = max(termH, 1)
	scale := math.Max(float64(arenaW)/float64(termW), float64(arenaH)/float64(2*termH))
	scale = math.Max(scale, 1)
	return grid{
		cols:  int(math.Ceil(float64(arenaW) / scale)),
		rows:  int(math.Ceil(float64(arenaH) / (2 * scale))),
		scale: scale,
	}
}

// sample returns the arena pixel shown in column x, half row y.
func (g grid) sample(x, half int) (int, int) {
	return int((float64(x) + 0.5) * g.scale), int((float64(half) + 0.5) * g.scale)
}

// arena returns the arena point under the centre of a cell.
func (g grid) arena(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * g.scale, float64(2*y+1) * g.scale
}

func (g grid) contains(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}
