package rope

import "fmt"

// GridPoint 网格坐标（单元格，而非像素）
type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p GridPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add 返回偏移后的坐标
func (p GridPoint) Add(dx, dy int) GridPoint {
	return GridPoint{X: p.X + dx, Y: p.Y + dy}
}

// Chebyshev 两点间的切比雪夫距离 max(|dx|,|dy|)
func (p GridPoint) Chebyshev(o GridPoint) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
