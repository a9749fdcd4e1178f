package rope

import "math"

// StepOffset 每个 tick 对头部的逐轴位移，H/K 取值 {-1, 0, 1}
type StepOffset struct {
	H int `json:"h"`
	K int `json:"k"`
}

// NextOffset 按数字直线（类 Bresenham）计算从 start 逼近 end 的下一步。
// offset 为调用方携带的子步偏移，本函数不修改它；start == end 时返回 (0,0)。
func NextOffset(start, end GridPoint, offset StepOffset) StepOffset {
	if start == end {
		return StepOffset{}
	}

	x1 := start.X + offset.H
	y1 := start.Y + offset.K
	dx := end.X - x1
	dy := end.Y - y1

	if dx == 0 {
		return StepOffset{H: 0, K: sign(dy)}
	}

	m := float64(dy) / float64(dx)
	b := float64(y1) - m*float64(x1)

	var h, k int
	if abs(dy) <= abs(dx) {
		h = sign(dx)
		y := int(math.Round(m*float64(x1+h) + b))
		k = sign(y - y1)
	} else {
		k = sign(dy)
		x := int(math.Round((float64(y1+k) - b) / m))
		h = sign(x - x1)
	}
	return StepOffset{H: h, K: k}
}
