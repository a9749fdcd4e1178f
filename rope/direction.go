package rope

import "strings"

// Vertical 方向的竖直分量
type Vertical int

const (
	VNone Vertical = iota
	Up
	Down
)

// Horizontal 方向的水平分量
type Horizontal int

const (
	HNone Horizontal = iota
	Left
	Right
)

// Direction 由竖直与水平两个独立分量组成，共 9 种组合（含 none）
type Direction struct {
	V Vertical
	H Horizontal
}

var (
	DirNone      = Direction{}
	DirUp        = Direction{V: Up}
	DirDown      = Direction{V: Down}
	DirLeft      = Direction{H: Left}
	DirRight     = Direction{H: Right}
	DirUpLeft    = Direction{V: Up, H: Left}
	DirUpRight   = Direction{V: Up, H: Right}
	DirDownLeft  = Direction{V: Down, H: Left}
	DirDownRight = Direction{V: Down, H: Right}
)

// ParseDirection 前缀决定竖直分量，后缀决定水平分量；无法识别的部分视为 none
func ParseDirection(s string) Direction {
	s = strings.ToLower(strings.TrimSpace(s))
	var d Direction
	switch {
	case strings.HasPrefix(s, "down"):
		d.V = Down
	case strings.HasPrefix(s, "up"):
		d.V = Up
	}
	switch {
	case strings.HasSuffix(s, "left"):
		d.H = Left
	case strings.HasSuffix(s, "right"):
		d.H = Right
	}
	return d
}

func (d Direction) String() string {
	var b strings.Builder
	switch d.V {
	case Up:
		b.WriteString("up")
	case Down:
		b.WriteString("down")
	}
	switch d.H {
	case Left:
		b.WriteString("left")
	case Right:
		b.WriteString("right")
	}
	if b.Len() == 0 {
		return "none"
	}
	return b.String()
}

// IsNone 是否为空操作方向
func (d Direction) IsNone() bool { return d == DirNone }

// Delta 返回头部的一步位移；up 使 y 增加，down 使 y 减少
func (d Direction) Delta() (dx, dy int) {
	switch d.V {
	case Up:
		dy = 1
	case Down:
		dy = -1
	}
	switch d.H {
	case Left:
		dx = -1
	case Right:
		dx = 1
	}
	return dx, dy
}

// DirectionFromOffset 将 StepOffset 的符号组合成方向
func DirectionFromOffset(o StepOffset) Direction {
	var d Direction
	switch {
	case o.K > 0:
		d.V = Up
	case o.K < 0:
		d.V = Down
	}
	switch {
	case o.H < 0:
		d.H = Left
	case o.H > 0:
		d.H = Right
	}
	return d
}
