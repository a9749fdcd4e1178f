package rope

import (
	"fmt"
	"math"
)

// MaxSegments NewFromNumbers 接受的最大段数
const MaxSegments = 1 << 16

// Chain 由若干网格段组成的链条；下标 0 为头部，i 跟随 i-1
type Chain struct {
	segments []GridPoint
}

// New 创建 length 个段，全部位于 (x, y)
func New(length, x, y int) (*Chain, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: length must be at least 1, got %d", ErrInvalidArgument, length)
	}
	segs := make([]GridPoint, length)
	for i := range segs {
		segs[i] = GridPoint{X: x, Y: y}
	}
	return &Chain{segments: segs}, nil
}

// NewFromNumbers 供 JSON 数值等来源使用：任一参数不是整数则失败
func NewFromNumbers(length, x, y float64) (*Chain, error) {
	for _, v := range [...]float64{length, x, y} {
		if !isInteger(v) {
			return nil, fmt.Errorf("%w: arguments must be integers, got (%v, %v, %v)", ErrInvalidArgument, length, x, y)
		}
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: length must be at least 1, got %v", ErrInvalidArgument, length)
	}
	if length > MaxSegments {
		return nil, fmt.Errorf("%w: length %v above %d", ErrInvalidArgument, length, MaxSegments)
	}
	return New(int(length), int(x), int(y))
}

func isInteger(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v) &&
		v >= math.MinInt64 && v < math.MaxInt64
}

// Len 段数，始终 >= 1
func (c *Chain) Len() int { return len(c.segments) }

// Head 头部位置
func (c *Chain) Head() GridPoint { return c.segments[0] }

// Segments 返回段位置的副本（头部在前）
func (c *Chain) Segments() []GridPoint {
	out := make([]GridPoint, len(c.segments))
	copy(out, c.segments)
	return out
}

// Move 头部移动一步，随后自头向尾依次传播跟随
func (c *Chain) Move(d Direction) {
	dx, dy := d.Delta()
	c.segments[0] = c.segments[0].Add(dx, dy)

	// 必须按下标顺序：每段依赖前一段本次已更新的位置
	for i := 1; i < len(c.segments); i++ {
		lead, seg := c.segments[i-1], c.segments[i]
		ox, oy := lead.X-seg.X, lead.Y-seg.Y
		if max(abs(ox), abs(oy)) > 1 {
			c.segments[i] = seg.Add(sign(ox), sign(oy))
		}
	}
}

// AddNode 在尾部追加一段，位置与当前尾段相同
func (c *Chain) AddNode() {
	c.segments = append(c.segments, c.segments[len(c.segments)-1])
}

// RemoveNode 移除尾段；只剩一段时不做任何事
func (c *Chain) RemoveNode() {
	if len(c.segments) > 1 {
		c.segments = c.segments[:len(c.segments)-1]
	}
}
