package server

import (
	"fmt"
	"math"
	"strings"

	"ropesim/rope"
)

// InputKind 输入种类
type InputKind int

const (
	InputMove InputKind = iota
	InputPointerDown
	InputPointerMove
	InputPointerUp
	InputGrow
	InputShrink
)

// Input 客户端输入（意图），由服务端在 Tick 中解释并驱动链条
type Input struct {
	PlayerID PlayerID
	Kind     InputKind
	Dir      rope.Direction
	Pointer  rope.PointerID
	Point    rope.GridPoint // 指针对应的网格坐标
	Seq      int64          // 客户端本地序列号，用于去重
}

// InputMessage 入站 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"move","command":"upleft"}
//
//	{"type":"key","key":"ArrowUp"}
//	{"type":"pointer_down","pointer_id":1,"x":412.5,"y":300,"width":800,"height":600}
type InputMessage struct {
	Type      string  `json:"type"`
	Command   string  `json:"command,omitempty"`
	Key       string  `json:"key,omitempty"`
	Seq       int64   `json:"seq,omitempty"`
	PointerID int64   `json:"pointer_id,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
}

// 按键到方向的映射（方向键与 WASD）
var keyDirections = map[string]rope.Direction{
	"arrowdown":  rope.DirDown,
	"s":          rope.DirDown,
	"arrowleft":  rope.DirLeft,
	"a":          rope.DirLeft,
	"arrowright": rope.DirRight,
	"d":          rope.DirRight,
	"arrowup":    rope.DirUp,
	"w":          rope.DirUp,
}

// KeyDirection 未绑定的按键返回 false
func KeyDirection(key string) (rope.Direction, bool) {
	d, ok := keyDirections[strings.ToLower(key)]
	return d, ok
}

// ToInput 将消息翻译为 Input；指针像素坐标按 cellSize 映射到网格
func (m InputMessage) ToInput(pid PlayerID, cellSize int) (Input, error) {
	in := Input{PlayerID: pid, Seq: m.Seq}
	switch strings.ToLower(m.Type) {
	case "move":
		in.Kind = InputMove
		in.Dir = rope.ParseDirection(m.Command)
	case "key":
		d, ok := KeyDirection(m.Key)
		if !ok {
			return in, fmt.Errorf("unbound key %q", m.Key)
		}
		in.Kind = InputMove
		in.Dir = d
	case "pointer_down", "pointer_move":
		in.Kind = InputPointerDown
		if strings.EqualFold(m.Type, "pointer_move") {
			in.Kind = InputPointerMove
		}
		in.Pointer = rope.PointerID(m.PointerID)
		dims := rope.Dims{Width: m.Width, Height: m.Height}
		in.Point = rope.CanvasToGrid(int(math.Floor(m.X)), int(math.Floor(m.Y)), dims, cellSize)
	case "pointer_up":
		in.Kind = InputPointerUp
		in.Pointer = rope.PointerID(m.PointerID)
	case "grow":
		in.Kind = InputGrow
	case "shrink":
		in.Kind = InputShrink
	default:
		return in, fmt.Errorf("unknown input type %q", m.Type)
	}
	return in, nil
}
