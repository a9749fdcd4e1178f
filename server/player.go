package server

import "ropesim/rope"

// PlayerID 表示玩家唯一标识
type PlayerID string

// Outbox 玩家的出站队列（网络连接的发送端）
type Outbox interface {
	Enqueue(b []byte)
	Close()
}

// RopeState 为广播给客户端的链条状态
type RopeState struct {
	ID       string           `json:"id"`
	Segments []rope.GridPoint `json:"segments"`
	Tracking bool             `json:"tracking"`
}

// StateMessage 出站状态消息
type StateMessage struct {
	Type  string      `json:"type"`
	Tick  int64       `json:"tick"`
	Ropes []RopeState `json:"ropes"`
	Left  []string    `json:"left,omitempty"`
}

// Player 房间内的玩家实体（服务端权威状态）
type Player struct {
	ID      PlayerID
	Chain   *rope.Chain
	Tracker rope.Tracker

	Conn Outbox

	lastSeq        int64
	inputsThisTick int
	dirty          bool // 本 Tick 状态有变化，需要广播
}

func (p *Player) State() RopeState {
	return RopeState{ID: string(p.ID), Segments: p.Chain.Segments(), Tracking: p.Tracker.Tracking()}
}
