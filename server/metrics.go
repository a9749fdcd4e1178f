package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount         int64 // 统计的 Tick 次数
	InputsAccepted    int64 // 被接受的输入数
	RateLimited       int64 // 因同帧限流被拒绝的输入数
	OldSeqIgnored     int64 // 因旧序列被忽略的输入数
	DropsSimulated    int64 // 因模拟丢包被丢弃的输入数
	ChanFullDiscarded int64 // 因通道满被丢弃的输入数
	SchemaRejected    int64 // 格式非法的入站消息数
	PointerIgnored    int64 // 非活动指针的事件数
	TrackerSteps      int64 // 指针追踪驱动的移动次数
	Players           int64 // 当前在线玩家数
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncRateLimited()       { atomic.AddInt64(&m.RateLimited, 1) }
func (m *RoomMetrics) IncOldSeqIgnored()     { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *RoomMetrics) IncDropsSimulated()    { atomic.AddInt64(&m.DropsSimulated, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) IncSchemaRejected()    { atomic.AddInt64(&m.SchemaRejected, 1) }
func (m *RoomMetrics) IncPointerIgnored()    { atomic.AddInt64(&m.PointerIgnored, 1) }
func (m *RoomMetrics) IncTrackerSteps()      { atomic.AddInt64(&m.TrackerSteps, 1) }
func (m *RoomMetrics) AddPlayers(n int64)    { atomic.AddInt64(&m.Players, n) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"rate_limited":        atomic.LoadInt64(&m.RateLimited),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"drops_simulated":     atomic.LoadInt64(&m.DropsSimulated),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"schema_rejected":     atomic.LoadInt64(&m.SchemaRejected),
		"pointer_ignored":     atomic.LoadInt64(&m.PointerIgnored),
		"tracker_steps":       atomic.LoadInt64(&m.TrackerSteps),
		"players":             atomic.LoadInt64(&m.Players),
		"avg_tick_ms":         avgMs,
	}
}
