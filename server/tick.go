package server

import "time"

const (
	// TicksPerSecond 默认世界推进频率（20 TPS）
	TicksPerSecond = 20
)

// Tick 推进一帧：处理输入 → 更新世界 → 广播结果
func (r *Room) Tick() {
	start := time.Now()
	r.BeginTick()
	r.ProcessInputs()
	r.UpdateWorld()
	r.BroadcastDelta()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}

// StartTicker 启动房间的 Tick 循环（单线程推进世界）
func (r *Room) StartTicker() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		ticker := time.NewTicker(r.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.Tick()
			}
		}
	}()
}

// Stop 停止 Tick 循环
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
