package server

import (
	"encoding/json"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"ropesim/rope"
)

// Tunables 可在运行期热更新的房间参数
type Tunables struct {
	CellSize           int     `json:"cellSize"`
	MaxInputsPerTick   int     `json:"maxInputsPerTick"`
	RopeMaxLength      int     `json:"ropeMaxLength"`
	SimulateDelayMinMs int     `json:"simulateDelayMinMs"`
	SimulateDelayMaxMs int     `json:"simulateDelayMaxMs"`
	SimulateDropProb   float64 `json:"simulateDropProb"`
}

func tunablesFromConfig(cfg Config) Tunables {
	return Tunables{
		CellSize:           cfg.Grid.CellSize,
		MaxInputsPerTick:   cfg.Limits.MaxInputsPerTick,
		RopeMaxLength:      cfg.Rope.MaxLength,
		SimulateDelayMinMs: cfg.Simulate.DelayMinMs,
		SimulateDelayMaxMs: cfg.Simulate.DelayMaxMs,
		SimulateDropProb:   cfg.Simulate.DropProb,
	}
}

type leaveRequest struct {
	id   PlayerID
	conn Outbox
}

// Room 房间世界：权威状态维护在内存，单线程 Tick 推进
type Room struct {
	ID string

	Players   map[PlayerID]*Player
	inputChan chan Input
	joinChan  chan *Player
	leaveChan chan leaveRequest

	mu  sync.RWMutex
	tun Tunables

	tickInterval time.Duration
	tickSeq      int64
	metrics      *RoomMetrics

	fullSync bool     // 有新玩家加入，下一次广播发送全部链条
	left     []string // 本 Tick 离开的玩家

	tickerStarted bool
	stop          chan struct{}
	stopOnce      sync.Once
}

// NewRoom 创建房间，初始化数据结构
func NewRoom(id string, cfg Config) *Room {
	hz := cfg.TickRateHz
	if hz <= 0 {
		hz = TicksPerSecond
	}
	return &Room{
		ID:           id,
		Players:      make(map[PlayerID]*Player),
		inputChan:    make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		joinChan:     make(chan *Player, 64),
		leaveChan:    make(chan leaveRequest, 64),
		tun:          tunablesFromConfig(cfg),
		tickInterval: time.Second / time.Duration(hz),
		metrics:      &RoomMetrics{},
		stop:         make(chan struct{}),
	}
}

func (r *Room) Tunables() Tunables {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tun
}

// UpdateTunables 在锁内修改参数
func (r *Room) UpdateTunables(fn func(*Tunables)) Tunables {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.tun)
	return r.tun
}

func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// TickSeq 当前 Tick 序号
func (r *Room) TickSeq() int64 { return atomic.LoadInt64(&r.tickSeq) }

// JoinPlayer 请求在 Tick 线程中加入玩家
func (r *Room) JoinPlayer(id PlayerID, chain *rope.Chain, conn Outbox) {
	r.joinChan <- &Player{ID: id, Chain: chain, Conn: conn}
}

// RequestLeave 请求在 Tick 线程中移除玩家，避免并发改动房间状态
func (r *Room) RequestLeave(pid PlayerID, conn Outbox) {
	// 为保证移除一定生效，这里采用阻塞式写入（通道有容量，避免死锁）
	r.leaveChan <- leaveRequest{id: pid, conn: conn}
}

func (r *Room) addPlayer(p *Player) {
	if old, ok := r.Players[p.ID]; ok {
		// 同名重连：替换旧连接
		if old.Conn != nil {
			old.Conn.Close()
		}
		r.metrics.AddPlayers(-1)
	}
	p.dirty = true
	r.Players[p.ID] = p
	r.fullSync = true
	r.metrics.AddPlayers(1)
	Log.Infof("player joined: room=%s player=%s length=%d", r.ID, p.ID, p.Chain.Len())
}

// LeavePlayer 将玩家移出房间；conn 不匹配（已被重连替换）时忽略
func (r *Room) LeavePlayer(id PlayerID, conn Outbox) {
	p, ok := r.Players[id]
	if !ok || (conn != nil && p.Conn != conn) {
		return
	}
	if p.Conn != nil {
		p.Conn.Close()
	}
	delete(r.Players, id)
	r.left = append(r.left, string(id))
	r.metrics.AddPlayers(-1)
	Log.Infof("player left: room=%s player=%s", r.ID, id)
}

// OnInput 入站输入（不立即改变位置），仅记录意图，等下一次 Tick 处理
func (r *Room) OnInput(in Input) {
	tun := r.Tunables()
	if tun.SimulateDropProb > 0 && rand.Float64() < tun.SimulateDropProb {
		r.metrics.IncDropsSimulated()
		return
	}
	if tun.SimulateDelayMaxMs > 0 {
		d := tun.SimulateDelayMinMs
		if span := tun.SimulateDelayMaxMs - tun.SimulateDelayMinMs; span > 0 {
			d += rand.Intn(span + 1)
		}
		time.AfterFunc(time.Duration(d)*time.Millisecond, func() { r.enqueue(in) })
		return
	}
	r.enqueue(in)
}

func (r *Room) enqueue(in Input) {
	// 不阻塞：输入拥塞时丢弃，保证 Tick 准时
	select {
	case r.inputChan <- in:
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// BeginTick 重置帧内状态（每玩家输入计数）
func (r *Room) BeginTick() {
	atomic.AddInt64(&r.tickSeq, 1)
	for _, p := range r.Players {
		p.inputsThisTick = 0
	}
}

// ProcessInputs 处理当前帧的加入、输入与离开（非阻塞 drain）
func (r *Room) ProcessInputs() {
	for done := false; !done; {
		select {
		case p := <-r.joinChan:
			r.addPlayer(p)
		default:
			done = true
		}
	}

	tun := r.Tunables()
	for done := false; !done; {
		select {
		case in := <-r.inputChan:
			if p, ok := r.Players[in.PlayerID]; ok {
				r.applyInput(p, in, tun)
			}
		default:
			done = true
		}
	}

	for done := false; !done; {
		select {
		case req := <-r.leaveChan:
			r.LeavePlayer(req.id, req.conn)
		default:
			done = true
		}
	}
}

// applyInput 去重、限流后执行一条输入
func (r *Room) applyInput(p *Player, in Input, tun Tunables) {
	if in.Seq > 0 {
		if in.Seq <= p.lastSeq {
			r.metrics.IncOldSeqIgnored()
			return
		}
		p.lastSeq = in.Seq
	}
	if tun.MaxInputsPerTick > 0 && p.inputsThisTick >= tun.MaxInputsPerTick {
		r.metrics.IncRateLimited()
		if p.Conn != nil {
			p.Conn.Enqueue(encodeError(ErrRateLimit, "too many inputs this tick"))
		}
		return
	}
	p.inputsThisTick++
	r.metrics.IncAccepted()

	switch in.Kind {
	case InputMove:
		if in.Dir.IsNone() {
			return
		}
		p.Chain.Move(in.Dir)
		p.dirty = true
	case InputPointerDown:
		r.pointerResult(p, p.Tracker.PointerDown(in.Pointer, in.Point))
	case InputPointerMove:
		r.pointerResult(p, p.Tracker.PointerMove(in.Pointer, in.Point))
	case InputPointerUp:
		r.pointerResult(p, p.Tracker.PointerUp(in.Pointer))
	case InputGrow:
		if tun.RopeMaxLength > 0 && p.Chain.Len() >= tun.RopeMaxLength {
			return
		}
		p.Chain.AddNode()
		p.dirty = true
	case InputShrink:
		if p.Chain.Len() > 1 {
			p.Chain.RemoveNode()
			p.dirty = true
		}
	}
}

func (r *Room) pointerResult(p *Player, accepted bool) {
	if !accepted {
		r.metrics.IncPointerIgnored()
		return
	}
	p.dirty = true
}

// UpdateWorld 推进指针追踪：每个追踪中的玩家头部向目标走一步
func (r *Room) UpdateWorld() {
	for _, p := range r.Players {
		if p.Tracker.Step(p.Chain) {
			p.dirty = true
			r.metrics.IncTrackerSteps()
		}
	}
}

// BroadcastDelta 仅广播本 Tick 有变化的链条；有新玩家时发送全量
func (r *Room) BroadcastDelta() {
	ropes := make([]RopeState, 0)
	for _, p := range r.Players {
		if r.fullSync || p.dirty {
			ropes = append(ropes, p.State())
		}
		p.dirty = false
	}
	if len(ropes) == 0 && len(r.left) == 0 {
		r.fullSync = false
		return
	}
	sort.Slice(ropes, func(i, j int) bool { return ropes[i].ID < ropes[j].ID })
	payload := StateMessage{Type: "state", Tick: r.TickSeq(), Ropes: ropes, Left: r.left}
	r.fullSync = false
	r.left = nil

	b, err := json.Marshal(payload)
	if err != nil {
		Log.Errorf("broadcast marshal: room=%s err=%v", r.ID, err)
		b = encodeError(ErrInternal, "state encode failed")
	}
	for _, p := range r.Players {
		if p.Conn != nil {
			p.Conn.Enqueue(b)
		}
	}
}
