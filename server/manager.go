package server

import "sync"

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	mu    sync.RWMutex
	cfg   Config
	rooms map[string]*Room
}

var (
	defaultManager *RoomManager
	once           sync.Once
)

func NewRoomManager(cfg Config) *RoomManager {
	return &RoomManager{cfg: cfg, rooms: make(map[string]*Room)}
}

// GetRoomManager 单例房间管理器（默认配置）
func GetRoomManager() *RoomManager {
	once.Do(func() {
		defaultManager = NewRoomManager(DefaultConfig())
	})
	return defaultManager
}

// Configure 替换之后新建房间使用的配置
func (m *RoomManager) Configure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

func (m *RoomManager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		r = NewRoom(id, m.cfg)
		m.rooms[id] = r
		r.StartTicker()
		Log.Infof("room created: %s", id)
	}
	return r
}

// Close 停止所有房间
func (m *RoomManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		r.Stop()
	}
}
