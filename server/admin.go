package server

import (
	"encoding/json"
	"net/http"
)

func (m *RoomManager) roomFromQuery(r *http.Request) (string, *Room) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = m.Config().DefaultRoom
	}
	return roomID, m.GetOrCreateRoom(roomID)
}

// HandleAdminConfig 提供房间参数的读取与更新（热更新）
// GET /admin/config?room=room-1  返回当前参数
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func (m *RoomManager) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	roomID, room := m.roomFromQuery(r)

	type patch struct {
		CellSize           *int     `json:"cellSize,omitempty"`
		MaxInputsPerTick   *int     `json:"maxInputsPerTick,omitempty"`
		RopeMaxLength      *int     `json:"ropeMaxLength,omitempty"`
		SimulateDelayMinMs *int     `json:"simulateDelayMinMs,omitempty"`
		SimulateDelayMaxMs *int     `json:"simulateDelayMaxMs,omitempty"`
		SimulateDropProb   *float64 `json:"simulateDropProb,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(room.Tunables())
		return
	case http.MethodPost:
		var body patch
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		next := room.Tunables()
		if body.CellSize != nil {
			next.CellSize = *body.CellSize
		}
		if body.MaxInputsPerTick != nil {
			next.MaxInputsPerTick = *body.MaxInputsPerTick
		}
		if body.RopeMaxLength != nil {
			next.RopeMaxLength = *body.RopeMaxLength
		}
		if body.SimulateDelayMinMs != nil {
			next.SimulateDelayMinMs = *body.SimulateDelayMinMs
		}
		if body.SimulateDelayMaxMs != nil {
			next.SimulateDelayMaxMs = *body.SimulateDelayMaxMs
		}
		if body.SimulateDropProb != nil {
			next.SimulateDropProb = *body.SimulateDropProb
		}
		if next.CellSize <= 0 || next.MaxInputsPerTick < 0 || next.RopeMaxLength < 0 {
			http.Error(w, "invalid tunables", http.StatusBadRequest)
			return
		}
		sim := SimulateConfig{DelayMinMs: next.SimulateDelayMinMs, DelayMaxMs: next.SimulateDelayMaxMs, DropProb: next.SimulateDropProb}
		if err := sim.validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cur := room.UpdateTunables(func(t *Tunables) { *t = next })
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		Log.Infof("config updated: room=%s cellSize=%d maxInputsPerTick=%d ropeMaxLength=%d delay=[%d,%d] drop=%.2f",
			roomID, cur.CellSize, cur.MaxInputsPerTick, cur.RopeMaxLength, cur.SimulateDelayMinMs, cur.SimulateDelayMaxMs, cur.SimulateDropProb)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	roomID, room := m.roomFromQuery(r)
	payload := map[string]any{
		"room":    roomID,
		"tick":    room.TickSeq(),
		"metrics": room.Metrics().Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// Routes 注册 WebSocket、管理与监控接口
func (m *RoomManager) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.HandleWS)
	mux.HandleFunc("/admin/config", m.HandleAdminConfig)
	mux.HandleFunc("/metrics", m.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
