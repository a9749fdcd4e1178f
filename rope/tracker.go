package rope

// PointerID 指针标识（鼠标/触控点）
type PointerID int64

// Tracker 指针追踪会话：同一时间只追踪一个指针，并在 tick 之间携带 StepOffset
type Tracker struct {
	Active   *PointerID
	Target   GridPoint
	Offset   StepOffset
	tracking bool
}

// Tracking 是否处于追踪模式
func (t *Tracker) Tracking() bool { return t.tracking }

// PointerDown 无活动指针时占用追踪；返回是否被接受
func (t *Tracker) PointerDown(id PointerID, p GridPoint) bool {
	if t.Active != nil {
		return false
	}
	t.Active = &id
	t.tracking = true
	t.Target = p
	t.Offset = StepOffset{}
	return true
}

// PointerMove 仅接受活动指针；目标变化时重置偏移
func (t *Tracker) PointerMove(id PointerID, p GridPoint) bool {
	if t.Active == nil || *t.Active != id {
		return false
	}
	if p != t.Target {
		t.Target = p
		t.Offset = StepOffset{}
	}
	return true
}

// PointerUp 释放活动指针，退出追踪
func (t *Tracker) PointerUp(id PointerID) bool {
	if t.Active == nil || *t.Active != id {
		return false
	}
	t.Active = nil
	t.tracking = false
	t.Offset = StepOffset{}
	return true
}

// Step 追踪中推进一步：求下一偏移并作为方向驱动链条，返回头部是否移动
func (t *Tracker) Step(c *Chain) bool {
	if !t.tracking {
		return false
	}
	t.Offset = NextOffset(c.Head(), t.Target, t.Offset)
	d := DirectionFromOffset(t.Offset)
	if d.IsNone() {
		return false
	}
	c.Move(d)
	return true
}
