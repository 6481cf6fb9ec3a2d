package scheduling

import "testing"

func TestConflictIndex_CheckEmptyIndex(t *testing.T) {
	idx := NewConflictIndex()

	if blocking, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "09:00", "10:00"}, ""); conflict {
		t.Errorf("空索引不应报冲突，阻塞方=%s", blocking)
	}
}

func TestConflictIndex_InsertThenCheck(t *testing.T) {
	idx := NewConflictIndex()
	idx.Insert("e1", "room-1", "fac-1", Slot{1, "09:00", "10:00"})

	blocking, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "09:30", "10:30"}, "")
	if !conflict || blocking != "e1" {
		t.Errorf("期望教室冲突且阻塞方为 e1，实际 conflict=%v blocking=%s", conflict, blocking)
	}

	blocking, conflict = idx.Check(ResourceFaculty, "fac-1", Slot{1, "09:30", "10:30"}, "")
	if !conflict || blocking != "e1" {
		t.Errorf("期望教师冲突且阻塞方为 e1，实际 conflict=%v blocking=%s", conflict, blocking)
	}

	// 不同资源、不同天均不受影响
	if _, conflict := idx.Check(ResourceClassroom, "room-2", Slot{1, "09:00", "10:00"}, ""); conflict {
		t.Error("其他教室不应受 e1 占用影响")
	}
	if _, conflict := idx.Check(ResourceClassroom, "room-1", Slot{2, "09:00", "10:00"}, ""); conflict {
		t.Error("其他天不应受 e1 占用影响")
	}
}

func TestConflictIndex_BackToBackNoConflict(t *testing.T) {
	idx := NewConflictIndex()
	idx.Insert("e1", "room-1", "fac-1", Slot{1, "09:00", "10:00"})

	if _, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "10:00", "11:00"}, ""); conflict {
		t.Error("紧邻落位不应报冲突")
	}
	if _, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "08:00", "09:00"}, ""); conflict {
		t.Error("前置紧邻落位不应报冲突")
	}
}

func TestConflictIndex_ExcludeEntryOnUpdate(t *testing.T) {
	idx := NewConflictIndex()
	idx.Insert("e1", "room-1", "fac-1", Slot{1, "09:00", "10:00"})
	idx.Insert("e2", "room-1", "fac-2", Slot{1, "11:00", "12:00"})

	// 更新 e1 自身落位时排除其旧占用
	if blocking, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "09:30", "10:30"}, "e1"); conflict {
		t.Errorf("排除自身后不应报冲突，阻塞方=%s", blocking)
	}

	// 仍能检出与他人的冲突
	blocking, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "11:30", "12:30"}, "e1")
	if !conflict || blocking != "e2" {
		t.Errorf("期望与 e2 冲突，实际 conflict=%v blocking=%s", conflict, blocking)
	}
}

func TestConflictIndex_RemoveFreesOccupancy(t *testing.T) {
	idx := NewConflictIndex()
	idx.Insert("e1", "room-1", "fac-1", Slot{1, "09:00", "10:00"})
	idx.Remove("e1")

	if _, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "09:00", "10:00"}, ""); conflict {
		t.Error("移除后教室占用应被释放")
	}
	if _, conflict := idx.Check(ResourceFaculty, "fac-1", Slot{1, "09:00", "10:00"}, ""); conflict {
		t.Error("移除后教师占用应被释放")
	}
	if idx.Len() != 0 {
		t.Errorf("期望索引条目数 0，实际=%d", idx.Len())
	}
}

func TestConflictIndex_RemoveIdempotent(t *testing.T) {
	idx := NewConflictIndex()
	idx.Insert("e1", "room-1", "fac-1", Slot{1, "09:00", "10:00"})
	idx.Insert("e2", "room-2", "fac-2", Slot{2, "14:00", "15:00"})
	idx.Remove("e1")
	idx.Remove("e1") // 重复移除为空操作
	idx.Remove("ghost")

	if idx.Len() != 1 {
		t.Errorf("期望索引条目数 1，实际=%d", idx.Len())
	}
	blocking, conflict := idx.Check(ResourceClassroom, "room-2", Slot{2, "14:30", "15:30"}, "")
	if !conflict || blocking != "e2" {
		t.Errorf("重复移除不应影响其他条目，conflict=%v blocking=%s", conflict, blocking)
	}
}

func TestConflictIndex_SortedInsertEarlyExit(t *testing.T) {
	idx := NewConflictIndex()
	// 乱序插入，索引应保持按开始时刻有序并给出正确答案
	idx.Insert("e3", "room-1", "fac-3", Slot{1, "14:00", "15:00"})
	idx.Insert("e1", "room-1", "fac-1", Slot{1, "08:00", "09:00"})
	idx.Insert("e2", "room-1", "fac-2", Slot{1, "10:00", "11:00"})

	blocking, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "10:30", "11:30"}, "")
	if !conflict || blocking != "e2" {
		t.Errorf("期望与 e2 冲突，实际 conflict=%v blocking=%s", conflict, blocking)
	}
	if _, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "09:00", "10:00"}, ""); conflict {
		t.Error("空档 09:00-10:00 不应报冲突")
	}
	if _, conflict := idx.Check(ResourceClassroom, "room-1", Slot{1, "15:00", "16:00"}, ""); conflict {
		t.Error("末尾空档不应报冲突")
	}
}
