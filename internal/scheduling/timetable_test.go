package scheduling

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func newTestTimetable(t *testing.T) *Timetable {
	t.Helper()
	tt, err := New("tt-1", nil, testWindow)
	if err != nil {
		t.Fatalf("创建空课表失败: %v", err)
	}
	return tt
}

// ── 变更操作 ──

func TestTimetable_AddEntrySuccess(t *testing.T) {
	tt := newTestTimetable(t)

	err := tt.AddEntry(Entry{
		ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "09:00", "10:00"},
	})
	if err != nil {
		t.Fatalf("首次新增应成功: %v", err)
	}
	if tt.Len() != 1 {
		t.Errorf("期望条目数 1，实际=%d", tt.Len())
	}
}

func TestTimetable_AddEntryClassroomConflict(t *testing.T) {
	tt := newTestTimetable(t)
	mustAdd(t, tt, Entry{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{2, "10:00", "11:00"}})

	// 不同教师、同教室、时间相交
	err := tt.AddEntry(Entry{ID: "e2", SubjectID: "sub-2", ClassroomID: "room-1", FacultyID: "fac-2",
		Slot: Slot{2, "10:30", "11:30"}})

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望 ConflictError，实际: %v", err)
	}
	if conflict.Resource != ResourceClassroom {
		t.Errorf("期望冲突资源为教室，实际=%s", conflict.Resource)
	}
	if conflict.EntryID != "e1" {
		t.Errorf("期望阻塞方为 e1，实际=%s", conflict.EntryID)
	}
	if tt.Len() != 1 {
		t.Errorf("被拒的变更不应留下任何痕迹，条目数=%d", tt.Len())
	}
}

func TestTimetable_AddEntryFacultyConflict(t *testing.T) {
	tt := newTestTimetable(t)
	mustAdd(t, tt, Entry{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{3, "14:00", "15:00"}})

	// 不同教室、同教师、时间相交
	err := tt.AddEntry(Entry{ID: "e2", SubjectID: "sub-2", ClassroomID: "room-2", FacultyID: "fac-1",
		Slot: Slot{3, "14:30", "15:30"}})

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望 ConflictError，实际: %v", err)
	}
	if conflict.Resource != ResourceFaculty {
		t.Errorf("期望冲突资源为教师，实际=%s", conflict.Resource)
	}
	if conflict.EntryID != "e1" {
		t.Errorf("期望阻塞方为 e1，实际=%s", conflict.EntryID)
	}
}

func TestTimetable_AddEntryInvalidSlot(t *testing.T) {
	tt := newTestTimetable(t)

	err := tt.AddEntry(Entry{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "10:00", "09:00"}})
	if !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("期望 ErrInvalidSlot，实际: %v", err)
	}
	if tt.Len() != 0 {
		t.Errorf("非法落位不应写入，条目数=%d", tt.Len())
	}
}

func TestTimetable_UpdateEntryFreesOldSlot(t *testing.T) {
	tt := newTestTimetable(t)
	mustAdd(t, tt, Entry{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "09:00", "10:00"}})

	// 把 e1 挪到下午：旧占用必须被原子释放
	updated, err := tt.UpdateEntry("e1", Entry{SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "14:00", "15:00"}})
	if err != nil {
		t.Fatalf("更新应成功: %v", err)
	}
	if updated.ID != "e1" {
		t.Errorf("更新不应改变条目 ID，实际=%s", updated.ID)
	}

	// 旧落位已可用
	if err := tt.AddEntry(Entry{ID: "e2", SubjectID: "sub-2", ClassroomID: "room-1", FacultyID: "fac-2",
		Slot: Slot{1, "09:00", "10:00"}}); err != nil {
		t.Errorf("旧落位应已释放: %v", err)
	}
}

func TestTimetable_UpdateEntryMoveWithinOwnSlot(t *testing.T) {
	tt := newTestTimetable(t)
	mustAdd(t, tt, Entry{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "09:00", "10:00"}})

	// 与自身旧占用相交的新落位应放行
	if _, err := tt.UpdateEntry("e1", Entry{SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "09:30", "10:30"}}); err != nil {
		t.Errorf("与自身旧占用相交不应报冲突: %v", err)
	}
}

func TestTimetable_UpdateEntryConflictKeepsOriginal(t *testing.T) {
	tt := newTestTimetable(t)
	mustAdd(t, tt, Entry{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "09:00", "10:00"}})
	mustAdd(t, tt, Entry{ID: "e2", SubjectID: "sub-2", ClassroomID: "room-2", FacultyID: "fac-2",
		Slot: Slot{1, "11:00", "12:00"}})

	// 把 e2 挪进 e1 的教室与时段：应被拒且 e2 原占用完好
	_, err := tt.UpdateEntry("e2", Entry{SubjectID: "sub-2", ClassroomID: "room-1", FacultyID: "fac-2",
		Slot: Slot{1, "09:30", "10:30"}})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("期望 ConflictError，实际: %v", err)
	}

	got, err := tt.Entry("e2")
	if err != nil {
		t.Fatalf("e2 应仍存在: %v", err)
	}
	if got.ClassroomID != "room-2" || got.Slot.Start != "11:00" {
		t.Errorf("被拒的更新不应改变条目，实际=%+v", got)
	}
	if blocking, busy := tt.CheckAvailability(ResourceClassroom, "room-2", Slot{1, "11:00", "12:00"}); !busy || blocking != "e2" {
		t.Errorf("e2 原占用应完好，busy=%v blocking=%s", busy, blocking)
	}
}

func TestTimetable_UpdateEntryNotFound(t *testing.T) {
	tt := newTestTimetable(t)

	if _, err := tt.UpdateEntry("ghost", Entry{SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "09:00", "10:00"}}); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("期望 ErrEntryNotFound，实际: %v", err)
	}
}

func TestTimetable_RemoveEntry(t *testing.T) {
	tt := newTestTimetable(t)
	mustAdd(t, tt, Entry{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "09:00", "10:00"}})

	removed, err := tt.RemoveEntry("e1")
	if err != nil {
		t.Fatalf("删除应成功: %v", err)
	}
	if removed.ID != "e1" {
		t.Errorf("期望返回被删条目 e1，实际=%s", removed.ID)
	}

	if _, busy := tt.CheckAvailability(ResourceClassroom, "room-1", Slot{1, "09:00", "10:00"}); busy {
		t.Error("删除后占用应被释放")
	}
	if _, err := tt.RemoveEntry("e1"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("重复删除期望 ErrEntryNotFound，实际: %v", err)
	}
}

// ── 重建与不变量防御 ──

func TestTimetable_NewRejectsInconsistentData(t *testing.T) {
	entries := []Entry{
		{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1", Slot: Slot{1, "09:00", "10:00"}},
		{ID: "e2", SubjectID: "sub-2", ClassroomID: "room-1", FacultyID: "fac-2", Slot: Slot{1, "09:30", "10:30"}},
	}

	_, err := New("tt-bad", entries, testWindow)
	var inconsistent *InconsistentStateError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("期望 InconsistentStateError，实际: %v", err)
	}
	if inconsistent.Resource != ResourceClassroom {
		t.Errorf("期望教室资源不一致，实际=%s", inconsistent.Resource)
	}
	if inconsistent.EntryA != "e2" || inconsistent.EntryB != "e1" {
		t.Errorf("期望指明冲突双方 e2/e1，实际=%s/%s", inconsistent.EntryA, inconsistent.EntryB)
	}
}

func TestTimetable_NewRebuildsValidData(t *testing.T) {
	entries := []Entry{
		{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1", Slot: Slot{1, "09:00", "10:00"}},
		{ID: "e2", SubjectID: "sub-2", ClassroomID: "room-1", FacultyID: "fac-2", Slot: Slot{1, "10:00", "11:00"}},
		{ID: "e3", SubjectID: "sub-3", ClassroomID: "room-2", FacultyID: "fac-1", Slot: Slot{2, "09:00", "10:00"}},
	}

	tt, err := New("tt-1", entries, testWindow)
	if err != nil {
		t.Fatalf("合法数据重建应成功: %v", err)
	}
	if tt.Len() != 3 {
		t.Errorf("期望条目数 3，实际=%d", tt.Len())
	}
	if blocking, busy := tt.CheckAvailability(ResourceFaculty, "fac-1", Slot{2, "09:30", "10:30"}); !busy || blocking != "e3" {
		t.Errorf("重建后索引应可用，busy=%v blocking=%s", busy, blocking)
	}
}

// ── 只读投影 ──

func TestTimetable_Projections(t *testing.T) {
	tt := newTestTimetable(t)
	mustAdd(t, tt, Entry{ID: "e1", SubjectID: "sub-1", ClassroomID: "room-1", FacultyID: "fac-1",
		Slot: Slot{1, "09:00", "10:00"}})
	mustAdd(t, tt, Entry{ID: "e2", SubjectID: "sub-2", ClassroomID: "room-2", FacultyID: "fac-1",
		Slot: Slot{2, "09:00", "10:00"}})
	mustAdd(t, tt, Entry{ID: "e3", SubjectID: "sub-3", ClassroomID: "room-1", FacultyID: "fac-2",
		Slot: Slot{3, "09:00", "10:00"}})

	byFaculty := tt.EntriesByFaculty("fac-1")
	if len(byFaculty) != 2 {
		t.Errorf("期望 fac-1 有 2 条，实际=%d", len(byFaculty))
	}
	byRoom := tt.EntriesByClassroom("room-1")
	if len(byRoom) != 2 {
		t.Errorf("期望 room-1 有 2 条，实际=%d", len(byRoom))
	}

	// 快照独立于内部状态
	all := tt.Entries()
	if len(all) != 3 {
		t.Fatalf("期望 3 条快照，实际=%d", len(all))
	}
	all[0].ID = "tampered"
	if got, _ := tt.Entry("e1"); got.ID != "e1" {
		t.Error("修改快照不应影响聚合内部状态")
	}
}

// ── 并发安全 ──

func TestTimetable_ConcurrentConflictingAdds(t *testing.T) {
	tt := newTestTimetable(t)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	// n 个协程争抢同一教室同一落位，恰好一个成功
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = tt.AddEntry(Entry{
				ID:          fmt.Sprintf("e%d", i),
				SubjectID:   fmt.Sprintf("sub-%d", i),
				ClassroomID: "room-1",
				FacultyID:   fmt.Sprintf("fac-%d", i),
				Slot:        Slot{1, "09:00", "10:00"},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			t.Errorf("失败方应收到 ConflictError，实际: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("期望恰好 1 个协程成功，实际=%d", succeeded)
	}
	if tt.Len() != 1 {
		t.Errorf("期望条目数 1，实际=%d", tt.Len())
	}
}

func TestTimetable_ConcurrentReadsDuringWrites(t *testing.T) {
	tt := newTestTimetable(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = tt.AddEntry(Entry{
				ID:          fmt.Sprintf("e%d", i),
				SubjectID:   "sub-1",
				ClassroomID: fmt.Sprintf("room-%d", i),
				FacultyID:   fmt.Sprintf("fac-%d", i),
				Slot:        Slot{1, "09:00", "10:00"},
			})
		}(i)
		go func() {
			defer wg.Done()
			_ = tt.Entries()
			_, _ = tt.CheckAvailability(ResourceClassroom, "room-1", Slot{1, "09:00", "10:00"})
		}()
	}
	wg.Wait()

	if tt.Len() != 8 {
		t.Errorf("互不冲突的并发新增应全部成功，条目数=%d", tt.Len())
	}
}

func mustAdd(t *testing.T, tt *Timetable, e Entry) {
	t.Helper()
	if err := tt.AddEntry(e); err != nil {
		t.Fatalf("新增条目 %s 失败: %v", e.ID, err)
	}
}
