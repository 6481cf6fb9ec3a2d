package scheduling

import (
	"errors"
	"testing"
)

var testWindow = Window{Start: "07:00", End: "22:00"}

// ── Overlaps 测试 ──

func TestOverlaps_SameDayIntersecting(t *testing.T) {
	a := Slot{Day: 1, Start: "09:00", End: "10:00"}
	b := Slot{Day: 1, Start: "09:30", End: "10:30"}

	if !Overlaps(a, b) {
		t.Error("相交区间应判定为冲突")
	}
}

func TestOverlaps_Symmetry(t *testing.T) {
	cases := []struct {
		a, b Slot
	}{
		{Slot{1, "09:00", "10:00"}, Slot{1, "09:30", "10:30"}},
		{Slot{1, "09:00", "10:00"}, Slot{1, "10:00", "11:00"}},
		{Slot{2, "09:00", "10:00"}, Slot{3, "09:00", "10:00"}},
		{Slot{5, "08:00", "12:00"}, Slot{5, "09:00", "10:00"}},
	}

	for _, c := range cases {
		if Overlaps(c.a, c.b) != Overlaps(c.b, c.a) {
			t.Errorf("Overlaps 应满足对称性: %v vs %v", c.a, c.b)
		}
	}
}

func TestOverlaps_BackToBackLegal(t *testing.T) {
	a := Slot{Day: 1, Start: "09:00", End: "10:00"}
	b := Slot{Day: 1, Start: "10:00", End: "11:00"}

	if Overlaps(a, b) {
		t.Error("紧邻排课（前一节结束=后一节开始）不应判定为冲突")
	}
}

func TestOverlaps_DifferentDays(t *testing.T) {
	a := Slot{Day: 1, Start: "09:00", End: "10:00"}
	b := Slot{Day: 2, Start: "09:00", End: "10:00"}

	if Overlaps(a, b) {
		t.Error("不同天的区间不应判定为冲突")
	}
}

func TestOverlaps_Containment(t *testing.T) {
	outer := Slot{Day: 3, Start: "08:00", End: "12:00"}
	inner := Slot{Day: 3, Start: "09:00", End: "10:00"}

	if !Overlaps(outer, inner) {
		t.Error("包含关系的区间应判定为冲突")
	}
}

// ── Validate 测试 ──

func TestSlotValidate_Success(t *testing.T) {
	s := Slot{Day: 1, Start: "09:00", End: "10:00"}
	if err := s.Validate(testWindow); err != nil {
		t.Errorf("合法落位应通过校验: %v", err)
	}
}

func TestSlotValidate_StartNotBeforeEnd(t *testing.T) {
	cases := []Slot{
		{Day: 1, Start: "10:00", End: "09:00"},
		{Day: 1, Start: "09:00", End: "09:00"},
	}

	for _, s := range cases {
		if err := s.Validate(testWindow); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("开始不早于结束应返回 ErrInvalidSlot，实际: %v", err)
		}
	}
}

func TestSlotValidate_MalformedTime(t *testing.T) {
	cases := []Slot{
		{Day: 1, Start: "9:00", End: "10:00"},  // 未零填充
		{Day: 1, Start: "09:00", End: "25:00"}, // 时刻越界
		{Day: 1, Start: "abc", End: "10:00"},
	}

	for _, s := range cases {
		if err := s.Validate(testWindow); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("非法时刻格式应返回 ErrInvalidSlot，实际: %v (%v)", err, s)
		}
	}
}

func TestSlotValidate_OutsideWindow(t *testing.T) {
	early := Slot{Day: 1, Start: "06:00", End: "08:00"}
	late := Slot{Day: 1, Start: "21:30", End: "22:30"}

	if err := early.Validate(testWindow); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("早于运营窗口应返回 ErrInvalidSlot，实际: %v", err)
	}
	if err := late.Validate(testWindow); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("晚于运营窗口应返回 ErrInvalidSlot，实际: %v", err)
	}
}

func TestSlotValidate_DayOutOfRange(t *testing.T) {
	for _, day := range []int{0, 8, -1} {
		s := Slot{Day: day, Start: "09:00", End: "10:00"}
		if err := s.Validate(testWindow); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("星期 %d 越界应返回 ErrInvalidSlot，实际: %v", day, err)
		}
	}
}
