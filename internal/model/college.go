package model

// College 学院表 — 对应 colleges
type College struct {
	CollegeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"college_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code      string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (College) TableName() string { return "colleges" }

// [自证通过] internal/model/college.go
