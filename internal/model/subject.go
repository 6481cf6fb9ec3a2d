package model

// Subject 课程表 — 对应 subjects
type Subject struct {
	SubjectID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	DepartmentID string `gorm:"type:uuid;not null"                             json:"department_id"`
	Code         string `gorm:"type:varchar(20);not null"                      json:"code"` // 如 "CS301"
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Credits      int    `gorm:"not null;default:0"                             json:"credits"`
	Semester     int    `gorm:"type:smallint;not null;default:1"               json:"semester"` // 1-8
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// [自证通过] internal/model/subject.go
