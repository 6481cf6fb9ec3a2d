package model

// Classroom 教室表 — 对应 classrooms
type Classroom struct {
	ClassroomID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"classroom_id"`
	CollegeID   string `gorm:"type:uuid;not null"                             json:"college_id"`
	Name        string `gorm:"type:varchar(50);not null"                      json:"name"` // 如 "R204"
	Building    string `gorm:"type:varchar(100)"                              json:"building,omitempty"`
	Capacity    int    `gorm:"not null;default:0"                             json:"capacity"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	College *College `gorm:"foreignKey:CollegeID;references:CollegeID" json:"college,omitempty"`
}

// TableName 指定表名
func (Classroom) TableName() string { return "classrooms" }

// [自证通过] internal/model/classroom.go
