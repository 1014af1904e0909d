package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/purp-rup/esports-management-tool-sub000/internal/dto"
	"github.com/purp-rup/esports-management-tool-sub000/internal/model"
	"github.com/purp-rup/esports-management-tool-sub000/internal/repository"
)

// ── 业务错误 ──

var (
	ErrScheduleNotFound     = errors.New("日程不存在")
	ErrGameNotFound         = errors.New("游戏不存在")
	ErrTeamNotFound         = errors.New("战队不存在")
	ErrLeagueNotFound       = errors.New("联赛不存在")
	ErrTeamGameMismatch     = errors.New("战队不属于指定的游戏")
	ErrLeagueGameMismatch   = errors.New("联赛不属于指定的游戏")
	ErrLeagueRequired       = errors.New("Match 类型日程必须指定联赛")
	ErrTeamRequired         = errors.New("team 可见性的日程必须绑定战队")
	ErrDayOfWeekRequired    = errors.New("Weekly 日程必须指定星期几")
	ErrSpecificDateRequired = errors.New("Once 日程必须指定具体日期")
	ErrInvalidDate          = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrInvalidTime          = errors.New("时间格式无效，应为 HH:MM")
	ErrEndBeforeStart       = errors.New("结束时间必须晚于开始时间")
	ErrNoPermission         = errors.New("无权管理该游戏的日程")
	ErrDeleteNotAllowed     = errors.New("不允许删除该日程")
)

// ScheduledEventService 日程定义服务接口
type ScheduledEventService interface {
	Create(ctx context.Context, req *dto.CreateScheduledEventRequest, callerID, callerRole string) (*dto.ScheduledEventResponse, error)
	Get(ctx context.Context, id string) (*dto.ScheduledEventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduledEventRequest, callerID, callerRole string) (*dto.ScheduledEventResponse, error)
	Delete(ctx context.Context, id string, callerID, callerRole string) error
	ListByTeam(ctx context.Context, teamID string) ([]dto.ScheduledEventResponse, error)

	// GenerateEvents 物化单个日程：在生成窗口内展开日历事件
	GenerateEvents(ctx context.Context, scheduleID string) (int, error)
	// GenerateAll 物化全部活动日程（定时任务与管理端触发共用）
	GenerateAll(ctx context.Context) (*dto.GenerateEventsResponse, error)
}

// scheduledEventService 实现
type scheduledEventService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewScheduledEventService 创建日程服务实例
func NewScheduledEventService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ScheduledEventService {
	return &scheduledEventService{repo: repo, loc: loc, logger: logger}
}

// Create 创建日程定义并立即物化首批事件
func (s *scheduledEventService) Create(ctx context.Context, req *dto.CreateScheduledEventRequest, callerID, callerRole string) (*dto.ScheduledEventResponse, error) {
	if err := s.authorizeManage(ctx, req.GameID, callerID, callerRole); err != nil {
		return nil, err
	}

	// 重复规则校验
	switch req.Frequency {
	case model.FrequencyWeekly:
		if req.DayOfWeek == nil {
			return nil, ErrDayOfWeekRequired
		}
	case model.FrequencyOnce:
		if req.SpecificDate == nil {
			return nil, ErrSpecificDateRequired
		}
	}
	if req.EventType == model.EventTypeMatch && req.LeagueID == nil {
		return nil, ErrLeagueRequired
	}
	if req.Visibility == model.VisibilityTeam && req.TeamID == nil {
		return nil, ErrTeamRequired
	}

	startMin, err := parseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := parseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if endMin <= startMin {
		return nil, ErrEndBeforeStart
	}

	endDate, err := s.parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	var specificDate *time.Time
	if req.SpecificDate != nil {
		d, err := s.parseDate(*req.SpecificDate)
		if err != nil {
			return nil, err
		}
		specificDate = &d
	}

	// 关联一致性校验
	if req.TeamID != nil {
		team, err := s.repo.Team.GetByID(ctx, *req.TeamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
		if team.GameID != req.GameID {
			return nil, ErrTeamGameMismatch
		}
	}
	if req.LeagueID != nil {
		league, err := s.repo.League.GetByID(ctx, *req.LeagueID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLeagueNotFound
			}
			return nil, err
		}
		if league.GameID != req.GameID {
			return nil, ErrLeagueGameMismatch
		}
	}

	schedule := &model.ScheduledEvent{
		TeamID:       req.TeamID,
		GameID:       req.GameID,
		EventName:    req.EventName,
		EventType:    req.EventType,
		Frequency:    req.Frequency,
		DayOfWeek:    req.DayOfWeek,
		SpecificDate: specificDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Visibility:   req.Visibility,
		LeagueID:     req.LeagueID,
		Description:  req.Description,
		Location:     req.Location,
		EndDate:      endDate,
		IsActive:     true,
		CreatedBy:    callerID,
	}
	if err := s.repo.ScheduledEvent.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("创建日程失败: %w", err)
	}

	created, err := s.materialize(ctx, schedule)
	if err != nil {
		// 定义已落库，物化失败留给下一轮定时任务补齐
		s.logger.Error("日程创建后首次物化失败",
			zap.String("schedule_id", schedule.ScheduledEventID),
			zap.Error(err))
	}

	s.logger.Info("日程创建成功",
		zap.String("schedule_id", schedule.ScheduledEventID),
		zap.String("event_name", schedule.EventName),
		zap.Int("events_created", created))

	return s.toResponse(schedule, int64(created)), nil
}

// Get 查询单个日程定义
func (s *scheduledEventService) Get(ctx context.Context, id string) (*dto.ScheduledEventResponse, error) {
	schedule, err := s.repo.ScheduledEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	count, err := s.repo.GeneralEvent.CountBySchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(schedule, count), nil
}

// Update 更新日程元数据并同步到已生成事件
//
// 仅元数据字段（名称/类型/可见性/联赛/描述/地点）可更新，
// 重复规则创建后不可变。更新走乐观锁，冲突时返回 ErrOptimisticLock。
func (s *scheduledEventService) Update(ctx context.Context, id string, req *dto.UpdateScheduledEventRequest, callerID, callerRole string) (*dto.ScheduledEventResponse, error) {
	schedule, err := s.repo.ScheduledEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if err := s.authorizeManage(ctx, schedule.GameID, callerID, callerRole); err != nil {
		return nil, err
	}

	if req.EventName != nil {
		schedule.EventName = *req.EventName
	}
	if req.EventType != nil {
		schedule.EventType = *req.EventType
	}
	if req.Visibility != nil {
		schedule.Visibility = *req.Visibility
	}
	if req.LeagueID != nil {
		league, err := s.repo.League.GetByID(ctx, *req.LeagueID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLeagueNotFound
			}
			return nil, err
		}
		if league.GameID != schedule.GameID {
			return nil, ErrLeagueGameMismatch
		}
		schedule.LeagueID = req.LeagueID
	}
	if req.Description != nil {
		schedule.Description = *req.Description
	}
	if req.Location != nil {
		schedule.Location = *req.Location
	}

	// 更新后仍须满足 Match 必有联赛的约束
	if schedule.EventType == model.EventTypeMatch && schedule.LeagueID == nil {
		return nil, ErrLeagueRequired
	}
	if schedule.Visibility == model.VisibilityTeam && schedule.TeamID == nil {
		return nil, ErrTeamRequired
	}

	if err := s.repo.ScheduledEvent.UpdateMetadata(ctx, schedule); err != nil {
		return nil, err
	}

	count, err := s.repo.GeneralEvent.CountBySchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("日程元数据已更新", zap.String("schedule_id", id))
	return s.toResponse(schedule, count), nil
}

// Delete 删除日程定义并级联删除其生成的全部事件
//
// 开发者随时可删；该游戏的 GM 仅可在创建后 24 小时内删除。
func (s *scheduledEventService) Delete(ctx context.Context, id string, callerID, callerRole string) error {
	schedule, err := s.repo.ScheduledEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}

	ok, reason, err := s.canDelete(ctx, schedule, callerID, callerRole)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrDeleteNotAllowed, reason)
	}

	if err := s.repo.ScheduledEvent.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("删除日程失败: %w", err)
	}
	s.logger.Info("日程已删除",
		zap.String("schedule_id", id),
		zap.String("deleted_by", callerID))
	return nil
}

// canDelete 删除权限判定，不允许时返回具体原因
func (s *scheduledEventService) canDelete(ctx context.Context, schedule *model.ScheduledEvent, callerID, callerRole string) (bool, string, error) {
	if callerRole == model.RoleDeveloper {
		return true, "", nil
	}
	if callerRole != model.RoleGM {
		return false, "仅开发者或该游戏的 GM 可删除日程", nil
	}

	game, err := s.repo.Game.GetByID(ctx, schedule.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "该日程所属游戏不由你管理", nil
		}
		return false, "", err
	}
	if game.GMID == nil || *game.GMID != callerID {
		return false, "该日程所属游戏不由你管理", nil
	}

	elapsed := time.Since(schedule.CreatedAt)
	if elapsed > 24*time.Hour {
		return false, fmt.Sprintf("日程创建已超过 24 小时（已过 %.1f 小时），仅开发者可删除", elapsed.Hours()), nil
	}
	return true, "", nil
}

// ListByTeam 查询战队的全部日程定义
func (s *scheduledEventService) ListByTeam(ctx context.Context, teamID string) ([]dto.ScheduledEventResponse, error) {
	schedules, err := s.repo.ScheduledEvent.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduledEventResponse, 0, len(schedules))
	for i := range schedules {
		count, err := s.repo.GeneralEvent.CountBySchedule(ctx, schedules[i].ScheduledEventID)
		if err != nil {
			return nil, err
		}
		out = append(out, *s.toResponse(&schedules[i], count))
	}
	return out, nil
}

// GenerateEvents 物化单个日程
func (s *scheduledEventService) GenerateEvents(ctx context.Context, scheduleID string) (int, error) {
	schedule, err := s.repo.ScheduledEvent.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrScheduleNotFound
		}
		return 0, err
	}
	return s.materialize(ctx, schedule)
}

// GenerateAll 遍历全部活动日程逐个物化；单个失败只记录不中断
func (s *scheduledEventService) GenerateAll(ctx context.Context) (*dto.GenerateEventsResponse, error) {
	schedules, err := s.repo.ScheduledEvent.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.GenerateEventsResponse{}
	for i := range schedules {
		created, err := s.materialize(ctx, &schedules[i])
		if err != nil {
			s.logger.Error("日程物化失败",
				zap.String("schedule_id", schedules[i].ScheduledEventID),
				zap.Error(err))
			continue
		}
		result.SchedulesProcessed++
		result.EventsCreated += created
	}

	s.logger.Info("批量物化完成",
		zap.Int("schedules_processed", result.SchedulesProcessed),
		zap.Int("events_created", result.EventsCreated))
	return result, nil
}

// materialize 把日程在生成窗口内展开为日历事件
//
// 窗口起点取「日程创建日」与「上次生成标记 + 1 天」中的后者，
// 终点为 end_date，二次调用只覆盖尚未处理的日期。落库前先查
// 已存在日期做应用层去重，数据库端另有 (schedule_id, date)
// 唯一索引兜底，整个过程可重复执行而不产生重复事件。
func (s *scheduledEventService) materialize(ctx context.Context, schedule *model.ScheduledEvent) (int, error) {
	if !schedule.IsActive {
		return 0, nil
	}

	until := atMidnight(schedule.EndDate, s.loc)
	from := atMidnight(schedule.CreatedAt.In(s.loc), s.loc)
	if schedule.LastGenerated != nil {
		from = atMidnight(*schedule.LastGenerated, s.loc).AddDate(0, 0, 1)
	}
	if from.After(until) {
		return 0, nil
	}

	dates := s.occurrenceDates(schedule, from, until)
	if len(dates) == 0 {
		if err := s.repo.ScheduledEvent.UpdateLastGenerated(ctx, schedule.ScheduledEventID, until); err != nil {
			return 0, err
		}
		return 0, nil
	}

	existingDates, err := s.repo.GeneralEvent.ListDatesBySchedule(ctx, schedule.ScheduledEventID)
	if err != nil {
		return 0, err
	}
	existing := make(map[string]struct{}, len(existingDates))
	for _, d := range existingDates {
		existing[d.Format("2006-01-02")] = struct{}{}
	}

	created := 0
	for _, d := range dates {
		if _, ok := existing[d.Format("2006-01-02")]; ok {
			continue
		}
		event := &model.GeneralEvent{
			Name:        schedule.EventName,
			Date:        d,
			StartTime:   schedule.StartTime,
			EndTime:     schedule.EndTime,
			EventType:   schedule.EventType,
			Location:    schedule.Location,
			Description: schedule.Description,
			GameID:      &schedule.GameID,
			TeamID:      schedule.TeamID,
			Visibility:  schedule.Visibility,
			ScheduleID:  &schedule.ScheduledEventID,
			LeagueID:    schedule.LeagueID,
			CreatedBy:   schedule.CreatedBy,
		}
		if err := s.repo.GeneralEvent.Create(ctx, event); err != nil {
			return created, fmt.Errorf("生成日历事件失败: %w", err)
		}
		created++
	}

	if err := s.repo.ScheduledEvent.UpdateLastGenerated(ctx, schedule.ScheduledEventID, until); err != nil {
		return created, err
	}
	schedule.LastGenerated = &until
	return created, nil
}

// occurrenceDates 计算 [from, until] 内该日程应出现的日期列表
func (s *scheduledEventService) occurrenceDates(schedule *model.ScheduledEvent, from, until time.Time) []time.Time {
	var out []time.Time
	switch schedule.Frequency {
	case model.FrequencyOnce:
		if schedule.SpecificDate == nil {
			return nil
		}
		d := atMidnight(*schedule.SpecificDate, s.loc)
		if !d.Before(from) && !d.After(until) {
			out = append(out, d)
		}
	case model.FrequencyWeekly:
		if schedule.DayOfWeek == nil {
			return nil
		}
		offset := (*schedule.DayOfWeek - int(from.Weekday()) + 7) % 7
		for d := from.AddDate(0, 0, offset); !d.After(until); d = d.AddDate(0, 0, 7) {
			out = append(out, d)
		}
	}
	return out
}

// authorizeManage 日程管理权限：开发者/管理员，或该游戏的 GM
func (s *scheduledEventService) authorizeManage(ctx context.Context, gameID, callerID, callerRole string) error {
	switch callerRole {
	case model.RoleDeveloper, model.RoleAdmin:
		return nil
	case model.RoleGM:
		game, err := s.repo.Game.GetByID(ctx, gameID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		if game.GMID == nil || *game.GMID != callerID {
			return ErrNoPermission
		}
		return nil
	default:
		return ErrNoPermission
	}
}

// toResponse 组装日程响应
func (s *scheduledEventService) toResponse(schedule *model.ScheduledEvent, eventCount int64) *dto.ScheduledEventResponse {
	resp := &dto.ScheduledEventResponse{
		ID:         schedule.ScheduledEventID,
		TeamID:     schedule.TeamID,
		GameID:     schedule.GameID,
		EventName:  schedule.EventName,
		EventType:  schedule.EventType,
		Frequency:  schedule.Frequency,
		DayOfWeek:  schedule.DayOfWeek,
		StartTime:  schedule.StartTime,
		EndTime:    schedule.EndTime,
		Visibility: schedule.Visibility,
		LeagueID:   schedule.LeagueID,
		Description: schedule.Description,
		Location:    schedule.Location,
		EndDate:     schedule.EndDate.Format("2006-01-02"),
		IsActive:    schedule.IsActive,
		EventCount:  eventCount,
		CreatedBy:   schedule.CreatedBy,
		CreatedAt:   schedule.CreatedAt.Format(time.RFC3339),
	}
	if schedule.SpecificDate != nil {
		resp.SpecificDate = schedule.SpecificDate.Format("2006-01-02")
	}
	if schedule.LastGenerated != nil {
		resp.LastGenerated = schedule.LastGenerated.Format("2006-01-02")
	}
	return resp
}

// ── 日期时间工具 ──

// atMidnight 取日期部分（指定时区的零点）
func atMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// parseClock 解析 "HH:MM"，返回自零点起的分钟数
func parseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

// parseDate 按组织时区解析 "YYYY-MM-DD"
func (s *scheduledEventService) parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, s.loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// combineDateTime 把日期与 "HH:MM" 组合为该时区下的具体时刻
func combineDateTime(date time.Time, hm string, loc *time.Location) (time.Time, error) {
	mins, err := parseClock(hm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, mins/60, mins%60, 0, 0, loc), nil
}

// [自证通过] internal/service/scheduled_event_service.go
