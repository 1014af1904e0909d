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
	"github.com/purp-rup/esports-management-tool-sub000/pkg/mailer"
)

// ── 业务错误 ──

var ErrSubscribeHidden = errors.New("无法订阅对你不可见的事件")

// 重复通知抑制窗口：同一用户同一事件 24 小时内至多一封
const resendSuppression = 24 * time.Hour

// NotificationService 通知服务接口
type NotificationService interface {
	GetPreference(ctx context.Context, userID string) (*dto.NotificationPreferenceResponse, error)
	UpdatePreference(ctx context.Context, userID string, req *dto.UpdateNotificationPreferenceRequest) (*dto.NotificationPreferenceResponse, error)

	ToggleSubscription(ctx context.Context, userID, eventID string) (*dto.SubscriptionStatusResponse, error)
	GetSubscription(ctx context.Context, userID, eventID string) (*dto.SubscriptionStatusResponse, error)

	// RunSweep 通知扫描：遍历启用通知的用户，对落入其提醒窗口的
	// 可见事件发送邮件（定时任务与管理端触发共用）
	RunSweep(ctx context.Context) (*dto.SweepResultResponse, error)
}

// notificationService 实现
type notificationService struct {
	repo        *repository.Repository
	resolver    *VisibilityResolver
	mailer      mailer.Mailer
	windowWidth time.Duration
	loc         *time.Location
	logger      *zap.Logger

	now func() time.Time // 测试替换
}

// NewNotificationService 创建通知服务实例
func NewNotificationService(repo *repository.Repository, resolver *VisibilityResolver, m mailer.Mailer, windowWidth time.Duration, loc *time.Location, logger *zap.Logger) NotificationService {
	return &notificationService{
		repo:        repo,
		resolver:    resolver,
		mailer:      m,
		windowWidth: windowWidth,
		loc:         loc,
		logger:      logger,
		now:         time.Now,
	}
}

// GetPreference 查询通知偏好，未设置过时返回默认值
func (s *notificationService) GetPreference(ctx context.Context, userID string) (*dto.NotificationPreferenceResponse, error) {
	pref, err := s.repo.Notification.GetPreference(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return toPreferenceResponse(defaultPreference(userID)), nil
		}
		return nil, err
	}
	return toPreferenceResponse(pref), nil
}

// UpdatePreference 全量 upsert 通知偏好
func (s *notificationService) UpdatePreference(ctx context.Context, userID string, req *dto.UpdateNotificationPreferenceRequest) (*dto.NotificationPreferenceResponse, error) {
	pref := &model.NotificationPreference{
		UserID:              userID,
		EnableNotifications: req.EnableNotifications,
		AdvanceNoticeDays:   req.AdvanceNoticeDays,
		AdvanceNoticeHours:  req.AdvanceNoticeHours,
		NotifyEvents:        req.NotifyEvents,
		NotifyMatches:       req.NotifyMatches,
		NotifyTournaments:   req.NotifyTournaments,
		NotifyPractices:     req.NotifyPractices,
		NotifyMisc:          req.NotifyMisc,
	}
	if err := s.repo.Notification.UpsertPreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("保存通知偏好失败: %w", err)
	}
	return toPreferenceResponse(pref), nil
}

// ToggleSubscription 切换对单个事件的手动订阅
// 订阅绕过类型偏好，但不能绕过可见性
func (s *notificationService) ToggleSubscription(ctx context.Context, userID, eventID string) (*dto.SubscriptionStatusResponse, error) {
	event, err := s.repo.GeneralEvent.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	exists, err := s.repo.Subscription.Exists(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if exists {
		if err := s.repo.Subscription.Delete(ctx, userID, eventID); err != nil {
			return nil, err
		}
		return &dto.SubscriptionStatusResponse{EventID: eventID, Subscribed: false}, nil
	}

	facts, err := s.resolver.Facts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !facts.CanSee(event) {
		return nil, ErrSubscribeHidden
	}

	sub := &model.EventSubscription{UserID: userID, EventID: eventID}
	if err := s.repo.Subscription.Create(ctx, sub); err != nil {
		return nil, err
	}
	return &dto.SubscriptionStatusResponse{EventID: eventID, Subscribed: true}, nil
}

// GetSubscription 查询对单个事件的订阅状态
func (s *notificationService) GetSubscription(ctx context.Context, userID, eventID string) (*dto.SubscriptionStatusResponse, error) {
	exists, err := s.repo.Subscription.Exists(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	return &dto.SubscriptionStatusResponse{EventID: eventID, Subscribed: exists}, nil
}

// RunSweep 执行一轮通知扫描
//
// 每个用户的提醒窗口为 [now+提前量, now+提前量+窗口宽度)。
// 事件进入窗口即候选，再依次过可见性、类型偏好（锦标赛额外要求
// 用户关联事件所属游戏）与手动订阅的并集、24 小时去重。
// 单个用户或单封邮件失败只计数不中断整轮扫描。
func (s *notificationService) RunSweep(ctx context.Context) (result *dto.SweepResultResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("通知扫描发生 panic", zap.Any("panic", r))
			err = fmt.Errorf("通知扫描异常终止: %v", r)
		}
	}()

	result = &dto.SweepResultResponse{}

	prefs, err := s.repo.Notification.ListEnabledPreferences(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range prefs {
		pref := &prefs[i]
		if serr := s.sweepUser(ctx, pref, now, result); serr != nil {
			s.logger.Error("用户通知处理失败",
				zap.String("user_id", pref.UserID),
				zap.Error(serr))
			result.Failures++
		}
		result.UsersProcessed++
	}

	s.logger.Info("通知扫描完成",
		zap.Int("users_processed", result.UsersProcessed),
		zap.Int("emails_sent", result.EmailsSent),
		zap.Int("failures", result.Failures))
	return result, nil
}

// sweepUser 处理单个用户的一轮提醒
func (s *notificationService) sweepUser(ctx context.Context, pref *model.NotificationPreference, now time.Time, result *dto.SweepResultResponse) error {
	windowStart := now.Add(pref.AdvanceNotice())
	windowEnd := windowStart.Add(s.windowWidth)

	events, err := s.repo.GeneralEvent.ListInWindow(ctx,
		atMidnight(windowStart.In(s.loc), s.loc),
		atMidnight(windowEnd.In(s.loc), s.loc))
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	facts, err := s.resolver.Facts(ctx, pref.UserID)
	if err != nil {
		return err
	}

	subIDs, err := s.repo.Subscription.ListEventIDsByUser(ctx, pref.UserID)
	if err != nil {
		return err
	}
	subscribed := make(map[string]struct{}, len(subIDs))
	for _, id := range subIDs {
		subscribed[id] = struct{}{}
	}

	var user *model.User // 首封邮件前懒加载

	for i := range events {
		event := &events[i]

		startAt, err := combineDateTime(event.Date, event.StartTime, s.loc)
		if err != nil {
			s.logger.Warn("事件开始时间无法解析，跳过",
				zap.String("event_id", event.EventID),
				zap.String("start_time", event.StartTime))
			continue
		}
		// 窗口左闭右开，避免相邻两轮重复命中边界
		if startAt.Before(windowStart) || !startAt.Before(windowEnd) {
			continue
		}

		if !facts.CanSee(event) {
			continue
		}

		_, isSubscribed := subscribed[event.EventID]
		if !isSubscribed && !s.wantsByPreference(pref, event, facts) {
			continue
		}

		recent, err := s.repo.Notification.WasRecentlySent(ctx, pref.UserID, event.EventID, resendSuppression)
		if err != nil {
			return err
		}
		if recent {
			continue
		}

		if user == nil {
			user, err = s.repo.User.GetByID(ctx, pref.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("通知偏好对应的用户不存在: %s", pref.UserID)
				}
				return err
			}
		}

		if err := s.sendEventMail(user, event); err != nil {
			s.logger.Error("事件提醒邮件发送失败",
				zap.String("user_id", pref.UserID),
				zap.String("event_id", event.EventID),
				zap.Error(err))
			result.Failures++
			continue
		}

		sent := &model.SentNotification{
			UserID:    pref.UserID,
			EventID:   event.EventID,
			EventType: event.EventType,
			SentAt:    now,
		}
		if err := s.repo.Notification.RecordSent(ctx, sent); err != nil {
			return err
		}
		result.EmailsSent++
	}
	return nil
}

// wantsByPreference 类型偏好判定
// 锦标赛在类型开关之外额外要求用户（经社区或战队）关联事件所属游戏
func (s *notificationService) wantsByPreference(pref *model.NotificationPreference, event *model.GeneralEvent, facts *AudienceFacts) bool {
	if !pref.WantsType(event.EventType) {
		return false
	}
	if event.EventType == model.EventTypeTournament {
		if event.GameID == nil || !facts.InAnyGame(*event.GameID) {
			return false
		}
	}
	return true
}

// sendEventMail 渲染并发送单封事件提醒
func (s *notificationService) sendEventMail(user *model.User, event *model.GeneralEvent) error {
	body, err := mailer.RenderEventBody(mailer.EventBodyData{
		Name:        event.Name,
		Date:        event.Date.Format("2006-01-02"),
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		Location:    event.Location,
		Description: event.Description,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("【%s提醒】%s", eventTypeLabel(event.EventType), event.Name)
	return s.mailer.Send(user.Email, subject, body)
}

// eventTypeLabel 事件类型的邮件主题用中文标签
func eventTypeLabel(eventType string) string {
	switch eventType {
	case model.EventTypeMatch:
		return "比赛"
	case model.EventTypeTournament:
		return "锦标赛"
	case model.EventTypePractice:
		return "训练"
	case model.EventTypeMisc:
		return "事项"
	default:
		return "活动"
	}
}

// defaultPreference 未设置过偏好时的默认值（通知默认关闭）
func defaultPreference(userID string) *model.NotificationPreference {
	return &model.NotificationPreference{
		UserID:              userID,
		EnableNotifications: false,
		AdvanceNoticeDays:   1,
		AdvanceNoticeHours:  0,
		NotifyEvents:        true,
		NotifyMatches:       true,
		NotifyTournaments:   true,
		NotifyPractices:     true,
		NotifyMisc:          false,
	}
}

// toPreferenceResponse 组装通知偏好响应
func toPreferenceResponse(pref *model.NotificationPreference) *dto.NotificationPreferenceResponse {
	return &dto.NotificationPreferenceResponse{
		UserID:              pref.UserID,
		EnableNotifications: pref.EnableNotifications,
		AdvanceNoticeDays:   pref.AdvanceNoticeDays,
		AdvanceNoticeHours:  pref.AdvanceNoticeHours,
		NotifyEvents:        pref.NotifyEvents,
		NotifyMatches:       pref.NotifyMatches,
		NotifyTournaments:   pref.NotifyTournaments,
		NotifyPractices:     pref.NotifyPractices,
		NotifyMisc:          pref.NotifyMisc,
	}
}

// [自证通过] internal/service/notification_service.go
