package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/purp-rup/esports-management-tool-sub000/internal/model"
	pkgerrors "github.com/purp-rup/esports-management-tool-sub000/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Name
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		all = append(all, *u)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock GameRepository ──

type mockGameRepo struct {
	games       map[string]*model.Game
	communities map[string][]string // userID -> gameIDs
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{
		games:       make(map[string]*model.Game),
		communities: make(map[string][]string),
	}
}

func (m *mockGameRepo) GetByID(_ context.Context, id string) (*model.Game, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGameRepo) List(_ context.Context) ([]model.Game, error) {
	var result []model.Game
	for _, g := range m.games {
		result = append(result, *g)
	}
	return result, nil
}

func (m *mockGameRepo) ListCommunityGameIDs(_ context.Context, userID string) ([]string, error) {
	return m.communities[userID], nil
}

// ── Mock LeagueRepository ──

type mockLeagueRepo struct {
	leagues map[string]*model.League
}

func newMockLeagueRepo() *mockLeagueRepo {
	return &mockLeagueRepo{leagues: make(map[string]*model.League)}
}

func (m *mockLeagueRepo) GetByID(_ context.Context, id string) (*model.League, error) {
	if l, ok := m.leagues[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams   map[string]*model.Team
	members []model.TeamMember
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) ListMemberships(_ context.Context, userID string) ([]model.TeamMember, error) {
	var result []model.TeamMember
	for _, mem := range m.members {
		if mem.UserID != userID {
			continue
		}
		mem.Team = m.teams[mem.TeamID]
		result = append(result, mem)
	}
	return result, nil
}

func (m *mockTeamRepo) IsMember(_ context.Context, userID, teamID string) (bool, error) {
	for _, mem := range m.members {
		if mem.UserID == userID && mem.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTeamRepo) ListMemberUsers(_ context.Context, teamID string) ([]model.User, error) {
	return nil, nil
}

// ── Mock GeneralEventRepository ──

type mockGeneralEventRepo struct {
	events map[string]*model.GeneralEvent
	nextID int
}

func newMockGeneralEventRepo() *mockGeneralEventRepo {
	return &mockGeneralEventRepo{events: make(map[string]*model.GeneralEvent)}
}

func (m *mockGeneralEventRepo) Create(_ context.Context, event *model.GeneralEvent) error {
	if event.EventID == "" {
		m.nextID++
		event.EventID = fmt.Sprintf("ev-%d", m.nextID)
	}
	// 唯一索引：同一日程同一日期至多一条
	if event.ScheduleID != nil {
		for _, e := range m.events {
			if e.ScheduleID != nil && *e.ScheduleID == *event.ScheduleID &&
				e.Date.Format("2006-01-02") == event.Date.Format("2006-01-02") {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockGeneralEventRepo) GetByID(_ context.Context, id string) (*model.GeneralEvent, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGeneralEventRepo) ListDatesBySchedule(_ context.Context, scheduleID string) ([]time.Time, error) {
	var result []time.Time
	for _, e := range m.events {
		if e.ScheduleID != nil && *e.ScheduleID == scheduleID {
			result = append(result, e.Date)
		}
	}
	return result, nil
}

func (m *mockGeneralEventRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.GeneralEvent, error) {
	var result []model.GeneralEvent
	for _, e := range m.events {
		if e.ScheduleID != nil && *e.ScheduleID == scheduleID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockGeneralEventRepo) CountBySchedule(_ context.Context, scheduleID string) (int64, error) {
	var count int64
	for _, e := range m.events {
		if e.ScheduleID != nil && *e.ScheduleID == scheduleID {
			count++
		}
	}
	return count, nil
}

func (m *mockGeneralEventRepo) ListInWindow(_ context.Context, from, to time.Time) ([]model.GeneralEvent, error) {
	fromKey := from.Format("2006-01-02")
	toKey := to.Format("2006-01-02")
	var result []model.GeneralEvent
	for _, e := range m.events {
		key := e.Date.Format("2006-01-02")
		if key >= fromKey && key <= toKey {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockGeneralEventRepo) ListByDateRange(ctx context.Context, from, to time.Time, offset, limit int) ([]model.GeneralEvent, int64, error) {
	all, _ := m.ListInWindow(ctx, from, to)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockGeneralEventRepo) ListByTeamAndDateRange(ctx context.Context, teamID string, from, to time.Time) ([]model.GeneralEvent, error) {
	all, _ := m.ListInWindow(ctx, from, to)
	var result []model.GeneralEvent
	for _, e := range all {
		if e.TeamID != nil && *e.TeamID == teamID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockGeneralEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

// ── Mock ScheduledEventRepository ──

// mockScheduledEventRepo 持有事件 mock 的引用以模拟级联删除与元数据同步
type mockScheduledEventRepo struct {
	schedules map[string]*model.ScheduledEvent
	events    *mockGeneralEventRepo
	nextID    int
}

func newMockScheduledEventRepo(events *mockGeneralEventRepo) *mockScheduledEventRepo {
	return &mockScheduledEventRepo{
		schedules: make(map[string]*model.ScheduledEvent),
		events:    events,
	}
}

func (m *mockScheduledEventRepo) Create(_ context.Context, schedule *model.ScheduledEvent) error {
	if schedule.ScheduledEventID == "" {
		m.nextID++
		schedule.ScheduledEventID = fmt.Sprintf("sch-%d", m.nextID)
	}
	if schedule.Version == 0 {
		schedule.Version = 1
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now()
	}
	m.schedules[schedule.ScheduledEventID] = schedule
	return nil
}

func (m *mockScheduledEventRepo) GetByID(_ context.Context, id string) (*model.ScheduledEvent, error) {
	if s, ok := m.schedules[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduledEventRepo) ListByTeam(_ context.Context, teamID string) ([]model.ScheduledEvent, error) {
	var result []model.ScheduledEvent
	for _, s := range m.schedules {
		if s.TeamID != nil && *s.TeamID == teamID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduledEventRepo) ListActive(_ context.Context) ([]model.ScheduledEvent, error) {
	var result []model.ScheduledEvent
	for _, s := range m.schedules {
		if s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduledEventRepo) UpdateMetadata(_ context.Context, schedule *model.ScheduledEvent) error {
	stored, ok := m.schedules[schedule.ScheduledEventID]
	if !ok || stored.Version != schedule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.EventName = schedule.EventName
	stored.EventType = schedule.EventType
	stored.Visibility = schedule.Visibility
	stored.LeagueID = schedule.LeagueID
	stored.Description = schedule.Description
	stored.Location = schedule.Location
	stored.Version++
	schedule.Version = stored.Version

	// 同步元数据到已生成事件
	for _, e := range m.events.events {
		if e.ScheduleID != nil && *e.ScheduleID == schedule.ScheduledEventID {
			e.Name = schedule.EventName
			e.EventType = schedule.EventType
			e.Visibility = schedule.Visibility
			e.LeagueID = schedule.LeagueID
			e.Description = schedule.Description
			e.Location = schedule.Location
		}
	}
	return nil
}

func (m *mockScheduledEventRepo) UpdateLastGenerated(_ context.Context, id string, lastGenerated time.Time) error {
	if s, ok := m.schedules[id]; ok {
		s.LastGenerated = &lastGenerated
	}
	return nil
}

func (m *mockScheduledEventRepo) DeleteCascade(_ context.Context, id string) error {
	for eid, e := range m.events.events {
		if e.ScheduleID != nil && *e.ScheduleID == id {
			delete(m.events.events, eid)
		}
	}
	delete(m.schedules, id)
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	prefs map[string]*model.NotificationPreference
	sent  []model.SentNotification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{prefs: make(map[string]*model.NotificationPreference)}
}

func (m *mockNotificationRepo) GetPreference(_ context.Context, userID string) (*model.NotificationPreference, error) {
	if p, ok := m.prefs[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) UpsertPreference(_ context.Context, pref *model.NotificationPreference) error {
	m.prefs[pref.UserID] = pref
	return nil
}

func (m *mockNotificationRepo) ListEnabledPreferences(_ context.Context) ([]model.NotificationPreference, error) {
	var result []model.NotificationPreference
	for _, p := range m.prefs {
		if p.EnableNotifications {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) WasRecentlySent(_ context.Context, userID, eventID string, within time.Duration) (bool, error) {
	cutoff := time.Now().Add(-within)
	for _, s := range m.sent {
		if s.UserID == userID && s.EventID == eventID && s.SentAt.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificationRepo) RecordSent(_ context.Context, sent *model.SentNotification) error {
	if sent.SentID == "" {
		sent.SentID = fmt.Sprintf("sent-%d", len(m.sent)+1)
	}
	m.sent = append(m.sent, *sent)
	return nil
}

// ── Mock SubscriptionRepository ──

type mockSubscriptionRepo struct {
	subs map[string]map[string]struct{} // userID -> eventIDs
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{subs: make(map[string]map[string]struct{})}
}

func (m *mockSubscriptionRepo) Exists(_ context.Context, userID, eventID string) (bool, error) {
	if set, ok := m.subs[userID]; ok {
		_, found := set[eventID]
		return found, nil
	}
	return false, nil
}

func (m *mockSubscriptionRepo) Create(_ context.Context, sub *model.EventSubscription) error {
	if m.subs[sub.UserID] == nil {
		m.subs[sub.UserID] = make(map[string]struct{})
	}
	m.subs[sub.UserID][sub.EventID] = struct{}{}
	return nil
}

func (m *mockSubscriptionRepo) Delete(_ context.Context, userID, eventID string) error {
	if set, ok := m.subs[userID]; ok {
		delete(set, eventID)
	}
	return nil
}

func (m *mockSubscriptionRepo) ListEventIDsByUser(_ context.Context, userID string) ([]string, error) {
	var result []string
	for id := range m.subs[userID] {
		result = append(result, id)
	}
	return result, nil
}

// ── Mock Mailer ──

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// mockMailer 内存邮件实现；failTo 指定的收件人发送时返回错误
type mockMailer struct {
	sent   []sentMail
	failTo string
}

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	if m.failTo != "" && to == m.failTo {
		return fmt.Errorf("模拟 SMTP 失败: %s", to)
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
