package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/purp-rup/esports-management-tool-sub000/internal/dto"
	"github.com/purp-rup/esports-management-tool-sub000/internal/service"
	pkgerrors "github.com/purp-rup/esports-management-tool-sub000/pkg/errors"
	"github.com/purp-rup/esports-management-tool-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	getCurrentResult *dto.UserDetailResponse
	getCurrentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock ScheduledEventService ──

type mockScheduledEventService struct {
	createResult   *dto.ScheduledEventResponse
	createErr      error
	getResult      *dto.ScheduledEventResponse
	getErr         error
	updateResult   *dto.ScheduledEventResponse
	updateErr      error
	deleteErr      error
	listResult     []dto.ScheduledEventResponse
	listErr        error
	generateCount  int
	generateErr    error
	generateAllRes *dto.GenerateEventsResponse
	generateAllErr error
}

func (m *mockScheduledEventService) Create(_ context.Context, _ *dto.CreateScheduledEventRequest, _, _ string) (*dto.ScheduledEventResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockScheduledEventService) Get(_ context.Context, _ string) (*dto.ScheduledEventResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockScheduledEventService) Update(_ context.Context, _ string, _ *dto.UpdateScheduledEventRequest, _, _ string) (*dto.ScheduledEventResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockScheduledEventService) Delete(_ context.Context, _ string, _, _ string) error {
	return m.deleteErr
}
func (m *mockScheduledEventService) ListByTeam(_ context.Context, _ string) ([]dto.ScheduledEventResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockScheduledEventService) GenerateEvents(_ context.Context, _ string) (int, error) {
	return m.generateCount, m.generateErr
}
func (m *mockScheduledEventService) GenerateAll(_ context.Context) (*dto.GenerateEventsResponse, error) {
	return m.generateAllRes, m.generateAllErr
}

// ── Mock EventService ──

type mockEventService struct {
	listResult []dto.EventResponse
	listErr    error
	getResult  *dto.EventResponse
	getErr     error
	deleteErr  error
}

func (m *mockEventService) List(_ context.Context, _ string, _ *dto.ListEventsRequest) ([]dto.EventResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockEventService) Get(_ context.Context, _, _ string) (*dto.EventResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockEventService) Delete(_ context.Context, _, _, _ string) error {
	return m.deleteErr
}

// ── Mock NotificationService ──

type mockNotificationService struct {
	prefResult    *dto.NotificationPreferenceResponse
	prefErr       error
	updatedResult *dto.NotificationPreferenceResponse
	updatedErr    error
	toggleResult  *dto.SubscriptionStatusResponse
	toggleErr     error
	statusResult  *dto.SubscriptionStatusResponse
	statusErr     error
	sweepResult   *dto.SweepResultResponse
	sweepErr      error
}

func (m *mockNotificationService) GetPreference(_ context.Context, _ string) (*dto.NotificationPreferenceResponse, error) {
	return m.prefResult, m.prefErr
}
func (m *mockNotificationService) UpdatePreference(_ context.Context, _ string, _ *dto.UpdateNotificationPreferenceRequest) (*dto.NotificationPreferenceResponse, error) {
	return m.updatedResult, m.updatedErr
}
func (m *mockNotificationService) ToggleSubscription(_ context.Context, _, _ string) (*dto.SubscriptionStatusResponse, error) {
	return m.toggleResult, m.toggleErr
}
func (m *mockNotificationService) GetSubscription(_ context.Context, _, _ string) (*dto.SubscriptionStatusResponse, error) {
	return m.statusResult, m.statusErr
}
func (m *mockNotificationService) RunSweep(_ context.Context) (*dto.SweepResultResponse, error) {
	return m.sweepResult, m.sweepErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	icsBody  string
	filename string
	err      error
}

func (m *mockExportService) ExportTeamEventsXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportTeamEventsICS(_ context.Context, _ string) (string, string, error) {
	return m.icsBody, m.filename, m.err
}

// ── Mock UserService ──

type mockUserService struct {
	listResult []dto.UserResponse
	listTotal  int64
	listErr    error
}

func (m *mockUserService) List(_ context.Context, _ *dto.PaginationRequest) ([]dto.UserResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() (*gin.Engine, *gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	return r, c, w
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "gm")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func validCreateRequest() dto.CreateScheduledEventRequest {
	return dto.CreateScheduledEventRequest{
		GameID:     "11111111-1111-1111-1111-111111111111",
		EventName:  "周三训练",
		EventType:  "Practice",
		Frequency:  "Weekly",
		DayOfWeek:  intPtr(3),
		StartTime:  "18:00",
		EndTime:    "20:00",
		Visibility: "all_members",
		EndDate:    "2026-12-20",
	}
}

func intPtr(v int) *int { return &v }

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mock := &mockAuthService{
		getCurrentResult: &dto.UserDetailResponse{
			ID:   "test-user-id",
			Name: "张三",
		},
	}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduledEventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduledEventHandler_Create_Success(t *testing.T) {
	mock := &mockScheduledEventService{
		createResult: &dto.ScheduledEventResponse{
			ID:        "sch-1",
			EventName: "周三训练",
		},
	}
	h := NewScheduledEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/scheduled-events", jsonBody(validCreateRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/scheduled-events", func(c *gin.Context) {
		setAuth(c)
		h.CreateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestScheduledEventHandler_Create_BadJSON(t *testing.T) {
	mock := &mockScheduledEventService{}
	h := NewScheduledEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/scheduled-events", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/scheduled-events", func(c *gin.Context) {
		setAuth(c)
		h.CreateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduledEventHandler_Create_InvalidEventType(t *testing.T) {
	mock := &mockScheduledEventService{}
	h := NewScheduledEventHandler(mock)

	body := validCreateRequest()
	body.EventType = "Scrimmage" // 不在枚举内

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/scheduled-events", jsonBody(body))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/scheduled-events", func(c *gin.Context) {
		setAuth(c)
		h.CreateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestScheduledEventHandler_Create_Unauthenticated(t *testing.T) {
	mock := &mockScheduledEventService{}
	h := NewScheduledEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/scheduled-events", jsonBody(validCreateRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/scheduled-events", h.CreateSchedule)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestScheduledEventHandler_Delete_NotAllowed(t *testing.T) {
	mock := &mockScheduledEventService{
		deleteErr: service.ErrDeleteNotAllowed,
	}
	h := NewScheduledEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/scheduled-events/sch-1", nil)

	r := gin.New()
	r.DELETE("/scheduled-events/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12004 {
		t.Errorf("expected error code 12004, got %d", resp.Code)
	}
}

func TestScheduledEventHandler_GenerateEvents_Success(t *testing.T) {
	mock := &mockScheduledEventService{generateCount: 4}
	h := NewScheduledEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/scheduled-events/sch-1/generate", nil)

	r := gin.New()
	r.POST("/scheduled-events/:id/generate", func(c *gin.Context) {
		setAuth(c)
		h.GenerateEvents(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduledEventHandler_GenerateAll_Success(t *testing.T) {
	mock := &mockScheduledEventService{
		generateAllRes: &dto.GenerateEventsResponse{
			SchedulesProcessed: 3,
			EventsCreated:      12,
		},
	}
	h := NewScheduledEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/admin/jobs/generate-events", nil)

	r := gin.New()
	r.POST("/admin/jobs/generate-events", h.GenerateAllEvents)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduledEventHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrScheduleNotFound, 404, 12001},
		{"GameNotFound", service.ErrGameNotFound, 400, 12002},
		{"TeamNotFound", service.ErrTeamNotFound, 400, 12002},
		{"DayOfWeekRequired", service.ErrDayOfWeekRequired, 400, 12003},
		{"LeagueRequired", service.ErrLeagueRequired, 400, 12003},
		{"EndBeforeStart", service.ErrEndBeforeStart, 400, 12003},
		{"NoPermission", service.ErrNoPermission, 403, 10003},
		{"OptimisticLock", pkgerrors.ErrOptimisticLock, 409, 12005},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockScheduledEventService{getErr: tt.err}
			h := NewScheduledEventHandler(mock)

			_, _, w := setupGin()
			req := httptest.NewRequest("GET", "/scheduled-events/sch-1", nil)

			r := gin.New()
			r.GET("/scheduled-events/:id", h.GetSchedule)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// EventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEventHandler_List_Success(t *testing.T) {
	mock := &mockEventService{
		listResult: []dto.EventResponse{
			{ID: "ev-1", Name: "周三训练"},
			{ID: "ev-2", Name: "联赛第一轮"},
		},
	}
	h := NewEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/events?from=2026-09-01&to=2026-09-30", nil)

	r := gin.New()
	r.GET("/events", func(c *gin.Context) {
		setAuth(c)
		h.ListEvents(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestEventHandler_Get_Hidden(t *testing.T) {
	mock := &mockEventService{getErr: service.ErrEventHidden}
	h := NewEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/events/ev-1", nil)

	r := gin.New()
	r.GET("/events/:id", func(c *gin.Context) {
		setAuth(c)
		h.GetEvent(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

func TestEventHandler_Get_NotFound(t *testing.T) {
	mock := &mockEventService{getErr: service.ErrEventNotFound}
	h := NewEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/events/ev-missing", nil)

	r := gin.New()
	r.GET("/events/:id", func(c *gin.Context) {
		setAuth(c)
		h.GetEvent(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestEventHandler_Delete_NoPermission(t *testing.T) {
	mock := &mockEventService{deleteErr: service.ErrNoPermission}
	h := NewEventHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/events/ev-1", nil)

	r := gin.New()
	r.DELETE("/events/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteEvent(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// NotificationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestNotificationHandler_GetPreferences_Success(t *testing.T) {
	mock := &mockNotificationService{
		prefResult: &dto.NotificationPreferenceResponse{
			UserID:              "test-user-id",
			EnableNotifications: true,
			AdvanceNoticeDays:   1,
		},
	}
	h := NewNotificationHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/notifications/preferences", nil)

	r := gin.New()
	r.GET("/notifications/preferences", func(c *gin.Context) {
		setAuth(c)
		h.GetPreferences(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestNotificationHandler_UpdatePreferences_InvalidAdvance(t *testing.T) {
	mock := &mockNotificationService{}
	h := NewNotificationHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/notifications/preferences", jsonBody(dto.UpdateNotificationPreferenceRequest{
		EnableNotifications: true,
		AdvanceNoticeDays:   99, // 超出 max=30
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/notifications/preferences", func(c *gin.Context) {
		setAuth(c)
		h.UpdatePreferences(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestNotificationHandler_ToggleSubscription_Success(t *testing.T) {
	mock := &mockNotificationService{
		toggleResult: &dto.SubscriptionStatusResponse{
			EventID:    "ev-1",
			Subscribed: true,
		},
	}
	h := NewNotificationHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/events/ev-1/subscription", nil)

	r := gin.New()
	r.POST("/events/:id/subscription", func(c *gin.Context) {
		setAuth(c)
		h.ToggleSubscription(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestNotificationHandler_ToggleSubscription_Hidden(t *testing.T) {
	mock := &mockNotificationService{toggleErr: service.ErrSubscribeHidden}
	h := NewNotificationHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/events/ev-1/subscription", nil)

	r := gin.New()
	r.POST("/events/:id/subscription", func(c *gin.Context) {
		setAuth(c)
		h.ToggleSubscription(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

func TestNotificationHandler_RunSweep_Success(t *testing.T) {
	mock := &mockNotificationService{
		sweepResult: &dto.SweepResultResponse{
			UsersProcessed: 5,
			EmailsSent:     3,
		},
	}
	h := NewNotificationHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/admin/jobs/notification-sweep", nil)

	r := gin.New()
	r.POST("/admin/jobs/notification-sweep", h.RunSweep)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_XLSX_Success(t *testing.T) {
	buf := bytes.NewBufferString("excel content")
	mock := &mockExportService{
		buf:      buf,
		filename: "一队-日程-2026-09-01.xlsx",
	}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/teams/team-1/export/xlsx", nil)

	r := gin.New()
	r.GET("/teams/:id/export/xlsx", h.ExportTeamXLSX)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_ICS_Success(t *testing.T) {
	mock := &mockExportService{
		icsBody:  "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
		filename: "一队-日程-2026-09-01.ics",
	}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/teams/team-1/export/ics", nil)

	r := gin.New()
	r.GET("/teams/:id/export/ics", h.ExportTeamICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected content type: %s", ct)
	}
}

func TestExportHandler_TeamNotFound(t *testing.T) {
	mock := &mockExportService{err: service.ErrTeamNotFound}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/teams/team-missing/export/xlsx", nil)

	r := gin.New()
	r.GET("/teams/:id/export/xlsx", h.ExportTeamXLSX)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_List_Success(t *testing.T) {
	mock := &mockUserService{
		listResult: []dto.UserResponse{
			{ID: "u1", Name: "张三", Role: "player"},
		},
		listTotal: 1,
	}
	h := NewUserHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/users?page=1&page_size=20", nil)

	r := gin.New()
	r.GET("/users", h.ListUsers)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
