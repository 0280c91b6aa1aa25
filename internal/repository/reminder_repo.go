package repository

import (
	"context"
	"errors"

	"github.com/inboxlane/inboxlane/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReminderRepo is the repository for reminder operations
type ReminderRepo struct {
	db *gorm.DB
}

// NewReminderRepo creates a new ReminderRepo
func NewReminderRepo(db *gorm.DB) *ReminderRepo {
	return &ReminderRepo{db: db}
}

// Set creates or replaces the conversation's reminder. The unique key on
// conversation_id keeps at most one reminder per conversation.
func (r *ReminderRepo) Set(ctx context.Context, rem *entity.Reminder) error {
	now := entity.NowUnixMilli()
	rem.UpdatedAt = now
	if rem.CreatedAt == 0 {
		rem.CreatedAt = now
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "conversation_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"remind_at":  rem.RemindAt,
			"note":       rem.Note,
			"handled":    false,
			"updated_at": now,
		}),
	}).Create(rem).Error
}

// GetById gets a reminder by id
func (r *ReminderRepo) GetById(ctx context.Context, reminderId string) (*entity.Reminder, error) {
	var rem entity.Reminder
	err := r.db.WithContext(ctx).Where("id = ?", reminderId).First(&rem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rem, nil
}

// List returns all reminders ordered by trigger time
func (r *ReminderRepo) List(ctx context.Context) ([]*entity.Reminder, error) {
	var rems []*entity.Reminder
	err := r.db.WithContext(ctx).Order("remind_at ASC").Find(&rems).Error
	if err != nil {
		return nil, err
	}
	return rems, nil
}

// ListByConversations returns each conversation's reminder keyed by
// conversation id
func (r *ReminderRepo) ListByConversations(ctx context.Context) (map[int64]*entity.Reminder, error) {
	rems, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[int64]*entity.Reminder, len(rems))
	for _, rem := range rems {
		result[rem.ConversationId] = rem
	}
	return result, nil
}

// MarkHandled sets the handled flag
func (r *ReminderRepo) MarkHandled(ctx context.Context, reminderId string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Reminder{}).
		Where("id = ?", reminderId).
		Updates(map[string]interface{}{
			"handled":    true,
			"updated_at": entity.NowUnixMilli(),
		}).Error
}

// Delete removes a reminder
func (r *ReminderRepo) Delete(ctx context.Context, reminderId string) error {
	return r.db.WithContext(ctx).Where("id = ?", reminderId).Delete(&entity.Reminder{}).Error
}
