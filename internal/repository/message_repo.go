package repository

import (
	"context"
	"errors"

	"github.com/inboxlane/inboxlane/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepo is the repository for message operations
type MessageRepo struct {
	db *gorm.DB
}

// NewMessageRepo creates a new MessageRepo
func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Upsert creates or updates a message keyed by external URN. Temporary
// placeholder URNs are skipped silently: they are client-local and must never
// be persisted.
func (r *MessageRepo) Upsert(ctx context.Context, msg *entity.Message) error {
	if entity.IsTemporaryUrn(msg.Urn) {
		return nil
	}

	now := entity.NowUnixMilli()
	msg.UpdatedAt = now
	if msg.CreatedAt == 0 {
		msg.CreatedAt = now
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "urn"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"thread_id":       msg.ThreadId,
			"conversation_id": msg.ConversationId,
			"content":         msg.Content,
			"is_from_me":      msg.IsFromMe,
			"sent_at":         msg.SentAt,
			"attachments":     msg.Attachments,
			"updated_at":      now,
		}),
	}).Create(msg).Error
}

// GetByUrn gets a message by external URN
func (r *MessageRepo) GetByUrn(ctx context.Context, urn string) (*entity.Message, error) {
	var msg entity.Message
	err := r.db.WithContext(ctx).
		Where("urn = ?", urn).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// ListAll returns every stored message in ascending sent time order
func (r *MessageRepo) ListAll(ctx context.Context) ([]*entity.Message, error) {
	var msgs []*entity.Message
	err := r.db.WithContext(ctx).
		Order("sent_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListByThread returns a conversation's messages in ascending sent time order
func (r *MessageRepo) ListByThread(ctx context.Context, threadId string) ([]*entity.Message, error) {
	var msgs []*entity.Message
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadId).
		Order("sent_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
