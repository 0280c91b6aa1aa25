package repository

import (
	"context"
	"errors"

	"github.com/inboxlane/inboxlane/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationRepo is the repository for conversation operations
type ConversationRepo struct {
	db *gorm.DB
}

// NewConversationRepo creates a new ConversationRepo
func NewConversationRepo(db *gorm.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Upsert creates or updates a conversation keyed by canonical thread id.
// Only identity fields are written on conflict; summary fields and CRM
// metadata (note, tags, read state) are owned by other operations and are
// never clobbered here.
func (r *ConversationRepo) Upsert(ctx context.Context, conv *entity.Conversation) error {
	now := entity.NowUnixMilli()
	conv.UpdatedAt = now
	if conv.CreatedAt == 0 {
		conv.CreatedAt = now
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "thread_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"linkedin_id": conv.LinkedinId,
			"name":        conv.Name,
			"avatar_url":  conv.AvatarUrl,
			"headline":    conv.Headline,
			"is_starred":  conv.IsStarred,
			"updated_at":  now,
		}),
	}).Create(conv).Error
}

// GetByThreadId gets a conversation by canonical thread id
func (r *ConversationRepo) GetByThreadId(ctx context.Context, threadId string) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadId).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// List returns all conversations sorted by last message time descending
func (r *ConversationRepo) List(ctx context.Context) ([]*entity.Conversation, error) {
	var convs []*entity.Conversation
	err := r.db.WithContext(ctx).
		Order("last_message_time DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

// UpdateSummary conditionally refreshes the last-message fields. The WHERE
// guard enforces the forward-only invariant at the store level, so a stale or
// out-of-order batch can never regress a summary even under interleaving.
func (r *ConversationRepo) UpdateSummary(ctx context.Context, convId int64, upd *entity.SummaryUpdate) error {
	updates := map[string]interface{}{
		"last_message_preview": upd.Preview,
		"last_message_time":    upd.LastMessageTime,
		"last_message_from_me": upd.LastMessageFromMe,
		"is_read":              upd.IsRead,
		"updated_at":           entity.NowUnixMilli(),
	}
	if upd.ZeroUnread {
		updates["unread_count"] = 0
	} else if upd.IncrUnread {
		updates["unread_count"] = gorm.Expr("unread_count + 1")
	}

	return r.db.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ? AND last_message_time < ?", convId, upd.LastMessageTime).
		Updates(updates).Error
}

// MarkRead zeroes the unread counter and sets the read flag
func (r *ConversationRepo) MarkRead(ctx context.Context, convId int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ?", convId).
		Updates(map[string]interface{}{
			"is_read":      true,
			"unread_count": 0,
			"updated_at":   entity.NowUnixMilli(),
		}).Error
}

// SetNote sets or clears the free-text note
func (r *ConversationRepo) SetNote(ctx context.Context, convId int64, note string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ?", convId).
		Updates(map[string]interface{}{
			"note":       note,
			"updated_at": entity.NowUnixMilli(),
		}).Error
}

// SetStarred sets the starred flag
func (r *ConversationRepo) SetStarred(ctx context.Context, convId int64, starred bool) error {
	return r.db.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ?", convId).
		Updates(map[string]interface{}{
			"is_starred": starred,
			"updated_at": entity.NowUnixMilli(),
		}).Error
}
