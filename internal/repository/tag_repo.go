package repository

import (
	"context"
	"errors"

	"github.com/inboxlane/inboxlane/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepo is the repository for tag operations
type TagRepo struct {
	db *gorm.DB
}

// NewTagRepo creates a new TagRepo
func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create creates a new tag
func (r *TagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	tag.CreatedAt = entity.NowUnixMilli()
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetById gets a tag by id
func (r *TagRepo) GetById(ctx context.Context, tagId string) (*entity.Tag, error) {
	var tag entity.Tag
	err := r.db.WithContext(ctx).Where("id = ?", tagId).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetByName gets a tag by name
func (r *TagRepo) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	var tag entity.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// List returns all tags ordered by name
func (r *TagRepo) List(ctx context.Context) ([]*entity.Tag, error) {
	var tags []*entity.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes a tag and all its conversation associations
func (r *TagRepo) Delete(ctx context.Context, tagId string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tagId).Delete(&entity.ConversationTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", tagId).Delete(&entity.Tag{}).Error
	})
}

// Assign associates a tag with a conversation (idempotent)
func (r *TagRepo) Assign(ctx context.Context, convId int64, tagId string) error {
	assoc := &entity.ConversationTag{
		ConversationId: convId,
		TagId:          tagId,
		CreatedAt:      entity.NowUnixMilli(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "conversation_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(assoc).Error
}

// Unassign removes a tag from a conversation
func (r *TagRepo) Unassign(ctx context.Context, convId int64, tagId string) error {
	return r.db.WithContext(ctx).
		Where("conversation_id = ? AND tag_id = ?", convId, tagId).
		Delete(&entity.ConversationTag{}).Error
}

// ListByConversations returns the tags of every conversation, keyed by
// conversation id
func (r *TagRepo) ListByConversations(ctx context.Context) (map[int64][]*entity.Tag, error) {
	type row struct {
		entity.Tag
		ConversationId int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("tags t").
		Select("t.*, ct.conversation_id").
		Joins("JOIN conversation_tags ct ON ct.tag_id = t.id").
		Order("t.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64][]*entity.Tag, len(rows))
	for i := range rows {
		tag := rows[i].Tag
		result[rows[i].ConversationId] = append(result[rows[i].ConversationId], &tag)
	}
	return result, nil
}
