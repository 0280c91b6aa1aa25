package service

import (
	"context"

	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/internal/repository"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/idgen"
	"github.com/mbeoliero/kit/log"
)

// TagService handles tag lifecycle and conversation assignment
type TagService struct {
	tagRepo *repository.TagRepo
	convSvc *ConversationService
}

// NewTagService creates a new TagService
func NewTagService(tagRepo *repository.TagRepo, convSvc *ConversationService) *TagService {
	return &TagService{tagRepo: tagRepo, convSvc: convSvc}
}

// Create creates a tag with a unique name
func (s *TagService) Create(ctx context.Context, name, color string) (*entity.TagInfo, error) {
	if name == "" {
		return nil, errcode.ErrInvalidParam
	}

	existing, err := s.tagRepo.GetByName(ctx, name)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	if existing != nil {
		return nil, errcode.ErrTagExists
	}

	id, err := idgen.NextID()
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	tag := &entity.Tag{Id: id, Name: name, Color: color}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	log.CtxInfo(ctx, "tag %s (%s) created", tag.Name, tag.Id)
	return tag.ToTagInfo(), nil
}

// List returns all tags
func (s *TagService) List(ctx context.Context) ([]*entity.TagInfo, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	infos := make([]*entity.TagInfo, 0, len(tags))
	for _, t := range tags {
		infos = append(infos, t.ToTagInfo())
	}
	return infos, nil
}

// Delete removes a tag and all its assignments
func (s *TagService) Delete(ctx context.Context, tagId string) error {
	tag, err := s.tagRepo.GetById(ctx, tagId)
	if err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	if tag == nil {
		return errcode.ErrTagNotFound
	}

	if err := s.tagRepo.Delete(ctx, tagId); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	return nil
}

// Assign attaches a tag to the conversation behind a raw thread reference.
// Idempotent: assigning an already assigned tag succeeds.
func (s *TagService) Assign(ctx context.Context, rawThreadRef, tagId string) error {
	tag, err := s.tagRepo.GetById(ctx, tagId)
	if err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	if tag == nil {
		return errcode.ErrTagNotFound
	}

	conv, err := s.convSvc.resolve(ctx, rawThreadRef)
	if err != nil {
		return err
	}

	if err := s.tagRepo.Assign(ctx, conv.Id, tagId); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	return nil
}

// Unassign detaches a tag from a conversation
func (s *TagService) Unassign(ctx context.Context, rawThreadRef, tagId string) error {
	conv, err := s.convSvc.resolve(ctx, rawThreadRef)
	if err != nil {
		return err
	}

	if err := s.tagRepo.Unassign(ctx, conv.Id, tagId); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	return nil
}
