package service

import (
	"context"

	"github.com/inboxlane/inboxlane/common"
	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/internal/repository"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// ConversationService handles CRM metadata on conversations
type ConversationService struct {
	convRepo *repository.ConversationRepo
}

// NewConversationService creates a new ConversationService
func NewConversationService(convRepo *repository.ConversationRepo) *ConversationService {
	return &ConversationService{convRepo: convRepo}
}

// resolve maps a raw thread reference to the stored conversation
func (s *ConversationService) resolve(ctx context.Context, rawThreadRef string) (*entity.Conversation, error) {
	threadId := common.ResolveThreadId(rawThreadRef)
	if threadId == "" {
		return nil, errcode.ErrInvalidParam
	}

	conv, err := s.convRepo.GetByThreadId(ctx, threadId)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	if conv == nil {
		return nil, errcode.ErrConvNotFound
	}
	return conv, nil
}

// SetNote sets or clears the conversation's free-text note
func (s *ConversationService) SetNote(ctx context.Context, rawThreadRef, note string) error {
	conv, err := s.resolve(ctx, rawThreadRef)
	if err != nil {
		return err
	}
	if err := s.convRepo.SetNote(ctx, conv.Id, note); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	log.CtxInfo(ctx, "conversation %s note updated", conv.ThreadId)
	return nil
}

// SetStarred sets the conversation's starred flag
func (s *ConversationService) SetStarred(ctx context.Context, rawThreadRef string, starred bool) error {
	conv, err := s.resolve(ctx, rawThreadRef)
	if err != nil {
		return err
	}
	if err := s.convRepo.SetStarred(ctx, conv.Id, starred); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	return nil
}

// MarkRead clears the conversation's unread state
func (s *ConversationService) MarkRead(ctx context.Context, rawThreadRef string) error {
	conv, err := s.resolve(ctx, rawThreadRef)
	if err != nil {
		return err
	}
	if err := s.convRepo.MarkRead(ctx, conv.Id); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	return nil
}
