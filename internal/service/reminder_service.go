package service

import (
	"context"

	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/internal/repository"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/idgen"
	"github.com/mbeoliero/kit/log"
)

// ReminderWithConversation pairs a reminder with the conversation it belongs
// to, for the reminders list view
type ReminderWithConversation struct {
	*entity.ReminderInfo
	ThreadId         string `json:"threadId"`
	ConversationName string `json:"conversationName"`
}

// ReminderService handles follow-up reminders
type ReminderService struct {
	remRepo  *repository.ReminderRepo
	convRepo *repository.ConversationRepo
	convSvc  *ConversationService
}

// NewReminderService creates a new ReminderService
func NewReminderService(remRepo *repository.ReminderRepo, convRepo *repository.ConversationRepo, convSvc *ConversationService) *ReminderService {
	return &ReminderService{remRepo: remRepo, convRepo: convRepo, convSvc: convSvc}
}

// Set creates or replaces the reminder on the conversation behind a raw
// thread reference. Setting again overwrites time and note and clears the
// handled flag.
func (s *ReminderService) Set(ctx context.Context, rawThreadRef string, remindAt int64, note string) (*entity.ReminderInfo, error) {
	if remindAt <= 0 {
		return nil, errcode.ErrInvalidParam
	}

	conv, err := s.convSvc.resolve(ctx, rawThreadRef)
	if err != nil {
		return nil, err
	}

	id, err := idgen.NextID()
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	rem := &entity.Reminder{
		Id:             id,
		ConversationId: conv.Id,
		RemindAt:       remindAt,
		Note:           note,
	}
	if err := s.remRepo.Set(ctx, rem); err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	log.CtxInfo(ctx, "reminder set on conversation %s at %d", conv.ThreadId, remindAt)
	return rem.ToReminderInfo(entity.NowUnixMilli()), nil
}

// List returns all reminders with their conversations, soonest first
func (s *ReminderService) List(ctx context.Context) ([]*ReminderWithConversation, error) {
	rems, err := s.remRepo.List(ctx)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	convs, err := s.convRepo.List(ctx)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	byId := make(map[int64]*entity.Conversation, len(convs))
	for _, c := range convs {
		byId[c.Id] = c
	}

	now := entity.NowUnixMilli()
	result := make([]*ReminderWithConversation, 0, len(rems))
	for _, rem := range rems {
		item := &ReminderWithConversation{ReminderInfo: rem.ToReminderInfo(now)}
		if conv := byId[rem.ConversationId]; conv != nil {
			item.ThreadId = conv.ThreadId
			item.ConversationName = conv.Name
		}
		result = append(result, item)
	}
	return result, nil
}

// MarkHandled flags a reminder as dealt with
func (s *ReminderService) MarkHandled(ctx context.Context, reminderId string) error {
	rem, err := s.remRepo.GetById(ctx, reminderId)
	if err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	if rem == nil {
		return errcode.ErrReminderNotFound
	}

	if err := s.remRepo.MarkHandled(ctx, reminderId); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	return nil
}

// Delete removes a reminder
func (s *ReminderService) Delete(ctx context.Context, reminderId string) error {
	rem, err := s.remRepo.GetById(ctx, reminderId)
	if err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	if rem == nil {
		return errcode.ErrReminderNotFound
	}

	if err := s.remRepo.Delete(ctx, reminderId); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	return nil
}
