package sdk

import (
	"context"
	"time"
)

// ExtensionBridge delivers an outgoing message through the browser
// extension, which performs the actual send. The call returns once the
// extension acknowledges delivery, or with an error.
type ExtensionBridge interface {
	SendMessage(ctx context.Context, threadId, content string, attachments []Attachment) error
}

// Sender performs optimistic sends: the message appears in the merge state
// immediately and is rolled back if the bridge never acknowledges it.
type Sender struct {
	merge       *MergeState
	bridge      ExtensionBridge
	textTimeout time.Duration
	fileTimeout time.Duration
}

// SenderOption configures a Sender
type SenderOption func(*Sender)

// WithAckTimeouts overrides the ack deadlines for text-only and
// attachment-carrying sends
func WithAckTimeouts(text, file time.Duration) SenderOption {
	return func(s *Sender) {
		s.textTimeout = text
		s.fileTimeout = file
	}
}

// NewSender creates a sender updating merge through bridge
func NewSender(merge *MergeState, bridge ExtensionBridge, opts ...SenderOption) *Sender {
	s := &Sender{
		merge:       merge,
		bridge:      bridge,
		textTimeout: DefaultTextAckTimeout,
		fileTimeout: DefaultFileAckTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendResult reports how an optimistic send ended
type SendResult struct {
	// Placeholder is the optimistic message shown while sending.
	Placeholder *MessageInfo
	// RestoredText carries the composed text back on failure so the
	// composer can be refilled.
	RestoredText string
	Err          error
}

// Send places an optimistic message and waits for the bridge to ack within
// a bounded window. Attachment sends wait longer; uploads are slow.
func (s *Sender) Send(ctx context.Context, threadId, content string, attachments []Attachment) *SendResult {
	placeholder := s.merge.ApplyOptimisticSend(threadId, content, time.Now().UnixMilli())

	timeout := s.textTimeout
	if len(attachments) > 0 {
		timeout = s.fileTimeout
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := s.bridge.SendMessage(sendCtx, threadId, content, attachments)
	if err != nil {
		if sendCtx.Err() == context.DeadlineExceeded {
			err = ErrSendTimeout
		}
		restored, _ := s.merge.ApplySendResult(placeholder.Urn, false)
		return &SendResult{Placeholder: placeholder, RestoredText: restored, Err: err}
	}

	s.merge.ApplySendResult(placeholder.Urn, true)
	return &SendResult{Placeholder: placeholder}
}
