package sdk

import "time"

// TempUrnPrefix marks client-local optimistic message identifiers
const TempUrnPrefix = "tmp_"

// ContentKeyLen is the content prefix length used in de-duplication keys
const ContentKeyLen = 100

// Attachment kinds
const (
	AttachmentKindImage = "image"
	AttachmentKindFile  = "file"
	AttachmentKindAudio = "audio"
	AttachmentKindVideo = "video"
)

// Client kinds
const (
	ClientDashboard = "dashboard"
	ClientExtension = "extension"
)

// Defaults for the merge engine and drivers
const (
	// DefaultSuppressionWindow is how long a just-sent message's content key
	// suppresses matching realtime echoes.
	DefaultSuppressionWindow = 30 * time.Second

	// DefaultSyncInterval is the full-sync poll period.
	DefaultSyncInterval = 10 * time.Second

	// DefaultRealtimeInterval is the realtime buffer poll period.
	DefaultRealtimeInterval = 5 * time.Second

	// DefaultTextAckTimeout bounds the wait for a plain-text send ack.
	DefaultTextAckTimeout = 10 * time.Second

	// DefaultFileAckTimeout bounds the wait when an attachment is included;
	// uploads take longer than text.
	DefaultFileAckTimeout = 45 * time.Second
)
