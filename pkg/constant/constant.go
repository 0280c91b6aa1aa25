package constant

// TempUrnPrefix marks client-local optimistic message identifiers. Messages
// carrying this prefix are never persisted; the server-assigned URN supersedes
// them on the next full sync.
const TempUrnPrefix = "tmp_"

// Attachment kinds
const (
	AttachmentKindImage = "image"
	AttachmentKindFile  = "file"
	AttachmentKindAudio = "audio"
	AttachmentKindVideo = "video"
)

// Preview labels used when the newest message carries attachments but no text
const (
	PreviewLabelImage = "[Photo]"
	PreviewLabelAudio = "[Voice message]"
	PreviewLabelVideo = "[Video]"
	PreviewLabelFile  = "[Attachment]"
)

// PreviewMaxLen caps the conversation preview text
const PreviewMaxLen = 100

// ContentKeyLen is the content prefix length used in client-side
// de-duplication signatures
const ContentKeyLen = 100

// DefaultBufferCap is the realtime buffer entry cap
const DefaultBufferCap = 100

// DefaultContactName is used for conversations synced without a name
const DefaultContactName = "Unknown"

// Client kinds carried in auth tokens
const (
	ClientDashboard = "dashboard"
	ClientExtension = "extension"
)

// DefaultAccountId identifies the single local account
const DefaultAccountId = "default"

// Redis key patterns (without prefix, use RedisKey() to get full key)
const (
	redisKeyToken  = "token:%s:%s" // token:{account_id}:{client}
	redisKeyBuffer = "realtime:%s" // realtime:{account_id}
)

// redisKeyPrefix is the global prefix for all Redis keys
var redisKeyPrefix = "inboxlane:"

// InitRedisKeyPrefix initializes the Redis key prefix from config
func InitRedisKeyPrefix(prefix string) {
	if prefix != "" {
		redisKeyPrefix = prefix
	}
}

// GetRedisKeyPrefix returns the current Redis key prefix
func GetRedisKeyPrefix() string {
	return redisKeyPrefix
}

// Redis key getters with prefix
func RedisKeyToken() string  { return redisKeyPrefix + redisKeyToken }
func RedisKeyBuffer() string { return redisKeyPrefix + redisKeyBuffer }
