package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/pkg/constant"
	"github.com/redis/go-redis/v9"
)

// BufferRepo stores the realtime buffer as one JSON blob in Redis. Every
// mutation is a whole-buffer read/merge/write, so concurrent writers resolve
// last-write-wins; acceptable for a best-effort relay that full sync always
// catches up with.
type BufferRepo struct {
	rdb *redis.Client
}

// NewBufferRepo creates a new BufferRepo
func NewBufferRepo(rdb *redis.Client) *BufferRepo {
	return &BufferRepo{rdb: rdb}
}

func (r *BufferRepo) bufferKey(accountId string) string {
	return fmt.Sprintf(constant.RedisKeyBuffer(), accountId)
}

// Load reads the whole buffer, newest first. Any read or decode failure
// yields an empty buffer: the buffer is never a source of truth.
func (r *BufferRepo) Load(ctx context.Context, accountId string) ([]*entity.RealtimeEntry, error) {
	data, err := r.rdb.Get(ctx, r.bufferKey(accountId)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []*entity.RealtimeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Store replaces the whole buffer
func (r *BufferRepo) Store(ctx context.Context, accountId string, entries []*entity.RealtimeEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode buffer: %w", err)
	}
	return r.rdb.Set(ctx, r.bufferKey(accountId), data, 0).Err()
}
