// internal/services/generation/redis_store.go
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	stderrors "formflow/internal/common/errors"
	"formflow/internal/models"
)

// RedisFormStore persists forms as JSON under form:<id> and tracks each
// user's form ids in the set forms:user:<userId>. Redis single-key
// operations give the per-key linearization the store contract requires.
type RedisFormStore struct {
	client *redis.Client
}

func NewRedisFormStore(client *redis.Client) *RedisFormStore {
	return &RedisFormStore{client: client}
}

func formKey(formID string) string { return "form:" + formID }
func userKey(userID string) string { return "forms:user:" + userID }

func (s *RedisFormStore) Save(ctx context.Context, form *models.GeneratedForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return stderrors.NewFormStoreFailedError(fmt.Errorf("marshal form: %w", err))
	}

	if err := s.client.Set(ctx, formKey(form.FormID), data, 0).Err(); err != nil {
		return stderrors.NewFormStoreFailedError(err)
	}
	if form.UserID != "" {
		if err := s.client.SAdd(ctx, userKey(form.UserID), form.FormID).Err(); err != nil {
			return stderrors.NewFormStoreFailedError(err)
		}
	}
	return nil
}

func (s *RedisFormStore) Get(ctx context.Context, formID string) (*models.GeneratedForm, error) {
	data, err := s.client.Get(ctx, formKey(formID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, stderrors.NewFormNotFoundError(formID)
	}
	if err != nil {
		return nil, stderrors.NewFormStoreFailedError(err)
	}

	var form models.GeneratedForm
	if err := json.Unmarshal([]byte(data), &form); err != nil {
		return nil, stderrors.NewFormStoreFailedError(fmt.Errorf("unmarshal form: %w", err))
	}
	return &form, nil
}

func (s *RedisFormStore) Delete(ctx context.Context, formID string) (bool, error) {
	form, err := s.Get(ctx, formID)
	if err != nil {
		if stdErr, ok := err.(*stderrors.StandardError); ok && stderrors.IsNotFound(stdErr.Code) {
			return false, nil
		}
		return false, err
	}

	if err := s.client.Del(ctx, formKey(formID)).Err(); err != nil {
		return false, stderrors.NewFormStoreFailedError(err)
	}
	if form.UserID != "" {
		if err := s.client.SRem(ctx, userKey(form.UserID), formID).Err(); err != nil {
			return false, stderrors.NewFormStoreFailedError(err)
		}
	}
	return true, nil
}

func (s *RedisFormStore) ListByUser(ctx context.Context, userID string) ([]*models.GeneratedForm, error) {
	ids, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, stderrors.NewFormStoreFailedError(err)
	}

	var result []*models.GeneratedForm
	for _, id := range ids {
		form, err := s.Get(ctx, id)
		if err != nil {
			// A stale set entry for a deleted form is skipped, not fatal.
			if stdErr, ok := err.(*stderrors.StandardError); ok && stderrors.IsNotFound(stdErr.Code) {
				continue
			}
			return nil, err
		}
		result = append(result, form)
	}
	return result, nil
}
