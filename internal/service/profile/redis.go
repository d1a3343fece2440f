package profile

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-redis/redis/v8"
)

const (
	profileKeyPrefix = "profile:"
	emailKeyPrefix   = "profile:email:"
	upsertRetries    = 5
)

// redisProfile is the JSON document stored per username.
type redisProfile struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Mode        string `json:"mode"`
	Message     string `json:"message"`
	CanActivate bool   `json:"canActivate"`
}

func toRedisProfile(p Profile) redisProfile {
	return redisProfile(p)
}

func (rp redisProfile) toProfile() Profile {
	return Profile(rp)
}

// RedisStore implements Service on Redis. Profiles live as JSON documents
// keyed by username; a set per email indexes usernames for ActivateByEmail.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed store. The caller owns the client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func profileKey(username string) string {
	return profileKeyPrefix + username
}

func emailKey(email string) string {
	return emailKeyPrefix + email
}

// Upsert runs as an optimistic WATCH transaction so a concurrent writer on
// the same username triggers a retry instead of a lost update.
func (s *RedisStore) Upsert(ctx context.Context, username string, params UpsertParams) (*Profile, error) {
	key := NormalizeUsername(username)
	if key == "" {
		return nil, ErrUsernameRequired
	}

	var result Profile
	txn := func(tx *redis.Tx) error {
		prev, err := s.load(ctx, tx, profileKey(key))
		if err != nil {
			return err
		}

		result = merge(prev, key, params)
		data, err := json.Marshal(toRedisProfile(result))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, profileKey(key), data, 0)
			if prev != nil && prev.Email != "" && prev.Email != result.Email {
				pipe.SRem(ctx, emailKey(prev.Email), key)
			}
			if result.Email != "" {
				pipe.SAdd(ctx, emailKey(result.Email), key)
			}
			return nil
		})
		return err
	}

	var err error
	for range upsertRetries {
		err = s.rdb.Watch(ctx, txn, profileKey(key))
		if err != redis.TxFailedErr {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *RedisStore) Get(ctx context.Context, username string) (*Profile, error) {
	key := NormalizeUsername(username)
	p, err := s.load(ctx, s.rdb, profileKey(key))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *RedisStore) ActivateByEmail(ctx context.Context, email string) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return 0, nil
	}

	usernames, err := s.rdb.SMembers(ctx, emailKey(email)).Result()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, username := range usernames {
		p, err := s.load(ctx, s.rdb, profileKey(username))
		if err != nil {
			return count, err
		}
		if p == nil || p.Email != email {
			// Stale index entry; the profile moved to another email.
			s.rdb.SRem(ctx, emailKey(email), username)
			continue
		}
		p.CanActivate = true
		data, err := json.Marshal(toRedisProfile(*p))
		if err != nil {
			return count, err
		}
		if err := s.rdb.Set(ctx, profileKey(username), data, 0).Err(); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *RedisStore) load(ctx context.Context, c redis.Cmdable, key string) (*Profile, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rp redisProfile
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	p := rp.toProfile()
	return &p, nil
}

// Compile-time interface check
var _ Service = (*RedisStore)(nil)
