package services

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore keeps one pending password reset code per email.
type OTPStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Verify(ctx context.Context, email, code string, maxAttempts int) error
}

type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func otpKey(email string) string {
	return "otp:" + strings.ToLower(strings.TrimSpace(email))
}

// Save replaces any pending code for email and resets its attempt counter.
func (s *RedisOTPStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	key := otpKey(email)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "code", code, "attempts", 0)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// verifyOTPScript counts the attempt before comparing, so concurrent
// guesses cannot all see a fresh counter. A match or the last allowed miss
// removes the code.
//
// Returns 0 when no code is pending, 1 on a match, 2 on a miss and -1 when
// the attempt limit was reached.
var verifyOTPScript = redis.NewScript(`
local code = redis.call("HGET", KEYS[1], "code")
if not code then
	return 0
end
local attempts = redis.call("HINCRBY", KEYS[1], "attempts", 1)
local limit = tonumber(ARGV[2])
if attempts > limit then
	redis.call("DEL", KEYS[1])
	return -1
end
if code == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
if attempts >= limit then
	redis.call("DEL", KEYS[1])
	return -1
end
return 2
`)

// Verify checks and consumes code. A match deletes the pending code, so it
// is accepted once. A miss counts as an attempt; the maxAttempts-th attempt
// discards the pending code.
func (s *RedisOTPStore) Verify(ctx context.Context, email, code string, maxAttempts int) error {
	result, err := verifyOTPScript.Run(ctx, s.client, []string{otpKey(email)}, code, maxAttempts).Int()
	if err != nil {
		return err
	}
	switch result {
	case 0:
		return ErrOTPNotFound
	case 1:
		return nil
	case -1:
		return ErrOTPTooManyTries
	default:
		return ErrOTPInvalid
	}
}
