package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-redis/redis/v8"
)

const (
	// CompletionTTL bounds how long completion flags for a single day are kept.
	CompletionTTL = 35 * 24 * time.Hour

	dietKeyPrefix    = "plans:diet"
	workoutKeyPrefix = "plans:workout"
)

// toggleScript removes id from the set when present, otherwise adds it and refreshes the TTL.
// Returns 1 when id is a member afterwards.
var toggleScript = redis.NewScript(`
if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 1 then
	redis.call('SREM', KEYS[1], ARGV[1])
	return 0
end
redis.call('SADD', KEYS[1], ARGV[1])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return 1
`)

// RedisStore keeps completion flags as Redis sets, one set per user, plan and day.
type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func DietKey(userID int, dietType DietType, day time.Time) string {
	return fmt.Sprintf("%s:%d:%s:%s", dietKeyPrefix, userID, dietType, day.Format(pkg.DayLayout))
}

func WorkoutKey(userID int, workoutType WorkoutType, day time.Time) string {
	return fmt.Sprintf("%s:%d:%s:%s", workoutKeyPrefix, userID, workoutType, day.Format(pkg.DayLayout))
}

// Completed returns the ids stored under the key.
func (s *RedisStore) Completed(ctx context.Context, key string) (_ map[string]bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.plans.completed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ids, err := s.redisClient.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", key, err)
	}

	completed := make(map[string]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

// Toggle flips the membership of id in the key's set and returns whether it is now a member.
func (s *RedisStore) Toggle(ctx context.Context, key, id string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.plans.toggle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	member, err := toggleScript.Run(ctx, s.redisClient, []string{key}, id, s.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", key, err)
	}
	return member == 1, nil
}
