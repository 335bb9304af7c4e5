package cache

import (
	"context"
	"time"

	"mobiletoilet/internal/utils"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short lived Redis locks keyed by name.
type Locker struct {
	Client *redis.Client
	TTL    time.Duration
}

func (l Locker) ttl() time.Duration {
	if l.TTL > 0 {
		return l.TTL
	}
	return 30 * time.Second
}

// Acquire takes the lock. ok is false when another holder has it.
// The returned release func is a no-op when ok is false.
func (l Locker) Acquire(ctx context.Context, key string) (release func(), ok bool, err error) {
	token := utils.NewID()
	ok, err = l.Client.SetNX(ctx, "lock:"+key, token, l.ttl()).Result()
	if err != nil || !ok {
		return func() {}, false, err
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.Client, []string{"lock:" + key}, token).Err()
	}, true, nil
}
