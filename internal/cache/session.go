package cache

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the last viewed booking per browser session.
type SessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// sessionKey keeps browser sessions in their own namespace, apart from shared
// cache entries such as the tenant list.
func sessionKey(sessionID string) string {
	return domain.SessionKeyMobileToilet + ":session:" + sessionID
}

func (s SessionStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return time.Hour
}

// ExportBooking overwrites the session snapshot with b.
func (s SessionStore) ExportBooking(ctx context.Context, sessionID string, b models.Booking) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.ValidationError{Field: "sessionId", Msg: "session id is required"}
	}
	if !sessionIDPattern.MatchString(sessionID) {
		return domain.ValidationError{Field: "sessionId", Msg: "session id must be 8-128 letters, digits, '-' or '_'"}
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionKey(sessionID), raw, s.ttl()).Err()
}
