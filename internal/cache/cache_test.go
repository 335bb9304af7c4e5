package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

type countingSource struct {
	calls   int
	tenants []models.Tenant
	err     error
}

func (s *countingSource) List(ctx context.Context) ([]models.Tenant, error) {
	s.calls++
	return s.tenants, s.err
}

func TestTenantCacheLoadsOnce(t *testing.T) {
	_, client := newClient(t)
	src := &countingSource{tenants: []models.Tenant{{Code: "pg.citya", Name: "City A"}, {Code: "pg.cityb"}}}
	c := TenantCache{Client: client, Source: src}

	for i := 0; i < 3; i++ {
		tenant, ok, err := c.Find(context.Background(), "pg.citya")
		if err != nil || !ok {
			t.Fatalf("Find: ok=%v err=%v", ok, err)
		}
		if tenant.Name != "City A" {
			t.Fatalf("unexpected tenant %+v", tenant)
		}
	}
	if src.calls != 1 {
		t.Fatalf("expected source to be hit once, got %d", src.calls)
	}
}

func TestTenantCacheWithoutRedis(t *testing.T) {
	src := &countingSource{err: errors.New("db down")}
	_, _, err := TenantCache{Source: src}.Find(context.Background(), "pg.citya")
	if err == nil {
		t.Fatalf("expected source error to surface")
	}
}

func TestSessionExportRoundTrip(t *testing.T) {
	srv, client := newClient(t)
	s := SessionStore{Client: client, TTL: time.Minute}

	if err := s.ExportBooking(context.Background(), "01HV5ZK3W8Q2", models.Booking{BookingNo: "MT-001"}); err != nil {
		t.Fatalf("ExportBooking: %v", err)
	}
	raw, err := srv.Get("mt:session:01HV5ZK3W8Q2")
	if err != nil {
		t.Fatalf("expected key mt:session:01HV5ZK3W8Q2: %v", err)
	}
	var b models.Booking
	if err := json.Unmarshal([]byte(raw), &b); err != nil || b.BookingNo != "MT-001" {
		t.Fatalf("unexpected snapshot %s err=%v", raw, err)
	}
	if ttl := srv.TTL("mt:session:01HV5ZK3W8Q2"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestSessionExportRejectsBadIDs(t *testing.T) {
	srv, client := newClient(t)
	s := SessionStore{Client: client}

	for _, id := range []string{" ", "short", "../tenants", "a:b:c:d:e:f", strings.Repeat("x", 129)} {
		if err := s.ExportBooking(context.Background(), id, models.Booking{}); !domain.IsValidation(err) {
			t.Fatalf("id %q: expected validation error, got %v", id, err)
		}
	}
	if keys := srv.Keys(); len(keys) != 0 {
		t.Fatalf("rejected ids must not write, got %v", keys)
	}
}

func TestSessionExportDoesNotTouchTenantCache(t *testing.T) {
	_, client := newClient(t)
	src := &countingSource{tenants: []models.Tenant{{Code: "pg.citya", Name: "City A"}}}
	tenants := TenantCache{Client: client, Source: src}
	sessions := SessionStore{Client: client}

	if _, err := tenants.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := sessions.ExportBooking(context.Background(), "tenants", models.Booking{BookingNo: "MT-001"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short id, got %v", err)
	}
	if err := sessions.ExportBooking(context.Background(), "tenants-session", models.Booking{BookingNo: "MT-001"}); err != nil {
		t.Fatalf("ExportBooking: %v", err)
	}

	tenant, ok, err := tenants.Find(context.Background(), "pg.citya")
	if err != nil || !ok || tenant.Name != "City A" {
		t.Fatalf("tenant cache damaged: %+v ok=%v err=%v", tenant, ok, err)
	}
	if src.calls != 1 {
		t.Fatalf("expected the cached tenant list to survive, source loads=%d", src.calls)
	}
}

func TestLockerExclusive(t *testing.T) {
	_, client := newClient(t)
	l := Locker{Client: client}

	release, ok, err := l.Acquire(context.Background(), "receipt:MT-001")
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := l.Acquire(context.Background(), "receipt:MT-001"); ok {
		t.Fatalf("second acquire should fail while held")
	}
	release()
	release2, ok, err := l.Acquire(context.Background(), "receipt:MT-001")
	if err != nil || !ok {
		t.Fatalf("acquire after release: ok=%v err=%v", ok, err)
	}
	release2()
}
