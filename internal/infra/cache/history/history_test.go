package history

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis эмулирует список Redis в памяти
type fakeRedis struct {
	lists   map[string][]string
	expires map[string]time.Duration
	pushErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{lists: map[string][]string{}, expires: map[string]time.Duration{}}
}

func (f *fakeRedis) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.pushErr != nil {
		return redis.NewIntResult(0, f.pushErr)
	}
	for _, v := range values {
		f.lists[key] = append([]string{string(v.([]byte))}, f.lists[key]...)
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

func (f *fakeRedis) LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd {
	list := f.lists[key]
	if int(stop)+1 < len(list) {
		f.lists[key] = list[start : stop+1]
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	list := f.lists[key]
	if int(stop)+1 < len(list) {
		list = list[start : stop+1]
	}
	return redis.NewStringSliceResult(list, nil)
}

func entry(id int64) Entry {
	return Entry{
		BookingID: id,
		VenueName: "Main Hall",
		EventDate: "10 Jun 2025",
		Duration:  "9:00 AM - 10:00 AM",
		Guests:    "40 pax",
		BookedBy:  "You",
		Status:    "pending",
	}
}

func TestRedisStore_AppendTrimsAndExpires(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisStore(client, 2, time.Hour)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, store.Append(ctx, 3, entry(id)))
	}

	entries, err := store.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].BookingID)
	assert.Equal(t, int64(2), entries[1].BookingID)
	assert.Equal(t, time.Hour, client.expires["venue-bookings:history:3"])

	other, err := store.List(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRedisStore_SkipsCorruptEntries(t *testing.T) {
	client := newFakeRedis()
	payload, _ := json.Marshal(entry(5))
	client.lists["venue-bookings:history:3"] = []string{"garbage", string(payload)}

	entries, err := NewRedisStore(client, 10, 0).List(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "40 pax", entries[0].Guests)
}

func TestRedisStore_Error(t *testing.T) {
	client := newFakeRedis()
	client.pushErr = errors.New("READONLY")

	err := NewRedisStore(client, 10, 0).Append(context.Background(), 3, entry(1))

	assert.ErrorIs(t, err, ErrStore)
	assert.Empty(t, client.expires)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, store.Append(ctx, 3, entry(id)))
	}

	entries, err := store.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].BookingID)

	entries[0].Status = "changed"
	again, _ := store.List(ctx, 3)
	assert.Equal(t, "pending", again[0].Status)
}
