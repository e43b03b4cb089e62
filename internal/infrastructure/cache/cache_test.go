package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

func sampleRows() []model.AmortizationRow {
	return model.GenerateAmortizationSchedule(12_000_000, 12, 1)
}

func TestScheduleKey(t *testing.T) {
	assert.Equal(t, "schedule:120000000:8.5:1", ScheduleKey(120_000_000, 8.5, 1))
	assert.Equal(t, ScheduleKey(1e6, 10, 2), ScheduleKey(1_000_000, 10.0, 2))
	assert.NotEqual(t, ScheduleKey(1e6, 10, 2), ScheduleKey(1e6, 10, 3))
}

// ---------------------------------------------------------------------------
// Redis
// ---------------------------------------------------------------------------

func TestRedisScheduleCache_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisScheduleCache(db, time.Minute)

	mock.ExpectGet("loanmatch:k").RedisNil()

	rows, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisScheduleCache_SetThenHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisScheduleCache(db, 10*time.Minute)
	rows := sampleRows()
	payload, err := json.Marshal(rows)
	require.NoError(t, err)

	mock.ExpectSet("loanmatch:k", payload, 10*time.Minute).SetVal("OK")
	mock.ExpectGet("loanmatch:k").SetVal(string(payload))

	require.NoError(t, c.Set(context.Background(), "k", rows))
	got, ok, err := c.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rows, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisScheduleCache_Errors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisScheduleCache(db, time.Minute)

	mock.ExpectGet("loanmatch:down").SetErr(errors.New("connection refused"))
	_, ok, err := c.Get(context.Background(), "down")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "connection refused")

	mock.ExpectGet("loanmatch:garbage").SetVal("{not json")
	_, ok, err = c.Get(context.Background(), "garbage")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "decode cached schedule")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Ristretto
// ---------------------------------------------------------------------------

func TestMemoryScheduleCache_RoundTrip(t *testing.T) {
	c, err := NewMemoryScheduleCache(10_000, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	ctx := context.Background()
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	rows := sampleRows()
	require.NoError(t, c.Set(ctx, "k", rows))
	c.Wait()

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rows, got)
}

func TestMemoryScheduleCache_ReturnsCopies(t *testing.T) {
	c, err := NewMemoryScheduleCache(10_000, 0)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	ctx := context.Background()
	rows := sampleRows()
	require.NoError(t, c.Set(ctx, "k", rows))
	c.Wait()
	rows[0].Payment = -1

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	got[1].Payment = -1

	again, _, _ := c.Get(ctx, "k")
	assert.Positive(t, again[0].Payment)
	assert.Positive(t, again[1].Payment)
}
