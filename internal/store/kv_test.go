package store

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func newSQLiteKV(t *testing.T) *GormKV {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.StoreEntry{}))
	return NewGormKV(db)
}

func TestKVBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) KV{
		"memory": func(t *testing.T) KV { return NewMemoryKV() },
		"sqlite": func(t *testing.T) KV { return newSQLiteKV(t) },
	}

	for name, newKV := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := newKV(t)

			_, found, err := kv.Get(ctx, "queue")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Set(ctx, "queue", []byte(`[1]`)))
			require.NoError(t, kv.Set(ctx, "queue", []byte(`[1,2]`)))

			v, found, err := kv.Get(ctx, "queue")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[1,2]`, string(v))

			require.NoError(t, kv.Delete(ctx, "queue"))
			_, found, err = kv.Get(ctx, "queue")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Delete(ctx, "never-set"))
		})
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	in := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", in))
	in[0] = 'x'

	out, _, _ := kv.Get(ctx, "k")
	assert.Equal(t, "abc", string(out))
}

func TestRedisKV_Get(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	kv := NewRedisKV(client, "")

	mock.ExpectGet("barberqueue:queue").SetVal(`[]`)
	mock.ExpectGet("barberqueue:barbers").RedisNil()
	mock.ExpectGet("barberqueue:services").SetErr(errors.New("connection refused"))

	v, found, err := kv.Get(ctx, "queue")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(v))

	_, found, err = kv.Get(ctx, "barbers")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = kv.Get(ctx, "services")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisKV_SetAndDelete(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	kv := NewRedisKV(client, "shop1:")

	mock.ExpectSet("shop1:nextQueueId", "4", 0).SetVal("OK")
	mock.ExpectDel("shop1:customerQueueId").SetVal(1)

	require.NoError(t, kv.Set(ctx, "nextQueueId", []byte("4")))
	require.NoError(t, kv.Delete(ctx, "customerQueueId"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_OverRedisSeedsAbsentKeysOnly(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	s := New(NewRedisKV(client, "t:"), Seed{NextQueueID: 1})

	mock.ExpectGet("t:barbers").SetVal(`[]`)
	mock.ExpectGet("t:services").SetVal(`[]`)
	mock.ExpectGet("t:queue").SetVal(`[]`)
	mock.ExpectGet("t:nextQueueId").RedisNil()
	mock.ExpectSet("t:nextQueueId", "1", 0).SetVal("OK")

	written, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyNextQueueID}, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}
