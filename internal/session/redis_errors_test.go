package session

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Transport failures must surface as plain errors, never as ErrMissing or
// ErrCorrupt, so callers do not send a customer back to the start because
// Redis blipped.
func TestRedisStore_TransportErrors(t *testing.T) {
	t.Parallel()

	errDown := errors.New("connection reset")

	tests := []struct {
		name   string
		expect func(m redismock.ClientMock)
		call   func(s *RedisStore) error
	}{
		{
			name: "load",
			expect: func(m redismock.ClientMock) {
				m.ExpectGet(valuationKey("s1")).SetErr(errDown)
			},
			call: func(s *RedisStore) error {
				_, err := s.Load(context.Background(), "s1")
				return err
			},
		},
		{
			name: "set verified",
			expect: func(m redismock.ClientMock) {
				m.ExpectExists(valuationKey("s1")).SetErr(errDown)
			},
			call: func(s *RedisStore) error {
				return s.SetVerified(context.Background(), "s1")
			},
		},
		{
			name: "verified",
			expect: func(m redismock.ClientMock) {
				m.ExpectGet(verifiedKey("s1")).SetErr(errDown)
			},
			call: func(s *RedisStore) error {
				_, err := s.Verified(context.Background(), "s1")
				return err
			},
		},
		{
			name: "delete",
			expect: func(m redismock.ClientMock) {
				m.ExpectDel(valuationKey("s1"), verifiedKey("s1")).SetErr(errDown)
			},
			call: func(s *RedisStore) error {
				return s.Delete(context.Background(), "s1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			tt.expect(mock)

			err := tt.call(NewRedisStore(rdb))
			require.Error(t, err)
			assert.ErrorIs(t, err, errDown)
			assert.NotErrorIs(t, err, ErrMissing)
			assert.NotErrorIs(t, err, ErrCorrupt)
			assert.Contains(t, err.Error(), "s1")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisStore_SetVerifiedMissingSession(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectExists(valuationKey("gone")).SetVal(0)

	err := NewRedisStore(rdb).SetVerified(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}
