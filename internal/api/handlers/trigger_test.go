package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
)

type fakeRefresher struct {
	err    error
	called bool
}

func (f *fakeRefresher) RunStateRefresh(context.Context) error {
	f.called = true
	return f.err
}

func TestRefreshHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			wantStatus: http.StatusOK,
			wantBody:   "state refresh completed",
		},
		{
			name:       "store error",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "state refresh failed: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &fakeRefresher{err: tt.err}
			_, api := humatest.New(t)
			RegisterTriggerRoutes(api, NewRefreshHandler(r))

			resp := api.Post("/api/v1/system/refresh")

			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			assert.True(t, r.called)
		})
	}
}
