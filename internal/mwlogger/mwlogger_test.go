package mwlogger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func TestNewMWLogger(t *testing.T) {
	tests := []struct {
		name   string
		reqID  string
		status int
	}{
		{name: "generated id", status: http.StatusCreated},
		{name: "propagated id", reqID: "req-42", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inCtx bool
			h := NewMWLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, inCtx = r.Context().Value(loggerWithRequestID{}).(zlog.Zerolog)
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/brands", nil)
			if tt.reqID != "" {
				req.Header.Set(RequestIDHeader, tt.reqID)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			require.NotEmpty(t, w.Header().Get(RequestIDHeader))
			if tt.reqID != "" {
				require.Equal(t, tt.reqID, w.Header().Get(RequestIDHeader))
			}
			require.True(t, inCtx)
		})
	}
}
