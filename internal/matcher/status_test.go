package matcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		expected ModelStatus
		wantErr  bool
	}{
		{
			name:     "ready",
			code:     http.StatusOK,
			body:     `{"status": "ready"}`,
			expected: StatusReady,
		},
		{
			name:     "training",
			code:     http.StatusOK,
			body:     `{"status": "training"}`,
			expected: StatusTraining,
		},
		{
			name:     "unrecognized status is not an error",
			code:     http.StatusOK,
			body:     `{"status": "loading"}`,
			expected: StatusUnknown,
		},
		{
			name:     "missing status field",
			code:     http.StatusOK,
			body:     `{}`,
			expected: StatusUnknown,
		},
		{
			name:    "server error",
			code:    http.StatusInternalServerError,
			body:    "boom",
			wantErr: true,
		},
		{
			name:    "malformed body",
			code:    http.StatusOK,
			body:    "not json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != statusPath {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := New(context.Background(), zap.NewNop(), srv.URL, "")

			status, err := client.GetStatus()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got status %s", status)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status != tt.expected {
				t.Fatalf("expected status %s, got %s", tt.expected, status)
			}
		})
	}
}

func TestGetStatusGzipResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The client must only advertise encodings it can decode.
		if got := r.Header.Get("Accept-Encoding"); got != "gzip" {
			t.Errorf("unexpected accept-encoding: %q", got)
		}

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		gz.Write([]byte(`{"status": "ready"}`))
		gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	client := New(context.Background(), zap.NewNop(), srv.URL, "")

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusReady {
		t.Fatalf("expected ready, got %s", status)
	}
}

func TestGetStatusNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := New(context.Background(), zap.NewNop(), srv.URL, "")

	if _, err := client.GetStatus(); err == nil {
		t.Fatalf("expected error for unreachable server")
	}
}
