package netx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 100)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		b, err := GetBytes(ctx, ts.Client(), ts.URL+"/ok", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != "hello" {
			t.Fatalf("unexpected body: %q", b)
		}
	})

	t.Run("status error", func(t *testing.T) {
		_, err := GetBytes(ctx, ts.Client(), ts.URL+"/missing", 0)
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if se.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", se.Code)
		}
	})

	t.Run("limit exceeded", func(t *testing.T) {
		if _, err := GetBytes(ctx, ts.Client(), ts.URL+"/big", 10); err == nil {
			t.Fatalf("expected error for oversized body")
		}
	})

	t.Run("limit exactly met", func(t *testing.T) {
		b, err := GetBytes(ctx, ts.Client(), ts.URL+"/big", 100)
		if err != nil || len(b) != 100 {
			t.Fatalf("expected 100 bytes, got %d (%v)", len(b), err)
		}
	})

	t.Run("bad url", func(t *testing.T) {
		if _, err := GetBytes(ctx, ts.Client(), "://nope", 0); err == nil {
			t.Fatalf("expected error for malformed url")
		}
	})
}
