package forge

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggingInterceptorSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	spy := &spyTransport{body: `[]`}
	client := NewClient(spy).WithUnaryInterceptor(LoggingInterceptor(logger))

	if _, err := client.Repos().Branches(context.Background(), "acme", "widget"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "request completed") {
		t.Errorf("expected completion log, got %q", out)
	}
	if !strings.Contains(out, "verb=GET") || !strings.Contains(out, "path=/repos/acme/widget/branches") {
		t.Errorf("expected verb and path logged, got %q", out)
	}
	if !strings.Contains(out, "status=200") {
		t.Errorf("expected status logged, got %q", out)
	}
}

func TestLoggingInterceptorFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	spy := &spyTransport{err: errors.New("connection reset")}
	client := NewClient(spy).WithUnaryInterceptor(LoggingInterceptor(logger))

	if _, err := client.Repos().Get(context.Background(), "acme", "widget"); err == nil {
		t.Fatal("expected error")
	}

	out := buf.String()
	if !strings.Contains(out, "request failed") {
		t.Errorf("expected failure log, got %q", out)
	}
	if !strings.Contains(out, "connection reset") {
		t.Errorf("expected error logged, got %q", out)
	}
}
