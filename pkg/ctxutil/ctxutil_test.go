package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithRunID_And_RunIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithRunID(context.Background(), id)

	got, ok := RunIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestRunIDFromCtx_Missing(t *testing.T) {
	t.Parallel()

	for name, ctx := range map[string]context.Context{
		"empty":      context.Background(),
		"nil uuid":   WithRunID(context.Background(), uuid.Nil),
		"wrong type": context.WithValue(context.Background(), ctxKey("run_id"), "not-a-uuid"),
	} {
		got, ok := RunIDFromCtx(ctx)
		if ok || got != uuid.Nil {
			t.Errorf("%s: got (%s, %v), want (nil, false)", name, got, ok)
		}
	}
}

func TestWithSource_And_SourceFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithSource(context.Background(), "cxokolad")
	if got := SourceFromCtx(ctx); got != "cxokolad" {
		t.Fatalf("expected cxokolad, got %s", got)
	}
	if got := SourceFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty source, got %s", got)
	}
}
