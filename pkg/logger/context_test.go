package logger

import (
	"context"
	"testing"
)

func TestContextKeys(t *testing.T) {
	ctx := context.Background()

	ctx = WithCorrelationID(ctx, "corr-1")
	if got := GetCorrelationID(ctx); got != "corr-1" {
		t.Errorf("GetCorrelationID() = %q, want %q", got, "corr-1")
	}

	ctx = WithUserID(ctx, "u-9")
	if got := GetUserID(ctx); got != "u-9" {
		t.Errorf("GetUserID() = %q, want %q", got, "u-9")
	}

	ctx = WithTenantID(ctx, "acme")
	if got := GetTenantID(ctx); got != "acme" {
		t.Errorf("GetTenantID() = %q, want %q", got, "acme")
	}
}

func TestGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()
	if GetCorrelationID(ctx) != "" || GetUserID(ctx) != "" || GetTenantID(ctx) != "" {
		t.Error("getters should return empty strings for an empty context")
	}
}

func TestEnsureCorrelationID(t *testing.T) {
	ctx, id := EnsureCorrelationID(context.Background())
	if id == "" {
		t.Fatal("EnsureCorrelationID should generate an ID")
	}
	if got := GetCorrelationID(ctx); got != id {
		t.Errorf("context carries %q, want %q", got, id)
	}

	// Existing IDs are preserved.
	ctx2, id2 := EnsureCorrelationID(ctx)
	if id2 != id {
		t.Errorf("EnsureCorrelationID regenerated: %q != %q", id2, id)
	}
	if ctx2 != ctx {
		t.Error("context should be returned unchanged when an ID exists")
	}
}

func TestContextFields(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want int
	}{
		{name: "empty", ctx: context.Background(), want: 0},
		{name: "correlation only", ctx: WithCorrelationID(context.Background(), "c"), want: 1},
		{
			name: "all three",
			ctx:  WithTenantID(WithUserID(WithCorrelationID(context.Background(), "c"), "u"), "t"),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contextFields(tt.ctx)
			if len(got) != tt.want {
				t.Errorf("contextFields() = %v, want %d fields", got, tt.want)
			}
		})
	}
}
