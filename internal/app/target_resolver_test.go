package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

func TestTargetResolver_ResolveImageURL(t *testing.T) {
	tests := []struct {
		name      string
		signer    *mockSigner
		ref       string
		want      string
		wantCalls int
	}{
		{
			name:      "direct https url passes through",
			signer:    &mockSigner{},
			ref:       "https://cdn.example.com/a.jpg",
			want:      "https://cdn.example.com/a.jpg",
			wantCalls: 0,
		},
		{
			name:      "internal path is signed",
			signer:    &mockSigner{},
			ref:       "captures/a.jpg",
			want:      "https://storage.example.com/signed/captures/a.jpg?token=t",
			wantCalls: 1,
		},
		{
			name:      "signing failure falls back",
			signer:    &mockSigner{err: errors.New("403")},
			ref:       "captures/a.jpg",
			want:      "captures/a.jpg",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTargetResolver(tt.signer, testBadgeBase, 15*time.Minute, zap.NewNop())

			got := r.ResolveImageURL(context.Background(), tt.ref)
			if got != tt.want {
				t.Errorf("ResolveImageURL = %q, want %q", got, tt.want)
			}
			if len(tt.signer.calls) != tt.wantCalls {
				t.Errorf("signer calls = %d, want %d", len(tt.signer.calls), tt.wantCalls)
			}
		})
	}
}

func TestTargetResolver_NilSignerPassesThrough(t *testing.T) {
	r := NewTargetResolver(nil, testBadgeBase, time.Minute, zap.NewNop())

	if got := r.ResolveImageURL(context.Background(), "captures/b.jpg"); got != "captures/b.jpg" {
		t.Errorf("expected raw reference, got %q", got)
	}
}

func TestTargetResolver_FallbackIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewTargetResolver(&mockSigner{err: errors.New("timeout")}, testBadgeBase, time.Minute, zap.New(core))

	r.ResolveImageURL(context.Background(), "captures/c.jpg")

	entries := logs.FilterMessage("signed url resolution failed, using raw reference").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if entries[0].ContextMap()["path"] != "captures/c.jpg" {
		t.Errorf("expected path field, got %v", entries[0].ContextMap())
	}
}

func TestTargetResolver_Resolve(t *testing.T) {
	r := NewTargetResolver(&mockSigner{}, testBadgeBase+"/generator", time.Minute, zap.NewNop())

	got, err := r.Resolve(context.Background(), &secondary.PhotoRecord{
		ID:       "p1",
		ImageRef: "https://cdn.example.com/p1.jpg",
		Name:     "Grace Hopper",
		Role:     "Speaker",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := testBadgeBase + "/generator/?photo=https%3A%2F%2Fcdn.example.com%2Fp1.jpg&name=Grace%20Hopper&role=Speaker"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestTargetResolver_InvalidBase(t *testing.T) {
	r := NewTargetResolver(nil, "", time.Minute, zap.NewNop())

	if _, err := r.Resolve(context.Background(), &secondary.PhotoRecord{ID: "p1", ImageRef: "https://x/y.jpg"}); err == nil {
		t.Fatal("expected error for empty badge base URL")
	}
}
