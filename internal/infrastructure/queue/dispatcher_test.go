package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/streampass/video-platform/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events []ports.ViewEventInput
	done   chan struct{}
	want   int
}

func (s *recordingService) RecordView(_ context.Context, event ports.ViewEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}), want: 8}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	videos := []string{"v1", "v2", "v3", "v4"}
	for i := 0; i < 8; i++ {
		d.Enqueue(ports.ViewEventInput{VideoID: videos[i%len(videos)], ViewerKey: "k", Timestamp: time.Now()})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events, got %d", len(svc.events))
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.events) != 8 {
		t.Fatalf("expected 8 events, got %d", len(svc.events))
	}
}

func TestDispatcher_SameVideoSameWorker(t *testing.T) {
	d := NewDispatcher(4, &recordingService{done: make(chan struct{}), want: 0}, zerolog.Nop())

	first := d.shardIndex("video-abc")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("video-abc"); got != first {
			t.Fatalf("shard index must be deterministic, got %d then %d", first, got)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingService{done: make(chan struct{}), want: 0}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
