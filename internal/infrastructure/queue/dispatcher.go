package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/streampass/video-platform/internal/api/metrics"
	"github.com/streampass/video-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ViewRecorder is the subset of the telemetry service the dispatcher drives.
type ViewRecorder interface {
	RecordView(ctx context.Context, event ports.ViewEventInput) error
}

// Dispatcher routes view events to a fixed set of workers using consistent
// hashing on the video id. Watch-page rendering enqueues and returns; the
// counter write happens off the request path. Hashing by video keeps all
// events for one video on one worker, so its counter updates stay ordered.
type Dispatcher struct {
	workers []chan ports.ViewEventInput
	service ViewRecorder
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ViewRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ViewEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ViewEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its video. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.ViewEventInput) {
	idx := d.shardIndex(event.VideoID)
	d.workers[idx] <- event
	metrics.TelemetryQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a video id deterministically to a worker index.
func (d *Dispatcher) shardIndex(videoID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(videoID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ViewEventInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.TelemetryQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.service.RecordView(ctx, event); err != nil {
				metrics.ViewRecordErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("video_id", event.VideoID).
					Int("worker_id", id).
					Msg("view recording failed")
				continue
			}
			metrics.ViewsRecordedTotal.Inc()
		}
	}
}
