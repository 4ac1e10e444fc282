package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hashdoctor/telehealth-api/internal/api/metrics"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Processor handles one queued assistant reply job.
type Processor interface {
	Process(ctx context.Context, job ports.TriageJob) error
}

// Dispatcher routes assistant reply jobs to a fixed set of workers
// using consistent hashing on the conversation key, guaranteeing
// per-thread reply ordering.
type Dispatcher struct {
	workers   []chan ports.TriageJob
	processor Processor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor Processor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.TriageJob, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TriageJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its conversation.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.TriageJob) {
	idx := d.shardIndex(job.ConversationKey)
	d.workers[idx] <- job
	metrics.TriageQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a conversation key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TriageJob) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.TriageQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			start := time.Now()
			if err := d.processor.Process(ctx, job); err != nil {
				metrics.TriageRepliesTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("conversation", job.ConversationKey).
					Int("worker_id", id).
					Msg("assistant reply failed")
				continue
			}
			metrics.TriageRepliesTotal.WithLabelValues("ok").Inc()
			metrics.MessagesStoredTotal.WithLabelValues("assistant").Inc()
			metrics.TriageReplyDuration.Observe(time.Since(start).Seconds())
		}
	}
}
