package poll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sig-0/iq"
)

var (
	errInvalidJob      = errors.New("invalid job")
	errInvalidInterval = errors.New("invalid interval")
)

// Scheduler is the main cycle runner for registered poll jobs.
// A failed cycle is logged and retried; it never stops the loop
type Scheduler struct {
	logger *slog.Logger

	registeredJobs sync.Map

	q             iq.Queue[scheduledJob]
	queryInterval time.Duration
	retryInterval time.Duration
	qMux          sync.Mutex
}

// New creates a new Scheduler instance
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		q:             iq.NewQueue[scheduledJob](),
		queryInterval: time.Second,      // every second
		retryInterval: time.Second * 10, // failed cycles retry soon
	}

	// Apply the options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register registers a new job with the scheduler.
// The job is immediately queued up for execution
func (s *Scheduler) Register(j Job) error {
	if j == nil || j.Name() == "" {
		return errInvalidJob
	}

	if j.Interval() <= 0 {
		return errInvalidInterval
	}

	// Register the job
	id := xid.New()
	s.registeredJobs.Store(id, j)

	s.logger.Info(
		"registered new job",
		"name", j.Name(),
	)

	// Schedule the first run
	s.scheduleRun(
		time.Now().UTC(),
		id,
		j,
	)

	return nil
}

// Start starts the job scheduling service loop [BLOCKING]
func (s *Scheduler) Start(ctx context.Context) error {
	collectorCh := make(chan *workerResponse, 100)

	// Start a listener for monitoring jobs
	ticker := time.NewTicker(s.queryInterval)
	defer ticker.Stop()

	// handleDue spawns all runs that are executable (due)
	handleDue := func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				nextSJ := s.nextRun()
				if nextSJ == nil {
					return // nothing to schedule anymore
				}

				s.logger.Info(
					"starting job cycle",
					"name", nextSJ.job.Name(),
				)

				// Spawn worker
				info := &workerInfo{
					job:   nextSJ.job,
					jobID: nextSJ.jobID,
					resCh: collectorCh,
				}

				go handleJob(ctx, info)
			}
		}
	}

	// Initialize the first set of due runs (on boot)
	handleDue()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler service shut down")
			close(collectorCh)

			return nil
		case <-ticker.C:
			handleDue()
		case response := <-collectorCh:
			now := time.Now().UTC()

			jobRaw, ok := s.registeredJobs.Load(response.jobID)

			if !ok {
				s.logger.Error(
					"unable to load registered job",
					"id", response.jobID.String(),
				)

				continue
			}

			job, _ := jobRaw.(Job)

			if response.error != nil {
				s.logger.Error(
					"error encountered during job cycle",
					"name", job.Name(),
					"err", response.error.Error(),
				)

				// Retry the cycle soon
				s.scheduleRun(
					now.Add(s.retryInterval),
					response.jobID,
					job,
				)

				continue
			}

			s.logger.Info(
				"job cycle completed",
				"name", job.Name(),
			)

			// Schedule the next regular cycle
			s.scheduleRun(
				now.Add(job.Interval()),
				response.jobID,
				job,
			)
		}
	}
}

// scheduleRun schedules a new job run
func (s *Scheduler) scheduleRun(
	at time.Time,
	jobID xid.ID,
	job Job,
) {
	s.qMux.Lock()
	defer s.qMux.Unlock()

	futureSJ := scheduledJob{
		at:    at,
		jobID: jobID,
		job:   job,
	}

	s.q.Push(futureSJ)
}

// nextRun fetches the next due job run, as of the moment of calling
func (s *Scheduler) nextRun() *scheduledJob {
	s.qMux.Lock()
	defer s.qMux.Unlock()

	now := time.Now().UTC()

	// Check if anything needs to be scheduled
	if s.q.Len() == 0 {
		return nil // nothing to schedule, all jobs are running
	}

	// Check if the top element is due
	if s.q.Index(0).at.After(now) {
		return nil // nothing to schedule, latest run is in the future
	}

	// Grab the next run
	nextSJ := s.q.PopFront()

	return nextSJ
}
