// Package maintenance schedules periodic database housekeeping.
package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultSchedule runs maintenance once a day at midnight
const DefaultSchedule = "@daily"

// Optimizer is the database operation run on schedule. *database.DB satisfies it.
type Optimizer interface {
	Optimize(ctx context.Context) error
}

// Status is a snapshot of the manager state
type Status struct {
	Running   bool       `json:"running"`
	Schedule  string     `json:"schedule"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
}

// Manager runs Optimize on a cron schedule
type Manager struct {
	db          Optimizer
	schedule    string
	timeout     time.Duration
	cron        *cron.Cron
	cronEntryID cron.EntryID

	mu        sync.RWMutex
	running   bool
	busy      bool
	lastRun   time.Time
	lastError error
}

// NewManager creates a manager. An empty schedule disables scheduled runs.
func NewManager(db Optimizer, schedule string) *Manager {
	return &Manager{
		db:       db,
		schedule: schedule,
		timeout:  10 * time.Minute,
		cron:     cron.New(),
	}
}

// Start starts the scheduler
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	if m.schedule != "" {
		id, err := m.cron.AddFunc(m.schedule, m.scheduledRun)
		if err != nil {
			return fmt.Errorf("invalid maintenance schedule %q: %w", m.schedule, err)
		}
		m.cronEntryID = id
	}

	m.cron.Start()
	m.running = true

	log.Info().
		Str("schedule", m.schedule).
		Bool("enabled", m.cronEntryID != 0).
		Msg("Maintenance scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Maintenance scheduler stopped")
}

// RunNow runs maintenance immediately. Concurrent runs are skipped.
func (m *Manager) RunNow(ctx context.Context) error {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		log.Debug().Msg("Maintenance already in progress, skipping")
		return nil
	}
	m.busy = true
	m.mu.Unlock()

	start := time.Now()
	err := m.db.Optimize(ctx)

	m.mu.Lock()
	m.busy = false
	m.lastRun = start
	m.lastError = err
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("database maintenance failed: %w", err)
	}
	log.Info().Dur("duration", time.Since(start)).Msg("Database maintenance complete")
	return nil
}

// Status returns the current manager status
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := Status{
		Running:  m.running,
		Schedule: m.schedule,
	}
	if !m.lastRun.IsZero() {
		last := m.lastRun
		status.LastRun = &last
	}
	if m.lastError != nil {
		status.LastError = m.lastError.Error()
	}
	if m.cronEntryID != 0 {
		if next := m.cron.Entry(m.cronEntryID).Next; !next.IsZero() {
			status.NextRun = &next
		}
	}
	return status
}

// scheduledRun is called by cron
func (m *Manager) scheduledRun() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	if err := m.RunNow(ctx); err != nil {
		log.Error().Err(err).Msg("Scheduled maintenance failed")
	}
}
