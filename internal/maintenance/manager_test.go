package maintenance

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimx/universidades/internal/database"
)

type countingOptimizer struct {
	calls atomic.Int32
	err   error
}

func (c *countingOptimizer) Optimize(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestRunNow(t *testing.T) {
	opt := &countingOptimizer{}
	m := NewManager(opt, "")

	require.NoError(t, m.RunNow(context.Background()))
	assert.EqualValues(t, 1, opt.calls.Load())

	status := m.Status()
	require.NotNil(t, status.LastRun)
	assert.Empty(t, status.LastError)
	assert.Nil(t, status.NextRun)
}

func TestRunNowRecordsFailure(t *testing.T) {
	opt := &countingOptimizer{err: errors.New("database is locked")}
	m := NewManager(opt, "")

	err := m.RunNow(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, opt.err)
	assert.Equal(t, "database is locked", m.Status().LastError)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	m := NewManager(&countingOptimizer{}, "every tuesday")

	assert.Error(t, m.Start())
	assert.False(t, m.Status().Running)
}

func TestScheduledRun(t *testing.T) {
	opt := &countingOptimizer{}
	m := NewManager(opt, "@every 1s")
	require.NoError(t, m.Start())
	defer m.Stop()

	status := m.Status()
	assert.True(t, status.Running)
	require.NotNil(t, status.NextRun)

	assert.Eventually(t, func() bool { return opt.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestDisabledSchedule(t *testing.T) {
	m := NewManager(&countingOptimizer{}, "")
	require.NoError(t, m.Start())
	require.NoError(t, m.Start())
	m.Stop()
	m.Stop()
	assert.False(t, m.Status().Running)
}

func TestOptimizeSQLite(t *testing.T) {
	db, err := database.New(database.DriverSQLite, filepath.Join(t.TempDir(), "maint.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate(context.Background()))

	m := NewManager(db, DefaultSchedule)
	require.NoError(t, m.RunNow(context.Background()))
	assert.Empty(t, m.Status().LastError)
}
