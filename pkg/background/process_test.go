package background

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dorschm/stellar-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_StartRunsOperationRepeatedly(t *testing.T) {
	log := logger.NewStdLogger("test", "")

	var calls int32
	p := NewProcess(5*time.Millisecond, log).WithOperation(func() (bool, error) {
		atomic.AddInt32(&calls, 1)
		return true, nil
	})

	require.NoError(t, p.Start())
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
}

func TestProcess_StartTwiceFails(t *testing.T) {
	log := logger.NewStdLogger("test", "")

	p := NewProcess(time.Second, log).WithOperation(func() (bool, error) { return true, nil })

	require.NoError(t, p.Start())
	defer p.Stop()

	assert.Equal(t, ErrAlreadyRunning, p.Start())
}

func TestProcess_StartWithoutOperationFails(t *testing.T) {
	log := logger.NewStdLogger("test", "")

	p := NewProcess(time.Second, log)

	assert.Equal(t, ErrInvalidOperation, p.Start())
}

func TestProcess_StopBeforeStartIsNoOp(t *testing.T) {
	log := logger.NewStdLogger("test", "")

	p := NewProcess(time.Second, log).WithOperation(func() (bool, error) { return true, nil })

	assert.NotPanics(t, func() {
		p.Stop()
	})
}

func TestProcess_RecoversFromPanicInOperation(t *testing.T) {
	log := logger.NewStdLogger("test", "")

	p := NewProcess(5*time.Millisecond, log).WithOperation(func() (bool, error) {
		panic(fmt.Errorf("boom"))
	})

	require.NoError(t, p.Start())
	time.Sleep(20 * time.Millisecond)

	assert.NotPanics(t, func() {
		p.Stop()
	})
}
