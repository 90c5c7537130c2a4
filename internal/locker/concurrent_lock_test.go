package locker

import (
	"testing"

	"github.com/Dorschm/stellar-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentLocker_AcquireSameResourceReturnsSameLock(t *testing.T) {
	log := logger.NewStdLogger("test", "")
	cl := NewConcurrentLocker(log)

	a := cl.Acquire("planet-1")
	b := cl.Acquire("planet-1")

	assert.Same(t, a, b)

	cl.Release(b)
	cl.Release(a)
}

func TestConcurrentLocker_ReleaseFreesResourceForReuse(t *testing.T) {
	log := logger.NewStdLogger("test", "")
	cl := NewConcurrentLocker(log)

	a := cl.Acquire("planet-1")
	cl.Release(a)

	b := cl.Acquire("planet-2")
	require.NotNil(t, b)

	cl.Release(b)
}

func TestConcurrentLocker_ReleaseNilIsNoOp(t *testing.T) {
	log := logger.NewStdLogger("test", "")
	cl := NewConcurrentLocker(log)

	assert.NotPanics(t, func() {
		cl.Release(nil)
	})
}
