package fs_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/pkg/fs"
)

func TestLocker_LockAndClose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "target.lock")

	l := fs.NewLocker(fs.NewReal())

	lock, err := l.Lock(path)
	require.NoError(t, err)
	require.NoError(t, lock.Close())
}

func TestLocker_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "target.lock")

	l := fs.NewLocker(fs.NewReal())

	lock, err := l.Lock(path)
	require.NoError(t, err)
	require.NoError(t, lock.Close())
	require.NoError(t, lock.Close())
}

func TestLocker_TryLockFailsWhileHeld(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "target.lock")

	l := fs.NewLocker(fs.NewReal())

	held, err := l.Lock(path)
	require.NoError(t, err)
	defer held.Close()

	_, err = l.TryLock(path)
	assert.ErrorIs(t, err, fs.ErrWouldBlock)
}

func TestLocker_TryLockSucceedsAfterRelease(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "target.lock")

	l := fs.NewLocker(fs.NewReal())

	held, err := l.Lock(path)
	require.NoError(t, err)
	require.NoError(t, held.Close())

	lock, err := l.TryLock(path)
	require.NoError(t, err)
	require.NoError(t, lock.Close())
}

func TestLocker_LockWithTimeoutExpiresWhenHeld(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "target.lock")

	l := fs.NewLocker(fs.NewReal())

	held, err := l.Lock(path)
	require.NoError(t, err)
	defer held.Close()

	_, err = l.LockWithTimeout(path, 20*time.Millisecond)
	assert.ErrorIs(t, err, fs.ErrWouldBlock)
}

func TestLocker_LockWithTimeoutRejectsNonPositiveTimeout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "target.lock")

	l := fs.NewLocker(fs.NewReal())

	_, err := l.LockWithTimeout(path, 0)
	assert.ErrorIs(t, err, fs.ErrInvalidTimeout)
}

func TestLocker_SharedLocksDoNotConflict(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "target.lock")

	l := fs.NewLocker(fs.NewReal())

	first, err := l.RLock(path)
	require.NoError(t, err)
	defer first.Close()

	second, err := l.RLock(path)
	require.NoError(t, err)
	defer second.Close()
}

func TestLocker_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "target.lock")

	l := fs.NewLocker(fs.NewReal())

	lock, err := l.Lock(path)
	require.NoError(t, err)
	require.NoError(t, lock.Close())
}
