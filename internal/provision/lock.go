package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/oliworks/devbed/internal/messages"
)

var (
	lockTimeout   = 30 * time.Second
	lockPollDelay = 100 * time.Millisecond
)

var (
	openLockFile = os.OpenFile
	flockFn      = unix.Flock
	lockSleep    = time.Sleep
)

// fileLock holds an exclusive advisory lock on the provision lock file so
// that only one devbed process can fetch, patch, or clean at a time.
type fileLock struct {
	file *os.File
}

// acquireLock takes the lock at path, polling until lockTimeout elapses.
// A timeout error wraps ErrLocked.
func acquireLock(path string) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.ProvisionOpenLockFmt, path, err)
	}
	file, err := openLockFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.ProvisionOpenLockFmt, path, err)
	}
	deadline := time.Now().Add(lockTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &fileLock{file: file}, nil
		}
		if err != unix.EWOULDBLOCK && err != unix.EAGAIN {
			_ = file.Close()
			return nil, fmt.Errorf(messages.ProvisionLockFmt, path, err)
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf("%w: "+messages.ProvisionLockTimeoutFmt, ErrLocked, lockTimeout)
		}
		lockSleep(lockPollDelay)
	}
}

func (l *fileLock) release() {
	_ = flockFn(int(l.file.Fd()), unix.LOCK_UN)
	_ = l.file.Close()
}
