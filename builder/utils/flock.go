package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// LockFileName is created inside the cache directory while an index build runs.
const LockFileName = ".stemr-index.lock"

type FileLock struct {
	file *os.File
	path string
}

// AcquireIndexLock takes an exclusive, non-blocking lock in dir so two index
// builds never share one cache.
func AcquireIndexLock(dir string) (*FileLock, error) {
	lockPath := filepath.Join(dir, LockFileName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create lock directory")
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "create lock file")
	}

	if err := tryLock(file); err != nil {
		_ = file.Close()
		return nil, errors.Errorf("another index build is in progress (lock file: %s)", lockPath)
	}

	// PID and start time, for whoever finds a stale lock
	owner := fmt.Sprintf("%d\n%s", os.Getpid(), time.Now().Format(time.RFC3339))
	_, _ = file.WriteAt([]byte(owner), 0)

	return &FileLock{file: file, path: lockPath}, nil
}

func (fl *FileLock) Release() error {
	if fl.file == nil {
		return nil
	}

	_ = unlock(fl.file)
	err := fl.file.Close()
	fl.file = nil

	_ = os.Remove(fl.path)
	return err
}
