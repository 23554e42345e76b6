//go:build windows || js

package utils

import "os"

// No advisory locking on these platforms; the lock file still records the owner.
func tryLock(*os.File) error { return nil }

func unlock(*os.File) error { return nil }
