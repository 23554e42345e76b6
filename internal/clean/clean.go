// Package clean removes generated output and the analysis cache.
package clean

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/stemr/builder/config"
)

// Options selects what Run removes. The snapshot is always removed.
type Options struct {
	Cache bool // also remove the analysis cache directory
}

// Run deletes the search snapshot and, optionally, the cache directory.
// It returns the paths that existed and were removed.
func Run(fs afero.Fs, cfg *config.Config, opts Options) ([]string, error) {
	start := time.Now()
	var removed []string

	snapshot := cfg.SnapshotPath()
	if ok, _ := afero.Exists(fs, snapshot); ok {
		if err := fs.Remove(snapshot); err != nil {
			return removed, errors.Wrapf(err, "remove %s", snapshot)
		}
		removed = append(removed, snapshot)
		fmt.Printf("🧹 Removed %s\n", snapshot)
	}

	if opts.Cache {
		ok, err := removeDir(fs, cfg.CacheDir)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, cfg.CacheDir)
			fmt.Printf("🧹 Removed cache %s\n", cfg.CacheDir)
		}
	}

	if len(removed) == 0 {
		fmt.Println("🧹 Nothing to clean")
		return nil, nil
	}
	fmt.Printf("🧹 Clean finished in %v.\n", time.Since(start))
	return removed, nil
}

// removeDir moves dir aside before deleting it, so a concurrent reader sees
// either the whole directory or none of it.
func removeDir(fs afero.Fs, dir string) (bool, error) {
	if ok, _ := afero.DirExists(fs, dir); !ok {
		return false, nil
	}

	trash := filepath.Join(filepath.Dir(dir), fmt.Sprintf("%s_deleting_%d", filepath.Base(dir), time.Now().UnixNano()))
	if err := fs.Rename(dir, trash); err != nil {
		fmt.Printf("⚠️ Rename failed (%v), deleting in place...\n", err)
		trash = dir
	}
	if err := fs.RemoveAll(trash); err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "remove %s", dir)
	}
	return true, nil
}
