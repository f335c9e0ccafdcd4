package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mlaurent/restodoc/constants"
)

type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// ScanDirectory walks root and returns the OCR dump paths matching the
// allowed extensions. Walk errors on individual entries are counted, not
// fatal.
func ScanDirectory(root string, includeExts []string) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	exts := map[string]struct{}{}
	if len(includeExts) == 0 {
		exts = constants.AllowedExtensions
	} else {
		for _, e := range includeExts {
			if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
				exts[e] = struct{}{}
			}
		}
	}

	var paths []string
	var stats DirStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			stats.Failed++
			return nil // continue walking
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if allowed(path, exts) {
			stats.Matched++
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return paths, stats, nil
}
