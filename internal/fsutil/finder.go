// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// generatedPrefixes marks files the tool itself produces, plus the lock
// files Excel leaves behind. Such files are never treated as schedule
// input.
var generatedPrefixes = []string{
	"vlookup_",
	"duplicate_",
	"ssnit_search_",
	"~$",
}

// IsGenerated reports whether the given base file name is a generated or
// system artifact rather than an operator-supplied schedule file. Hidden
// dot files count too; that covers macOS resource forks and any orphaned
// atomic-write temp file.
func IsGenerated(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, prefix := range generatedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// HasAppendedTotal reports whether a schedule file name already carries an
// appended total, which the append-total operation encodes as an underscore
// in the base name.
func HasAppendedTotal(name string) bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Contains(base, "_")
}

// FindScheduleFiles returns the .xlsx schedule files under root, skipping
// generated artifacts. When recursive is true the whole directory tree is
// walked; otherwise only root's immediate entries are considered. Results
// are sorted for deterministic batch ordering.
func FindScheduleFiles(root string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isScheduleFile(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && isScheduleFile(entry.Name()) {
				files = append(files, filepath.Join(root, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// ListSubfolders returns the names of the immediate subdirectories of root,
// sorted alphabetically.
func ListSubfolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func isScheduleFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx") && !IsGenerated(name)
}
