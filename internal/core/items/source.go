package items

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// ErrNoLog is returned by Source.Find when a directory has no item log.
var ErrNoLog = errors.New("no item log")

// Default locations of an item log relative to a project directory.
var (
	DefaultDataDirs = []string{".bon", ".arc"}
	DefaultFileName = "items.jsonl"
)

// Source locates item logs inside project directories.
type Source struct {
	// DataDirs are checked in order; the first one holding FileName wins.
	DataDirs []string
	FileName string
}

// DefaultSource returns a Source for .bon/items.jsonl with .arc/ as fallback.
func DefaultSource() Source {
	return Source{DataDirs: DefaultDataDirs, FileName: DefaultFileName}
}

// Find returns the path of the item log under dir, or ErrNoLog. A dir that
// is not a directory has no log.
func (s Source) Find(dir string) (string, error) {
	for _, d := range s.DataDirs {
		path := filepath.Join(dir, d, s.FileName)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				continue
			}
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", ErrNoLog
}

// Load decodes the item log under dir. A directory without a log yields an
// empty result and no error.
func (s Source) Load(dir string, mode Mode) (Result, error) {
	path, err := s.Find(dir)
	if err != nil {
		if errors.Is(err, ErrNoLog) {
			return Empty(), nil
		}
		return Empty(), err
	}
	return LoadFile(path, mode)
}

// LoadFile decodes the item log at path. A missing file yields an empty
// result and no error.
func LoadFile(path string, mode Mode) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return Empty(), fmt.Errorf("open item log: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := Decode(f, mode)
	if err != nil {
		return Empty(), fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
