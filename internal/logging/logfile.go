package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LogFile manages the persistent run log: an append-only file bounded
// to a configured number of lines by TrimToLines at the start of each
// run.
type LogFile struct {
	Path string

	file *os.File
}

// OpenLogFile opens the log file for appending, creating the file and
// its directory as needed.
func OpenLogFile(path string) (*LogFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", path, err)
	}
	return &LogFile{Path: path, file: f}, nil
}

// Writer returns the io.Writer for log output.
func (lf *LogFile) Writer() io.Writer {
	return lf.file
}

// Close closes the log file.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// TrimToLines bounds the file at path to its newest max lines, dropping
// the oldest. The rewrite goes through a temp file in the same directory
// followed by a rename, so a concurrent reader sees either the old or
// the new file, never a half-truncated one. A missing file is not an
// error.
func TrimToLines(path string, max int) error {
	if max <= 0 {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading log file %q: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	// A trailing newline produces one empty trailing element.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) <= max {
		return nil
	}
	keep := lines[len(lines)-max:]

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp log file in %q: %w", dir, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(strings.Join(keep, "\n") + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp log file %q: %w", tmpPath, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("setting temp log file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp log file %q: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing log file %q: %w", path, err)
	}
	return nil
}
