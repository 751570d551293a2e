package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/TimelordUK/vtail/internal/index"
	vtailio "github.com/TimelordUK/vtail/internal/io"
)

// FileSource feeds complete lines from a single growing file. Lines are
// handed out once: Tail primes the feed, Refresh returns what arrived since.
type FileSource struct {
	file      *vtailio.MappedFile
	lineIndex *index.LineIndex
	path      string
	delivered int
}

// NewFileSource opens path for tailing, creating an empty file if needed
func NewFileSource(path string) (*FileSource, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("create log: %w", err)
		}
		f.Close()
	}

	file, err := vtailio.OpenMapped(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	lineIndex, err := index.BuildLineIndex(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("index log: %w", err)
	}

	return &FileSource{
		file:      file,
		lineIndex: lineIndex,
		path:      path,
	}, nil
}

// LineCount returns the number of complete lines in the file
func (s *FileSource) LineCount() int {
	return s.lineIndex.LineCount()
}

// Tail returns the last n complete lines and marks everything up to the
// current end as delivered.
func (s *FileSource) Tail(n int) ([]string, error) {
	total := s.lineIndex.LineCount()
	start := total - n
	if start < 0 {
		start = 0
	}
	lines, err := s.read(start, total)
	if err != nil {
		return nil, err
	}
	s.delivered = total
	return lines, nil
}

// Refresh picks up lines appended since the last call. When the file shrank
// truncated is true and lines holds whatever the file contains now.
func (s *FileSource) Refresh() (lines []string, truncated bool, err error) {
	grown, truncated, err := s.file.Refresh()
	if err != nil {
		return nil, false, err
	}

	if truncated {
		s.lineIndex.Reset()
		s.delivered = 0
	} else if !grown {
		return nil, false, nil
	}

	if _, err := s.lineIndex.AppendNewLines(); err != nil {
		return nil, truncated, fmt.Errorf("index log: %w", err)
	}

	total := s.lineIndex.LineCount()
	lines, err = s.read(s.delivered, total)
	if err != nil {
		return nil, truncated, err
	}
	s.delivered = total
	return lines, truncated, nil
}

// Truncate empties the file on disk and resets the feed
func (s *FileSource) Truncate() error {
	if err := os.Truncate(s.path, 0); err != nil {
		return fmt.Errorf("truncate log: %w", err)
	}
	if _, _, err := s.file.Refresh(); err != nil {
		return err
	}
	s.lineIndex.Reset()
	s.delivered = 0
	return nil
}

// Close closes the file source
func (s *FileSource) Close() error {
	return s.file.Close()
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) read(start, end int) ([]string, error) {
	raw, err := s.lineIndex.GetLines(start, end-start)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	lines := make([]string, len(raw))
	for i, b := range raw {
		lines[i] = string(b)
	}
	return lines, nil
}
