package io

import (
	"fmt"
	"os"

	"golang.org/x/exp/mmap"
)

// MappedFile provides memory-mapped read access to a file that may grow or
// be truncated underneath it.
type MappedFile struct {
	reader *mmap.ReaderAt
	size   int64
	path   string
}

// OpenMapped opens a file with memory mapping
func OpenMapped(path string) (*MappedFile, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &MappedFile{
		reader: reader,
		size:   int64(reader.Len()),
		path:   path,
	}, nil
}

// ReadAt reads len(p) bytes at offset
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	return m.reader.ReadAt(p, off)
}

// Size returns the mapped size
func (m *MappedFile) Size() int64 {
	return m.size
}

// Path returns the file path
func (m *MappedFile) Path() string {
	return m.path
}

// Close closes the memory mapping
func (m *MappedFile) Close() error {
	if m.reader == nil {
		return nil
	}
	err := m.reader.Close()
	m.reader = nil
	return err
}

// Refresh re-maps the file when its size on disk differs from the mapped
// size. grown reports new bytes past the old end; truncated reports that the
// file is now shorter than what was mapped.
func (m *MappedFile) Refresh() (grown, truncated bool, err error) {
	info, err := os.Stat(m.path)
	if err != nil {
		return false, false, fmt.Errorf("stat %s: %w", m.path, err)
	}

	newSize := info.Size()
	if newSize == m.size {
		return false, false, nil
	}

	if m.reader != nil {
		m.reader.Close()
	}

	reader, err := mmap.Open(m.path)
	if err != nil {
		m.reader = nil
		return false, false, fmt.Errorf("remap %s: %w", m.path, err)
	}

	truncated = newSize < m.size
	m.reader = reader
	m.size = int64(reader.Len())
	return !truncated, truncated, nil
}

// ReadRange reads bytes from start to end
func (m *MappedFile) ReadRange(start, end int64) ([]byte, error) {
	if end > m.size {
		end = m.size
	}
	if start >= end {
		return nil, nil
	}

	buf := make([]byte, end-start)
	_, err := m.reader.ReadAt(buf, start)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
