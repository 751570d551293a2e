package index

import (
	"bytes"

	vtailio "github.com/TimelordUK/vtail/internal/io"
)

const chunkSize = 64 * 1024

// LineIndex stores the byte offset just past each newline seen so far, so
// only complete lines are addressable. A trailing partial line stays
// unindexed until its newline is written.
type LineIndex struct {
	ends    []int64 // offset after the '\n' terminating each line
	scanned int64   // bytes examined so far
	file    *vtailio.MappedFile
}

// BuildLineIndex scans the whole file and builds a line offset index
func BuildLineIndex(file *vtailio.MappedFile) (*LineIndex, error) {
	idx := &LineIndex{
		ends: make([]int64, 0, int(file.Size()/100)+1),
		file: file,
	}
	if _, err := idx.AppendNewLines(); err != nil {
		return nil, err
	}
	return idx, nil
}

// AppendNewLines scans bytes added since the last scan and returns how many
// complete lines were added.
func (idx *LineIndex) AppendNewLines() (int, error) {
	size := idx.file.Size()
	before := len(idx.ends)
	buf := make([]byte, chunkSize)

	for idx.scanned < size {
		readSize := int64(chunkSize)
		if idx.scanned+readSize > size {
			readSize = size - idx.scanned
		}

		n, err := idx.file.ReadAt(buf[:readSize], idx.scanned)
		if err != nil && n == 0 {
			return len(idx.ends) - before, err
		}

		chunk := buf[:n]
		offset := 0
		for {
			i := bytes.IndexByte(chunk[offset:], '\n')
			if i == -1 {
				break
			}
			idx.ends = append(idx.ends, idx.scanned+int64(offset+i)+1)
			offset += i + 1
		}
		idx.scanned += int64(n)
	}

	return len(idx.ends) - before, nil
}

// Reset forgets every indexed line, used after the file was truncated.
func (idx *LineIndex) Reset() {
	idx.ends = idx.ends[:0]
	idx.scanned = 0
}

// LineCount returns the number of complete lines
func (idx *LineIndex) LineCount() int {
	return len(idx.ends)
}

// GetLine returns line lineNum (0-based) without its line terminator
func (idx *LineIndex) GetLine(lineNum int) ([]byte, error) {
	if lineNum < 0 || lineNum >= len(idx.ends) {
		return nil, nil
	}

	start := idx.ByteOffset(lineNum)
	content, err := idx.file.ReadRange(start, idx.ends[lineNum])
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(content, "\r\n"), nil
}

// GetLines returns a range of lines
func (idx *LineIndex) GetLines(start, count int) ([][]byte, error) {
	if start < 0 {
		start = 0
	}
	if start >= len(idx.ends) || count <= 0 {
		return nil, nil
	}
	if start+count > len(idx.ends) {
		count = len(idx.ends) - start
	}

	lines := make([][]byte, count)
	for i := 0; i < count; i++ {
		line, err := idx.GetLine(start + i)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}

// ByteOffset returns the byte offset where a line starts
func (idx *LineIndex) ByteOffset(lineNum int) int64 {
	if lineNum < 0 || lineNum >= len(idx.ends) {
		return -1
	}
	if lineNum == 0 {
		return 0
	}
	return idx.ends[lineNum-1]
}
