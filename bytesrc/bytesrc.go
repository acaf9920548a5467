// Package bytesrc implements spec.md §4.F's "give me N bytes" byte
// source abstraction: a single contract that the GLB codec and the JSON
// decoder read from, backed by a file, an owned buffer, or a borrowed
// slice.
package bytesrc

import (
	"errors"
	"io"
	"os"
)

// ErrShortRead is returned when fewer bytes remain than were requested.
var ErrShortRead = errors.New("bytesrc: short read")

// Source is the "give me N bytes" contract spec.md §4.F describes.
type Source interface {
	// TotalSize returns the total number of bytes available.
	TotalSize() int64
	// BytesRead returns the number of bytes consumed so far.
	BytesRead() int64
	// Read copies the next n bytes into buf (which must have length >= n),
	// advancing the cursor. It fails if fewer than n bytes remain.
	Read(buf []byte, n int) error
	// ReadView returns a borrowed view of the next n bytes with at least
	// pad accessible (but not logically part of the view) slack bytes
	// after it, advancing the cursor. The slack exists so a SIMD JSON
	// parser can over-read past the end of a buffer cheaply.
	ReadView(n, pad int) ([]byte, error)
	// Reset returns the cursor to zero.
	Reset()
}

// MemorySource is an owning buffer over-allocated by pad extra zero
// bytes at the end, so ReadView can always hand back a view with slack.
type MemorySource struct {
	buf    []byte // logical bytes, length == size
	pad    int    // extra zeroed bytes physically present after buf
	cursor int64
}

// NewMemorySource copies data into a new buffer with pad extra zero
// bytes appended, and returns a Source over it.
func NewMemorySource(data []byte, pad int) *MemorySource {
	physical := make([]byte, len(data)+pad)
	copy(physical, data)
	return &MemorySource{buf: physical[:len(data)], pad: pad}
}

func (s *MemorySource) TotalSize() int64 { return int64(len(s.buf)) }
func (s *MemorySource) BytesRead() int64 { return s.cursor }
func (s *MemorySource) Reset()           { s.cursor = 0 }

func (s *MemorySource) Read(buf []byte, n int) error {
	if int64(n) > s.TotalSize()-s.cursor {
		return ErrShortRead
	}
	copy(buf, s.buf[s.cursor:s.cursor+int64(n)])
	s.cursor += int64(n)
	return nil
}

func (s *MemorySource) ReadView(n, pad int) ([]byte, error) {
	if int64(n) > s.TotalSize()-s.cursor {
		return nil, ErrShortRead
	}
	start := s.cursor
	s.cursor += int64(n)
	// buf's backing array has s.pad bytes of zeroed slack after len(s.buf);
	// reslicing within cap exposes up to that many extra bytes.
	end := int(start) + n
	avail := cap(s.buf) - end
	extra := pad
	if extra > avail {
		extra = avail
	}
	return s.buf[start : end+extra][:n:n+extra], nil
}

// BorrowedSource is a non-owning view over a caller-supplied slice. The
// caller guarantees at least the largest pad ever requested is safely
// readable past the slice (e.g. it came from a larger allocation).
type BorrowedSource struct {
	buf    []byte
	cursor int64
}

// NewBorrowedSource wraps data without copying it.
func NewBorrowedSource(data []byte) *BorrowedSource {
	return &BorrowedSource{buf: data}
}

func (s *BorrowedSource) TotalSize() int64 { return int64(len(s.buf)) }
func (s *BorrowedSource) BytesRead() int64 { return s.cursor }
func (s *BorrowedSource) Reset()           { s.cursor = 0 }

func (s *BorrowedSource) Read(buf []byte, n int) error {
	if int64(n) > s.TotalSize()-s.cursor {
		return ErrShortRead
	}
	copy(buf, s.buf[s.cursor:s.cursor+int64(n)])
	s.cursor += int64(n)
	return nil
}

func (s *BorrowedSource) ReadView(n, pad int) ([]byte, error) {
	if int64(n) > s.TotalSize()-s.cursor {
		return nil, ErrShortRead
	}
	start := s.cursor
	s.cursor += int64(n)
	end := int(start) + n
	avail := cap(s.buf) - end
	if pad > avail {
		pad = avail
	}
	return s.buf[start : end+pad][:n:n+pad], nil
}

// FileSource reads a file into memory once (with pad zeroed bytes
// appended), matching spec.md §4.F's "required pad zeroed on map"
// contract without taking a real mmap dependency (see DESIGN.md: no
// pack example wires an mmap library for this purpose, so an explicit
// read is the honestly-grounded choice; the seam for a real memory-map
// implementation is the Source interface itself).
type FileSource struct {
	*MemorySource
}

// OpenFile reads the named file fully into memory, appending pad zero
// bytes, and returns a Source over it.
func OpenFile(name string, pad int) (*FileSource, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &FileSource{MemorySource: NewMemorySource(data, pad)}, nil
}
