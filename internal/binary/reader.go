package binary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
)

// ErrOverflow is returned when a LEB128 value exceeds the target width.
var ErrOverflow = errors.New("leb128: overflow")

// MaxBlobSize bounds a single length-prefixed byte run. Larger lengths are
// treated as stream corruption rather than an allocation request.
const MaxBlobSize = 1 << 30

// readChunk is the largest buffer allocated ahead of the data it holds.
const readChunk = 64 << 10

type byteReader interface {
	io.Reader
	io.ByteReader
}

// Reader wraps an io.Reader with position tracking and container-specific
// read methods. Integers are unsigned LEB128, floats are raw little endian.
type Reader struct {
	r   byteReader
	pos int64
}

// NewReader creates a new Reader. Readers that do not implement
// io.ByteReader are buffered.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(byteReader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// Position returns the current byte position.
func (r *Reader) Position() int64 {
	return r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, r.eof(err)
	}
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. Large runs are read in chunks, so a
// corrupt length fails at the end of the input instead of allocating n
// bytes up front.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= readChunk {
		buf := make([]byte, n)
		if err := r.ReadInto(buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	buf := make([]byte, 0, readChunk)
	for len(buf) < n {
		k := min(n-len(buf), readChunk)
		buf = slices.Grow(buf, k)
		start := len(buf)
		buf = buf[:start+k]
		if err := r.ReadInto(buf[start:]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// ReadInto fills dst completely.
func (r *Reader) ReadInto(dst []byte) error {
	n, err := io.ReadFull(r.r, dst)
	r.pos += int64(n)
	if err != nil {
		return r.eof(err)
	}
	return nil
}

// ReadUint reads an unsigned LEB128 encoded uint64.
func (r *Reader) ReadUint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift == 63 && b > 1 {
			return 0, r.wrapError(ErrOverflow)
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, r.wrapError(ErrOverflow)
		}
	}
}

// ReadU32 reads an unsigned LEB128 value that must fit in 32 bits.
func (r *Reader) ReadU32() (uint32, error) {
	v, err := r.ReadUint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, r.wrapError(ErrOverflow)
	}
	return uint32(v), nil
}

// ReadSize reads an unsigned LEB128 size or count bounded by MaxBlobSize.
func (r *Reader) ReadSize() (int, error) {
	v, err := r.ReadUint()
	if err != nil {
		return 0, err
	}
	if v > MaxBlobSize {
		return 0, r.wrapError(fmt.Errorf("size %d exceeds limit %d", v, MaxBlobSize))
	}
	return int(v), nil
}

// ReadF32 reads a little-endian float32.
func (r *Reader) ReadF32() (float32, error) {
	var buf [4]byte
	if err := r.ReadInto(buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// ReadString reads a length-prefixed byte string. Content is not
// validated as UTF-8; names come from the authoring tool verbatim.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadSize()
	if err != nil {
		return "", err
	}
	data, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBlob reads a length-prefixed byte run.
func (r *Reader) ReadBlob() ([]byte, error) {
	n, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(n)
}

func (r *Reader) eof(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return r.wrapError(err)
}

func (r *Reader) wrapError(err error) error {
	return &ParseError{Position: r.pos, Err: err}
}

// ParseError represents an error during container parsing with position information.
type ParseError struct {
	Err      error
	Section  string
	Position int64
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("container: %s at position %d: %v", e.Section, e.Position, e.Err)
	}
	return fmt.Sprintf("container: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
