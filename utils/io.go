package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"unsafe"
)

var ErrTokenTooLong = errors.New("line exceeds read buffer")

func OpenFile(path string) (*os.File, error) {
	return os.Open(path)
}

// Creates the file, and any missing parent directories.
func CreateFile(path string) (*os.File, error) {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return ""
}

// var asciiSpace = [256]uint8{'\t': 1, '\n': 1, '\v': 1, '\f': 1, '\r': 1, ' ': 1}
const SPACE_MASK = 1<<9 | 1<<10 | 1<<11 | 1<<12 | 1<<13 | 1<<32

func isByteSpace(b byte) bool {
	return ((SPACE_MASK & (1 << b)) != 0)
}

// ASCII only, no re-allocation. Fields point into byteBuff, so they are only valid until the buffer is reused.
// Fills at most len(fieldBuff) fields; returns the number of fields found (which may exceed len(fieldBuff)).
func FastFields(fieldBuff []string, byteBuff []byte) (numFields int) {
	i := 0
	for i < len(byteBuff) {
		for i < len(byteBuff) && isByteSpace(byteBuff[i]) {
			i++
		}
		if i == len(byteBuff) {
			break
		}
		fieldStart := i
		for i < len(byteBuff) && !isByteSpace(byteBuff[i]) {
			i++
		}
		if numFields < len(fieldBuff) {
			fieldBuff[numFields] = unsafe.String(&byteBuff[fieldStart], i-fieldStart)
		}
		numFields++
	}
	return numFields
}

// Line reader over a fixed buffer. Returned lines alias the buffer and are valid until the next Scan.
type FastFileLines struct {
	Buf   []byte
	Start int // First non-processed byte in buf.
	End   int // End of data in buf.
}

// Advance to the next line. Returns (nil, io.EOF) when the input is exhausted.
func (s *FastFileLines) Scan(reader io.Reader) ([]byte, error) {
	var err error
	for { // Until we have a token.
		if s.End > s.Start { // See if we can get a token with what we already have.
			if i := bytes.IndexByte(s.Buf[s.Start:s.End], '\n'); i >= 0 {
				token := s.Buf[s.Start : s.Start+i]
				s.Start += i + 1
				return token, nil
			}
		}
		if err != nil {
			// We have reached EOF. Return whatever is left.
			if s.End > s.Start {
				i := s.Start
				s.Start = s.End
				return s.Buf[i:s.End], nil
			}
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
		// Must read more data. Shift data to beginning of buffer if there's lots of empty space.
		if s.Start > 0 && (s.Start > len(s.Buf)/2 || s.End == len(s.Buf)) {
			copy(s.Buf, s.Buf[s.Start:s.End])
			s.End -= s.Start
			s.Start = 0
		}
		if s.End == len(s.Buf) {
			return nil, ErrTokenTooLong
		}
		var n int
		for loop := 0; ; loop++ {
			n, err = reader.Read(s.Buf[s.End:len(s.Buf)])
			s.End += n
			if n > 0 || err != nil {
				break
			}
			if loop > 100 {
				return nil, io.ErrNoProgress
			}
		}
	}
}
