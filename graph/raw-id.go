package graph

import (
	"strconv"
)

// Raw (external) vertex identifier, as found in the input. Opaque, unique, and stable across executions.
type RawType uint64

// Maps a raw type within the given length. Modulo is fine for integer raw types.
func (r RawType) Within(len uint32) uint32 {
	return uint32(uint64(r) % uint64(len))
}

func (r RawType) String() string {
	return strconv.FormatUint(uint64(r), 10)
}

func (r RawType) Integer() uint64 {
	return uint64(r)
}

// Mostly for testing, this converts a given integer into a RawType.
func AsRawType(val int) RawType {
	return RawType(val)
}

// For parsing, this converts a string to the RawType.
func ParseRawType(val string) (RawType, error) {
	v, err := strconv.ParseUint(val, 10, 64)
	return RawType(v), err
}
