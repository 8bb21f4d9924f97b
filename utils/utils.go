package utils

import (
	"syscall"
	"unsafe"
)

///////////////////////////////////////////////////////////////////////////////
// Conversion Utilities — Zero-Alloc Casts
///////////////////////////////////////////////////////////////////////////////

// B2s converts a []byte to a string **without** allocation.
// ⚠️ Caller must ensure the input slice remains valid and unchanged.
// Used for human-readable print paths.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// S2b converts a string to a []byte **without** allocation.
// ⚠️ The returned slice must never be written to.
//
//go:nosplit
//go:inline
func S2b(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

///////////////////////////////////////////////////////////////////////////////
// Diagnostics Output — Direct Stderr, No fmt
///////////////////////////////////////////////////////////////////////////////

// PrintWarning writes msg to stderr (file descriptor 2) in one syscall,
// bypassing fmt and the log package. Cold paths only.
//
//go:nosplit
func PrintWarning(msg string) {
	_, _ = syscall.Write(2, S2b(msg))
}

///////////////////////////////////////////////////////////////////////////////
// Fast Loaders — Unaligned 64-Bit Reads
///////////////////////////////////////////////////////////////////////////////

// LoadBE64 performs a manual big-endian 64-bit read, avoiding dependency on binary.BigEndian.
// Used to truncate digest output into a compact fingerprint id.
//
//go:nosplit
//go:inline
func LoadBE64(b []byte) uint64 {
	_ = b[7] // bounds check hint
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 |
		uint64(b[3])<<32 | uint64(b[4])<<24 | uint64(b[5])<<16 |
		uint64(b[6])<<8 | uint64(b[7])
}

///////////////////////////////////////////////////////////////////////////////
// Hash & Mixers — For Workload Scrambling
///////////////////////////////////////////////////////////////////////////////

// Mix64 applies a Murmur3-style avalanche to a 64-bit value.
// Used to decorrelate sequential node ids in synthetic workload patterns.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
