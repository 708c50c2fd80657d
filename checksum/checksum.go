// Package checksum computes the digests used to identify ROM dumps: the
// reflected CRC32 (polynomial 0xEDB88320) and MD5. Both operate on a list of
// byte slices treated as one contiguous buffer, so callers can digest PRG
// followed by CHR without building a copy.
package checksum

import (
	"crypto/md5"
	"hash/crc32"
)

// table is the 256 entry lookup table for the reflected IEEE polynomial. It
// is built once and only read afterwards.
var table = crc32.MakeTable(crc32.IEEE)

// CRC32 returns the CRC32 of the concatenation of parts. The register starts
// at 0xFFFFFFFF and the result is complemented; no byte swapping is done.
func CRC32(parts ...[]byte) uint32 {
	var crc uint32
	for _, p := range parts {
		crc = crc32.Update(crc, table, p)
	}
	return crc
}

// MD5 returns the MD5 digest of the concatenation of parts.
func MD5(parts ...[]byte) [md5.Size]byte {
	h := md5.New()
	for _, p := range parts {
		h.Write(p) // never returns an error
	}

	var sum [md5.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
