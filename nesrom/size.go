package nesrom

import (
	"fmt"
	"math/bits"
)

// NES 2.0 can store a ROM size as 2^exponent * (multiplier*2+1) when the
// linear unit count doesn't fit. The exponent is 6 bits and the multiplier
// selector 2 bits.
// https://www.nesdev.org/wiki/NES_2.0#PRG-ROM_Area
const (
	MAX_EXPONENT   = 63
	MAX_MULTIPLIER = 3
)

// DecodeSize returns the size represented by an exponent and multiplier
// selector.
func DecodeSize(exponent, multiplier uint8) uint64 {
	return (uint64(1) << exponent) * (uint64(multiplier)*2 + 1)
}

// EncodeSize returns the smallest exponent form that is at least size and
// the size it represents. Sizes that aren't exactly representable are
// rounded up, never down, as the data is padded to the returned size.
func EncodeSize(size uint64) (exponent, multiplier uint8, padded uint64) {
	if size == 0 {
		return 0, 0, 1
	}
	if size < 8 {
		e, m, p := EncodeSize(size << 3)
		return e - 3, m, p >> 3
	}

	bitsize := uint8(bits.Len64(size))

	// The top three significant bits, rounded up if anything below them
	// is set.
	major := size >> (bitsize - 3)
	if minor := size &^ (0b111 << (bitsize - 3)); minor != 0 {
		major++
	}

	switch major {
	case 0b100:
		exponent, multiplier = bitsize-1, 0
	case 0b101:
		exponent, multiplier = bitsize-3, 2
	case 0b110:
		exponent, multiplier = bitsize-2, 1
	case 0b111:
		exponent, multiplier = bitsize-3, 3
	case 0b1000:
		exponent, multiplier = bitsize, 0
	default:
		panic(fmt.Sprintf("impossible size split for %d: major %b", size, major))
	}

	return exponent, multiplier, DecodeSize(exponent, multiplier)
}
