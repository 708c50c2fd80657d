// package nesformat identifies which Famicom/NES container a byte stream
// holds by looking at its leading tag.
// https://www.nesdev.org/wiki/INES, https://www.nesdev.org/wiki/NES_2.0,
// https://www.nesdev.org/wiki/FDS_file_format, https://www.nesdev.org/wiki/UNIF
package nesformat

import "bytes"

type Format uint8

const (
	Unknown Format = iota
	INES           // "NES\x1A" with a legacy (or archaic) header
	NES20          // "NES\x1A" with the NES 2.0 identifier in flags 7
	FDS            // fwNES "FDS\x1A" header followed by disk sides
	FDSRaw         // headerless disk image starting with the disk info block
	UNIF           // "UNIF" chunked container
)

var (
	INES_MAGIC    = []byte("NES\x1A")
	FDS_MAGIC     = []byte("FDS\x1A")
	FDS_RAW_MAGIC = []byte("\x01*NINTENDO-HVC*")
	UNIF_MAGIC    = []byte("UNIF")
)

const (
	// Flags 7 bits 2-3 equal to 0b10 mark a NES 2.0 header.
	NES2_MASK = 0x0C
	NES2_ID   = 0x08
)

var names = map[Format]string{
	Unknown: "unknown",
	INES:    "iNES",
	NES20:   "NES 2.0",
	FDS:     "FDS",
	FDSRaw:  "FDS (headerless)",
	UNIF:    "UNIF",
}

func (f Format) String() string {
	if n, ok := names[f]; ok {
		return n
	}
	return "unknown"
}

// IsNES is true for the two header variants handled by nesrom.
func (f Format) IsNES() bool {
	return f == INES || f == NES20
}

// IsSibling is true for containers from the same family that are not .nes
// files.
func (f Format) IsSibling() bool {
	return f == FDS || f == FDSRaw || f == UNIF
}

// Detect returns the container format of data. The NES 2.0 identifier is
// only consulted when a full 16 byte header is available.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, INES_MAGIC):
		if len(data) >= 16 && data[7]&NES2_MASK == NES2_ID {
			return NES20
		}
		return INES
	case bytes.HasPrefix(data, FDS_MAGIC):
		return FDS
	case bytes.HasPrefix(data, FDS_RAW_MAGIC):
		return FDSRaw
	case bytes.HasPrefix(data, UNIF_MAGIC):
		return UNIF
	}

	return Unknown
}
