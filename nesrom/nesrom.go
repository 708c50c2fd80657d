// package nesrom implements support for the NES (iNES, NES2) ROM
// format. https://www.nesdev.org/wiki/INES
package nesrom

import (
	"fmt"
	"strings"

	"github.com/bdwalton/nesfile/checksum"
	"github.com/bdwalton/nesfile/mappers"
	"github.com/bdwalton/nesfile/nesformat"
)

// ROM is a decoded .nes file. Fields may be set freely; the combination is
// only checked by ToBytes.
type ROM struct {
	Trainer []byte // 0 or TRAINER_SIZE bytes
	PRG     []byte
	CHR     []byte // empty for boards with CHR RAM only
	MiscROM []byte // NES 2.0 only; present iff MiscROMCount > 0

	Version   Version
	Mapper    uint16 // 0-255 for iNES, 0-4095 for NES 2.0
	Submapper uint8  // NES 2.0 only
	Battery   bool
	Mirroring Mirroring

	// RAM sizes in bytes. For NES 2.0 each is 0 or 64 << n. iNES only
	// has PrgRAMSize, as a count of 8 KB units.
	PrgRAMSize   uint32
	PrgNVRAMSize uint32
	ChrRAMSize   uint32
	ChrNVRAMSize uint32

	Region          Region
	Console         Console
	VsPPU           VsPPU           // when Console is CONSOLE_VS_SYSTEM
	VsHardware      VsHardware      // when Console is CONSOLE_VS_SYSTEM
	ExtendedConsole ExtendedConsole // when Console is CONSOLE_EXTENDED
	ExpansionDevice ExpansionDevice
	MiscROMCount    uint8
}

const (
	TRAINER_SIZE   = 512
	PRG_BLOCK_SIZE = 16384
	CHR_BLOCK_SIZE = 8192
	// Declared segments larger than this are refused rather than
	// allocated.
	MAX_SEGMENT_SIZE = 1 << 30
	// Padding written after PRG and CHR data.
	PAD_BYTE = 0xFF
)

// New returns an empty iNES ROM with mapper 0, horizontal mirroring and
// NTSC timing.
func New() *ROM {
	return &ROM{Version: INES, Mirroring: MIRROR_HORIZONTAL, Region: NTSC}
}

// FromBytes decodes a .nes file. Segments that run past the end of data
// are zero filled, as many dumps in the wild are short.
func FromBytes(data []byte) (*ROM, error) {
	return decode(data, false)
}

// FromBytesStrict is like FromBytes but fails with ErrTruncated when a
// segment runs past the end of data.
func FromBytesStrict(data []byte) (*ROM, error) {
	return decode(data, true)
}

// segmentReader hands out consecutive segments of the file body.
type segmentReader struct {
	data   []byte
	off    uint64
	strict bool
}

func (sr *segmentReader) next(field string, n uint64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	end := sr.off + n
	if sr.strict && end > uint64(len(sr.data)) {
		return nil, decodeErr(field, ErrTruncated, "need %d bytes at offset %d, have %d", n, sr.off, len(sr.data))
	}

	buf := make([]byte, n)
	if sr.off < uint64(len(sr.data)) {
		copy(buf, sr.data[sr.off:])
	}
	sr.off = end
	return buf, nil
}

func (sr *segmentReader) rest() []byte {
	if sr.off >= uint64(len(sr.data)) {
		return nil
	}
	buf := make([]byte, uint64(len(sr.data))-sr.off)
	copy(buf, sr.data[sr.off:])
	sr.off = uint64(len(sr.data))
	return buf
}

func decode(data []byte, strict bool) (*ROM, error) {
	switch f := nesformat.Detect(data); {
	case f.IsSibling():
		return nil, decodeErr("magic", ErrSiblingFormat, "%s", f)
	case !f.IsNES():
		return nil, decodeErr("magic", ErrBadMagic, "")
	}
	if len(data) < HEADER_SIZE {
		return nil, decodeErr("header", ErrTruncated, "%d bytes", len(data))
	}

	h := parseHeader(data[:HEADER_SIZE])
	if !h.isNES2Format() && h.console() == CONSOLE_EXTENDED {
		return nil, decodeErr("console", ErrUnsupportedField, "extended console type in iNES header")
	}

	prgSize, err := h.prgROMSize()
	if err != nil {
		return nil, err
	}
	chrSize, err := h.chrROMSize()
	if err != nil {
		return nil, err
	}
	if prgSize > MAX_SEGMENT_SIZE {
		return nil, decodeErr("prg rom", ErrSizeTooLarge, "%d bytes", prgSize)
	}
	if chrSize > MAX_SEGMENT_SIZE {
		return nil, decodeErr("chr rom", ErrSizeTooLarge, "%d bytes", chrSize)
	}

	r := &ROM{}
	h.apply(r)

	sr := &segmentReader{data: data, off: HEADER_SIZE, strict: strict}
	if h.hasTrainer() {
		if r.Trainer, err = sr.next("trainer", TRAINER_SIZE); err != nil {
			return nil, err
		}
	}
	if r.PRG, err = sr.next("prg rom", prgSize); err != nil {
		return nil, err
	}
	if r.CHR, err = sr.next("chr rom", chrSize); err != nil {
		return nil, err
	}

	if r.Version == NES20 && r.MiscROMCount > 0 {
		r.MiscROM = sr.rest()
		if strict && len(r.MiscROM) == 0 {
			return nil, decodeErr("misc rom", ErrTruncated, "%d misc ROMs declared, no data", r.MiscROMCount)
		}
	}

	return r, nil
}

// ToBytes encodes r as a .nes file in the format given by r.Version. PRG
// and CHR are padded with PAD_BYTE up to the size the header records.
func (r *ROM) ToBytes() ([]byte, error) {
	h, prgLen, chrLen, err := encodeHeader(r)
	if err != nil {
		return nil, err
	}

	size := uint64(HEADER_SIZE+len(r.Trainer)+len(r.MiscROM)) + prgLen + chrLen
	out := make([]byte, 0, size)
	out = append(out, h.bytes()...)
	out = append(out, r.Trainer...)
	out = appendPadded(out, r.PRG, prgLen)
	out = appendPadded(out, r.CHR, chrLen)
	out = append(out, r.MiscROM...)

	return out, nil
}

func appendPadded(out, data []byte, size uint64) []byte {
	out = append(out, data...)
	for i := uint64(len(data)); i < size; i++ {
		out = append(out, PAD_BYTE)
	}
	return out
}

// SetPrgNVRAMSize sets the PRG NVRAM size. A nonzero size implies a
// battery.
func (r *ROM) SetPrgNVRAMSize(size uint32) {
	r.PrgNVRAMSize = size
	if size > 0 {
		r.Battery = true
	}
}

// SetChrNVRAMSize sets the CHR NVRAM size. A nonzero size implies a
// battery.
func (r *ROM) SetChrNVRAMSize(size uint32) {
	r.ChrNVRAMSize = size
	if size > 0 {
		r.Battery = true
	}
}

// CRC32 returns the CRC32 of PRG followed by CHR.
func (r *ROM) CRC32() uint32 {
	return checksum.CRC32(r.PRG, r.CHR)
}

// MD5 returns the MD5 of PRG followed by CHR.
func (r *ROM) MD5() [16]byte {
	return checksum.MD5(r.PRG, r.CHR)
}

func (r *ROM) String() string {
	var sb strings.Builder

	mapper := fmt.Sprintf("%d", r.Mapper)
	if name := mappers.Name(r.Mapper); name != "" {
		mapper += " (" + name + ")"
	}
	if r.Version == NES20 {
		mapper += fmt.Sprintf(", submapper %d", r.Submapper)
	}

	sb.WriteString(fmt.Sprintf("Format: %s\n", r.Version))
	sb.WriteString(fmt.Sprintf("Mapper: %s\n", mapper))
	sb.WriteString(fmt.Sprintf("PRG: %d bytes, CHR: %d bytes", len(r.PRG), len(r.CHR)))
	if len(r.Trainer) > 0 {
		sb.WriteString(", trainer")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Mirroring: %s, battery: %t\n", r.Mirroring, r.Battery))

	console := r.Console.String()
	switch r.Console {
	case CONSOLE_VS_SYSTEM:
		console += fmt.Sprintf(" (%s, %s)", r.VsPPU, r.VsHardware)
	case CONSOLE_EXTENDED:
		console += fmt.Sprintf(" (%s)", r.ExtendedConsole)
	}
	sb.WriteString(fmt.Sprintf("Console: %s, region: %s\n", console, r.Region))

	if r.Version == NES20 {
		sb.WriteString(fmt.Sprintf("PRG RAM: %d, PRG NVRAM: %d, CHR RAM: %d, CHR NVRAM: %d\n",
			r.PrgRAMSize, r.PrgNVRAMSize, r.ChrRAMSize, r.ChrNVRAMSize))
		sb.WriteString(fmt.Sprintf("Expansion device: %s, misc ROMs: %d\n", r.ExpansionDevice, r.MiscROMCount))
	} else if r.PrgRAMSize > 0 {
		sb.WriteString(fmt.Sprintf("PRG RAM: %d\n", r.PrgRAMSize))
	}

	sb.WriteString(fmt.Sprintf("CRC32: %08X", r.CRC32()))

	return sb.String()
}
