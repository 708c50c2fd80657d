// package nesrom implements support for the NES (iNES, NES2) ROM format
// https://www.nesdev.org/wiki/INES, https://www.nesdev.org/wiki/NES_2.0
package nesrom

import (
	"math/bits"
)

type header struct {
	// Bytes 0-3
	// Constant $4E $45 $53 $1A (ASCII "NES" followed by MS-DOS end-of-file)
	constant string
	// Byte 4
	// PRG ROM size LSB (16 KB units, or exponent-multiplier form)
	prgSize uint8
	// Byte 5
	// CHR ROM size LSB (8 KB units, or exponent-multiplier form)
	chrSize uint8
	// Byte 6
	// Flags 6 – Mapper D0..D3, mirroring, battery, trainer
	flags6 uint8
	// Byte 7
	// Flags 7 – Mapper D4..D7, console type, NES 2.0 identifier
	flags7 uint8
	// Byte 8
	// NES 2.0: Mapper D8..D11, submapper. iNES: PRG-RAM size
	flags8 uint8
	// Byte 9
	// NES 2.0: PRG/CHR ROM size MSB. iNES: TV system
	flags9 uint8
	// Byte 10
	// PRG-RAM/EEPROM size shift counts
	flags10 uint8
	// Byte 11
	// CHR-RAM size shift counts
	flags11 uint8
	// Byte 12
	// CPU/PPU timing
	flags12 uint8
	// Byte 13
	// Vs. System type or extended console type
	flags13 uint8
	// Byte 14
	// Miscellaneous ROMs
	flags14 uint8
	// Byte 15
	// Default expansion device
	flags15 uint8
}

const (
	HEADER_SIZE = 16
	INES_MAGIC  = "NES\x1A"
)

// flag6 flag identifiers - the top 4 bits are the lower nibble of the mapper number
const (
	// 0: horizontal (vertical arrangement) (CIRAM A10 = PPU A11)
	// 1: vertical (horizontal arrangement) (CIRAM A10 = PPU A10)
	MIRRORING = 1 << 0
	// 1: Cartridge contains battery-backed PRG RAM ($6000-7FFF)
	// or other persistent memory
	BATTERY_BACKED_SRAM = 1 << 1
	// 1: 512-byte trainer at $7000-$71FF (stored before PRG data)
	TRAINER = 1 << 2
	// 1: Ignore mirroring control or above mirroring bit; instead
	// provide four-screen VRAM
	IGNORE_MIRRORING = 1 << 3
)

// flag7 flag identifiers - the top 4 bits are the middle nibble of the mapper number
const (
	CONSOLE_TYPE  = 0x03
	VS_UNISYSTEM  = 0x01
	PLAYCHOICE_10 = 0x02
	NES2_MASK     = 0x0C
	NES2_ID       = 0x08
)

// flags9 flag identifiers for iNES headers
const (
	TV_SYSTEM = 0x01
)

const (
	// Size nibble value that selects the exponent-multiplier form.
	EXPONENT_SENTINEL = 0x0F
	// Largest unit count written linearly. Above this the high nibble
	// would collide with EXPONENT_SENTINEL.
	MAX_LINEAR_UNITS = 0xEFF
	// RAM sizes are stored as 64 << shift with a 4 bit shift.
	RAM_SHIFT_BASE = 64
	MAX_RAM_SHIFT  = 15
	// iNES byte 8 counts PRG RAM in 8 KB units.
	PRG_RAM_UNIT = 8192
)

func (h *header) isINesFormat() bool {
	return h.constant == INES_MAGIC
}

func (h *header) isNES2Format() bool {
	return h.isINesFormat() && ((h.flags7 & NES2_MASK) == NES2_ID)
}

// isArchaic returns true if bytes 7-15 of the header can't be trusted.
// Older versions of the iNES emulator ignored bytes 7-15, and several
// ROM management tools wrote messages in there. Commonly, these will
// be filled with "DiskDude!", which results in 64 being added to the
// mapper number. If the last 4 bytes are not all zero, and the header
// is not marked for NES 2.0 format, all of bytes 7-15 are garbage.
func (h *header) isArchaic() bool {
	if h.isNES2Format() {
		return false
	}

	return h.flags12|h.flags13|h.flags14|h.flags15 != 0
}

// mapperNum returns the mapper number which is constructed of the
// upper 4 bits of flag6, the upper 4 bits of flag7 and, for NES 2.0, the
// lower 4 bits of flag8.
func (h *header) mapperNum() uint16 {
	mn := uint16(h.flags6>>4) | uint16(h.flags7&0xF0)
	if h.isNES2Format() {
		mn |= uint16(h.flags8&0x0F) << 8
	}
	return mn
}

func (h *header) submapper() uint8 {
	if h.isNES2Format() {
		return h.flags8 >> 4
	}
	return 0
}

// mirroringMode returns an identifier indicating which mirroring mode
// the PPU should use during rendering.
// https://www.nesdev.org/wiki/INES#Nametable_Mirroring
func (h *header) mirroringMode() Mirroring {
	if h.flags6&IGNORE_MIRRORING > 0 {
		return MIRROR_FOUR_SCREEN
	}

	return Mirroring(h.flags6 & MIRRORING) // 0 = horizonal, 1 = vertical
}

// hasTrainer indicates whether the NES ROM contains a Trainer
func (h *header) hasTrainer() bool {
	return h.flags6&TRAINER == TRAINER
}

func (h *header) hasBattery() bool {
	return h.flags6&BATTERY_BACKED_SRAM > 0
}

func (h *header) console() Console {
	return Console(h.flags7 & CONSOLE_TYPE)
}

// prgROMSize returns the size of PRG ROM in bytes.
func (h *header) prgROMSize() (uint64, error) {
	if !h.isNES2Format() {
		return uint64(h.prgSize) * PRG_BLOCK_SIZE, nil
	}
	return romSize("prg rom", h.prgSize, h.flags9&0x0F, PRG_BLOCK_SIZE)
}

// chrROMSize returns the size of CHR ROM in bytes. Zero means the board
// uses CHR RAM.
func (h *header) chrROMSize() (uint64, error) {
	if !h.isNES2Format() {
		return uint64(h.chrSize) * CHR_BLOCK_SIZE, nil
	}
	return romSize("chr rom", h.chrSize, h.flags9>>4, CHR_BLOCK_SIZE)
}

// romSize decodes a NES 2.0 size from its LSB and MSB nibble.
func romSize(field string, lsb, msb uint8, unit uint64) (uint64, error) {
	if msb != EXPONENT_SENTINEL {
		return (uint64(msb)<<8 | uint64(lsb)) * unit, nil
	}

	exponent, multiplier := lsb>>2, lsb&0x03
	// Keeps DecodeSize clear of overflow; anything this big is rejected
	// below anyway.
	if exponent > MAX_EXPONENT-3 {
		return 0, decodeErr(field, ErrSizeTooLarge, "exponent %d", exponent)
	}
	return DecodeSize(exponent, multiplier), nil
}

// ramSize converts a NES 2.0 shift count to bytes.
func ramSize(shift uint8) uint32 {
	if shift == 0 {
		return 0
	}
	return RAM_SHIFT_BASE << shift
}

// ramShift is the inverse of ramSize, rounding up to the next shift
// count.
func ramShift(field string, size uint32) (uint8, error) {
	if size == 0 {
		return 0, nil
	}

	shift := max(1, bits.Len32(size-1)-6)
	if shift > MAX_RAM_SHIFT {
		return 0, encodeErr(field, ErrSizeTooLarge, "%d bytes", size)
	}
	return uint8(shift), nil
}

func parseHeader(hbytes []byte) *header {
	h := &header{
		constant: string(hbytes[0:4]),
		prgSize:  uint8(hbytes[4]),
		chrSize:  uint8(hbytes[5]),
		flags6:   uint8(hbytes[6]),
		flags7:   uint8(hbytes[7]),
		flags8:   uint8(hbytes[8]),
		flags9:   uint8(hbytes[9]),
		flags10:  uint8(hbytes[10]),
		flags11:  uint8(hbytes[11]),
		flags12:  uint8(hbytes[12]),
		flags13:  uint8(hbytes[13]),
		flags14:  uint8(hbytes[14]),
		flags15:  uint8(hbytes[15]),
	}

	if h.isArchaic() {
		h.flags7, h.flags8, h.flags9, h.flags10, h.flags11 = 0, 0, 0, 0, 0
		h.flags12, h.flags13, h.flags14, h.flags15 = 0, 0, 0, 0
	}

	return h
}

func (h *header) bytes() []byte {
	return []byte{
		h.constant[0], h.constant[1], h.constant[2], h.constant[3],
		h.prgSize, h.chrSize,
		h.flags6, h.flags7, h.flags8, h.flags9, h.flags10,
		h.flags11, h.flags12, h.flags13, h.flags14, h.flags15,
	}
}

// apply copies the decoded header fields into r. Segment data is read
// separately.
func (h *header) apply(r *ROM) {
	r.Version = INES
	if h.isNES2Format() {
		r.Version = NES20
	}

	r.Mapper = h.mapperNum()
	r.Submapper = h.submapper()
	r.Mirroring = h.mirroringMode()
	r.Battery = h.hasBattery()
	r.Console = h.console()

	if r.Version == INES {
		r.PrgRAMSize = uint32(h.flags8) * PRG_RAM_UNIT
		if h.flags9&TV_SYSTEM != 0 {
			r.Region = PAL
		}
		return
	}

	r.PrgRAMSize = ramSize(h.flags10 & 0x0F)
	r.ChrRAMSize = ramSize(h.flags11 & 0x0F)
	r.SetPrgNVRAMSize(ramSize(h.flags10 >> 4))
	r.SetChrNVRAMSize(ramSize(h.flags11 >> 4))

	r.Region = Region(h.flags12 & 0x03)
	switch r.Console {
	case CONSOLE_VS_SYSTEM:
		r.VsPPU = VsPPU(h.flags13 & 0x0F)
		r.VsHardware = VsHardware(h.flags13 >> 4)
	case CONSOLE_EXTENDED:
		r.ExtendedConsole = ExtendedConsole(h.flags13 & 0x0F)
	}
	r.MiscROMCount = h.flags14 & 0x03
	r.ExpansionDevice = ExpansionDevice(h.flags15 & 0x3F)
}

// encodeHeader builds the header for r and returns it with the padded
// sizes of the PRG and CHR segments.
func encodeHeader(r *ROM) (h *header, prgLen, chrLen uint64, err error) {
	if n := len(r.Trainer); n != 0 && n != TRAINER_SIZE {
		return nil, 0, 0, encodeErr("trainer", ErrBadTrainer, "%d bytes", n)
	}
	if r.Console > CONSOLE_EXTENDED {
		return nil, 0, 0, encodeErr("console", ErrUnsupportedField, "%s", r.Console)
	}

	h = &header{constant: INES_MAGIC}

	switch r.Mirroring {
	case MIRROR_VERTICAL:
		h.flags6 |= MIRRORING
	case MIRROR_FOUR_SCREEN:
		h.flags6 |= IGNORE_MIRRORING
	case MIRROR_HORIZONTAL, MIRROR_MAPPER_CONTROLLED, MIRROR_UNKNOWN:
		// The header has no way to say these; the mirroring bit is left
		// clear.
	default:
		return nil, 0, 0, encodeErr("mirroring", ErrUnsupportedField, "%s", r.Mirroring)
	}
	if r.Battery || r.PrgNVRAMSize > 0 || r.ChrNVRAMSize > 0 {
		h.flags6 |= BATTERY_BACKED_SRAM
	}
	if len(r.Trainer) > 0 {
		h.flags6 |= TRAINER
	}
	h.flags6 |= uint8(r.Mapper&0x0F) << 4
	h.flags7 |= uint8(r.Mapper&0xF0) | uint8(r.Console)

	switch r.Version {
	case INES:
		prgLen, chrLen, err = encodeINES(r, h)
	case NES20:
		prgLen, chrLen, err = encodeNES2(r, h)
	default:
		err = encodeErr("version", ErrUnsupportedField, "%s", r.Version)
	}
	if err != nil {
		return nil, 0, 0, err
	}

	return h, prgLen, chrLen, nil
}

func encodeINES(r *ROM, h *header) (prgLen, chrLen uint64, err error) {
	switch {
	case r.Console == CONSOLE_EXTENDED:
		return 0, 0, encodeErr("console", ErrUnsupportedField, "extended console type needs NES 2.0")
	case r.Mapper > 0xFF:
		return 0, 0, encodeErr("mapper", ErrUnsupportedField, "mapper %d needs NES 2.0", r.Mapper)
	case r.Submapper != 0:
		return 0, 0, encodeErr("submapper", ErrUnsupportedField, "submapper %d needs NES 2.0", r.Submapper)
	case r.MiscROMCount != 0:
		return 0, 0, encodeErr("misc rom count", ErrUnsupportedField, "misc ROMs need NES 2.0")
	case len(r.MiscROM) != 0:
		return 0, 0, encodeErr("misc rom", ErrInconsistentMiscROM, "misc ROMs need NES 2.0")
	case r.Region != NTSC && r.Region != PAL:
		return 0, 0, encodeErr("region", ErrUnsupportedField, "%s region needs NES 2.0", r.Region)
	case r.PrgRAMSize%PRG_RAM_UNIT != 0 || r.PrgRAMSize/PRG_RAM_UNIT > 0xFF:
		return 0, 0, encodeErr("prg ram", ErrUnsupportedField, "%d bytes isn't a count of 8 KB units", r.PrgRAMSize)
	}

	prgUnits := units(len(r.PRG), PRG_BLOCK_SIZE)
	if prgUnits > 0xFF {
		return 0, 0, encodeErr("prg rom", ErrSizeTooLarge, "%d bytes needs NES 2.0", len(r.PRG))
	}
	chrUnits := units(len(r.CHR), CHR_BLOCK_SIZE)
	if chrUnits > 0xFF {
		return 0, 0, encodeErr("chr rom", ErrSizeTooLarge, "%d bytes needs NES 2.0", len(r.CHR))
	}

	h.prgSize = uint8(prgUnits)
	h.chrSize = uint8(chrUnits)
	h.flags8 = uint8(r.PrgRAMSize / PRG_RAM_UNIT)
	if r.Region == PAL {
		h.flags9 |= TV_SYSTEM
	}

	return prgUnits * PRG_BLOCK_SIZE, chrUnits * CHR_BLOCK_SIZE, nil
}

func encodeNES2(r *ROM, h *header) (prgLen, chrLen uint64, err error) {
	switch {
	case r.Mapper > 0xFFF:
		return 0, 0, encodeErr("mapper", ErrUnsupportedField, "mapper %d", r.Mapper)
	case r.Submapper > 0x0F:
		return 0, 0, encodeErr("submapper", ErrUnsupportedField, "submapper %d", r.Submapper)
	case r.Region > DENDY:
		return 0, 0, encodeErr("region", ErrUnsupportedField, "%s", r.Region)
	case r.MiscROMCount > 0x03:
		return 0, 0, encodeErr("misc rom count", ErrUnsupportedField, "%d", r.MiscROMCount)
	case r.MiscROMCount == 0 && len(r.MiscROM) > 0:
		return 0, 0, encodeErr("misc rom", ErrInconsistentMiscROM, "count is zero but %d bytes present", len(r.MiscROM))
	case r.MiscROMCount > 0 && len(r.MiscROM) == 0:
		return 0, 0, encodeErr("misc rom", ErrInconsistentMiscROM, "count is %d but no data present", r.MiscROMCount)
	case r.ExpansionDevice > 0x3F:
		return 0, 0, encodeErr("expansion device", ErrUnsupportedField, "%d", r.ExpansionDevice)
	}

	h.flags7 |= NES2_ID
	h.flags8 = uint8(r.Mapper>>8)&0x0F | r.Submapper<<4

	var msb uint8
	h.prgSize, msb, prgLen, err = encodeROMSize("prg rom", len(r.PRG), PRG_BLOCK_SIZE)
	if err != nil {
		return 0, 0, err
	}
	h.flags9 |= msb
	h.chrSize, msb, chrLen, err = encodeROMSize("chr rom", len(r.CHR), CHR_BLOCK_SIZE)
	if err != nil {
		return 0, 0, err
	}
	h.flags9 |= msb << 4

	shifts := []struct {
		field string
		size  uint32
		dst   *uint8
		pos   uint
	}{
		{"prg ram", r.PrgRAMSize, &h.flags10, 0},
		{"prg nvram", r.PrgNVRAMSize, &h.flags10, 4},
		{"chr ram", r.ChrRAMSize, &h.flags11, 0},
		{"chr nvram", r.ChrNVRAMSize, &h.flags11, 4},
	}
	for _, s := range shifts {
		shift, err := ramShift(s.field, s.size)
		if err != nil {
			return 0, 0, err
		}
		*s.dst |= shift << s.pos
	}

	h.flags12 = uint8(r.Region)
	switch r.Console {
	case CONSOLE_VS_SYSTEM:
		if r.VsPPU > 0x0F || r.VsHardware > 0x0F {
			return 0, 0, encodeErr("vs system", ErrUnsupportedField, "ppu %d, hardware %d", r.VsPPU, r.VsHardware)
		}
		h.flags13 = uint8(r.VsPPU) | uint8(r.VsHardware)<<4
	case CONSOLE_EXTENDED:
		if r.ExtendedConsole > 0x0F {
			return 0, 0, encodeErr("extended console", ErrUnsupportedField, "%d", r.ExtendedConsole)
		}
		h.flags13 = uint8(r.ExtendedConsole)
	}
	h.flags14 = r.MiscROMCount
	h.flags15 = uint8(r.ExpansionDevice)

	return prgLen, chrLen, nil
}

// encodeROMSize returns the LSB byte and MSB nibble for a NES 2.0 ROM size
// along with the size the data must be padded to.
func encodeROMSize(field string, size int, unit uint64) (lsb, msb uint8, padded uint64, err error) {
	if n := units(size, unit); n <= MAX_LINEAR_UNITS {
		return uint8(n), uint8(n >> 8), n * unit, nil
	}

	exponent, multiplier, padded := EncodeSize(uint64(size))
	if exponent > MAX_EXPONENT || padded > MAX_SEGMENT_SIZE {
		return 0, 0, 0, encodeErr(field, ErrSizeTooLarge, "%d bytes", size)
	}
	return exponent<<2 | multiplier, EXPONENT_SENTINEL, padded, nil
}

// units returns how many blocks of unit bytes are needed to hold size
// bytes.
func units(size int, unit uint64) uint64 {
	return (uint64(size) + unit - 1) / unit
}
