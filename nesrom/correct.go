package nesrom

import (
	"strings"

	"github.com/bdwalton/nesfile/fixup"
)

// Correction records which fields CorrectRom changed.
type Correction uint8

const (
	MapperChanged Correction = 1 << iota
	MirroringChanged
	BatteryChanged
	ChrCleared
)

func (c Correction) String() string {
	if c == 0 {
		return "none"
	}

	var parts []string
	for _, f := range []struct {
		flag Correction
		name string
	}{
		{MapperChanged, "mapper"},
		{MirroringChanged, "mirroring"},
		{BatteryChanged, "battery"},
		{ChrCleared, "chr cleared"},
	} {
		if c&f.flag != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, ", ")
}

// CorrectRom fixes r using the built-in database of known bad dumps.
func (r *ROM) CorrectRom() Correction {
	return r.CorrectWith(fixup.Default())
}

// CorrectWith fixes the mapper, mirroring, CHR and battery of r if its
// checksums are in db and returns what was changed. Running it again on
// the corrected ROM changes nothing.
func (r *ROM) CorrectWith(db *fixup.Database) Correction {
	var c Correction

	if e, ok := db.Lookup(r.CRC32()); ok {
		if e.Mapper >= 0 && r.Mapper != uint16(e.Mapper) {
			r.Mapper = uint16(e.Mapper)
			c |= MapperChanged
		}
		if e.DropCHR && len(r.CHR) > 0 {
			r.CHR = nil
			c |= ChrCleared
		}
		if m, ok := mirroringFor(e.Mirroring, r.Mirroring); ok && m != r.Mirroring {
			r.Mirroring = m
			c |= MirroringChanged
		}
	}

	// Uses the corrected data; CHR may have just been dropped.
	if !r.Battery && db.NeedsBattery(r.MD5()) {
		r.Battery = true
		c |= BatteryChanged
	}

	return c
}

// mirroringFor returns the mirroring a directive asks for, given the
// current value.
func mirroringFor(d fixup.Directive, cur Mirroring) (Mirroring, bool) {
	switch d {
	case fixup.ForceHorizontal:
		return MIRROR_HORIZONTAL, true
	case fixup.ForceVertical:
		return MIRROR_VERTICAL, true
	case fixup.ForceFourScreen:
		return MIRROR_FOUR_SCREEN, true
	case fixup.NotFourScreen:
		if cur == MIRROR_FOUR_SCREEN {
			return MIRROR_HORIZONTAL, true
		}
	}
	return cur, false
}
