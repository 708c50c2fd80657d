package nesrom

import (
	"reflect"
	"testing"
)

func hdr(b ...byte) []byte {
	h := make([]byte, HEADER_SIZE)
	copy(h, b)
	return h
}

func TestParseHeader(t *testing.T) {
	cases := []struct {
		bytes      []byte
		wantHeader *header
	}{
		{
			[]byte{0x4e, 0x45, 0x53, 0x1a, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, &header{constant: "NES\x1a", prgSize: 2, chrSize: 1, flags6: 1, flags7: 0, flags8: 0, flags9: 0, flags10: 0, flags11: 0, flags12: 0, flags13: 0, flags14: 0, flags15: 0},
		},
		{
			[]byte{0x4e, 0x45, 0x53, 0x1a, 0x10, 0x00, 0x42, 0x28, 0x31, 0x01, 0x07, 0x70, 0x01, 0x00, 0x01, 0x02}, &header{constant: "NES\x1a", prgSize: 0x10, chrSize: 0, flags6: 0x42, flags7: 0x28, flags8: 0x31, flags9: 0x01, flags10: 0x07, flags11: 0x70, flags12: 0x01, flags13: 0x00, flags14: 0x01, flags15: 0x02},
		},
		{
			// "DiskDude!" over bytes 7-15 zeroes them all
			[]byte("NES\x1a\x08\x10\x41DiskDude!"), &header{constant: "NES\x1a", prgSize: 8, chrSize: 0x10, flags6: 0x41},
		},
	}
	for i, tc := range cases {

		if h := parseHeader(tc.bytes); !reflect.DeepEqual(h, tc.wantHeader) {
			t.Errorf("%d: Got %+v, wanted %+v", i, h, tc.wantHeader)
		}
	}
}

func TestHeaderBytes(t *testing.T) {
	b := []byte{0x4e, 0x45, 0x53, 0x1a, 0x10, 0x00, 0x42, 0x28, 0x31, 0x01, 0x07, 0x70, 0x01, 0x00, 0x01, 0x02}
	if got := parseHeader(b).bytes(); !reflect.DeepEqual(got, b) {
		t.Errorf("Got % x, want % x", got, b)
	}
}

func TestNES2Format(t *testing.T) {
	h := &header{}
	cases := []struct {
		constant           string
		flags7             uint8
		wantINES, wantNES2 bool
	}{
		{"NES\x1A", 0x08, true, true},
		{"NES\x1A", 0x0C, true, false},
		{"NES\x1A", 0x04, true, false},
		{"BOB\x1A", 0x10, false, false},
		{"BOB\x1A", 0x04, false, false},
		{"BOB\x1A", 0x08, false, false},
	}

	for i, tc := range cases {
		h.constant = tc.constant
		h.flags7 = tc.flags7
		if h.isINesFormat() != tc.wantINES || h.isNES2Format() != tc.wantNES2 {
			t.Errorf("%d: ines = %t want %t; nes2 = %t, want %t", i, h.isINesFormat(), tc.wantINES, h.isNES2Format(), tc.wantNES2)
		}
	}
}

func TestMapperNum(t *testing.T) {
	cases := []struct {
		flags6, flags7, flags8, flags12, flags13, flags14, flags15 uint8 // where the mapper num is assembled from
		want                                                       uint16
		wantSub                                                    uint8
	}{
		{0xEF, 0xF0, 0x00, 0, 0, 0, 0, 0xFE, 0}, // Not NES2, last 4 bytes 0
		{0xFF, 0xE0, 0x00, 0, 0, 0, 0, 0xEF, 0}, // Not NES2, last 4 bytes 0
		{0xC0, 0xB0, 0x00, 0, 1, 1, 1, 0x0C, 0}, // Not NES2, last 4 bytes not 0
		{0x1F, 0x20, 0x00, 0, 1, 1, 1, 0x01, 0}, // Not NES2, last 4 bytes not 0
		{0xFF, 0xF8, 0x00, 0, 0, 1, 1, 0xFF, 0}, // NES2, last 4 bytes not 0
		{0xAF, 0xD8, 0x00, 0, 0, 0, 0, 0xDA, 0}, // NES2, last 4 bytes 0
		{0x40, 0x28, 0x31, 0, 0, 0, 0, 0x124, 3},
		{0xF0, 0xF8, 0xFF, 0, 0, 0, 0, 0xFFF, 15},
		{0x40, 0x20, 0x31, 0, 0, 0, 0, 0x24, 0}, // byte 8 is PRG RAM for iNES
	}

	for i, tc := range cases {
		h := parseHeader(hdr('N', 'E', 'S', 0x1A, 0, 0, tc.flags6, tc.flags7, tc.flags8, 0, 0, 0, tc.flags12, tc.flags13, tc.flags14, tc.flags15))
		if got := h.mapperNum(); got != tc.want {
			t.Errorf("%d: Got %d, want %d", i, got, tc.want)
		}
		if got := h.submapper(); got != tc.wantSub {
			t.Errorf("%d: Got submapper %d, want %d", i, got, tc.wantSub)
		}
	}
}

func TestHasTrainer(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8 // where the trainer bit is stored
		want   bool
	}{
		{0xFF, true},
		{0x04, true},
		{0x0C, true},
		{0x0A, false},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.hasTrainer(); got != tc.want {
			t.Errorf("%d: Got %t, want %t", i, got, tc.want)
		}
	}
}

func TestConsole(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags7 uint8 // where the console type is stored
		want   Console
	}{
		{0x00, CONSOLE_NORMAL},
		{0x01, CONSOLE_VS_SYSTEM},
		{0x02, CONSOLE_PLAYCHOICE_10},
		{0x0B, CONSOLE_EXTENDED},
		{0xF1, CONSOLE_VS_SYSTEM},
	}

	for i, tc := range cases {
		h.flags7 = tc.flags7
		if got := h.console(); got != tc.want {
			t.Errorf("%d: Got %s, want %s", i, got, tc.want)
		}
	}
}

func TestMirroringMode(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8
		want   Mirroring
	}{
		{0xFF, MIRROR_FOUR_SCREEN},
		{0x00, MIRROR_HORIZONTAL},
		{0x01, MIRROR_VERTICAL},
		{0x08, MIRROR_FOUR_SCREEN},
		{0x09, MIRROR_FOUR_SCREEN},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.mirroringMode(); got != tc.want {
			t.Errorf("%d: Got %s, want %s.", i, got, tc.want)
		}
	}
}

func TestBatteryBackedSRAM(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8
		want   bool
	}{
		{0, false},
		{0xFD, false},
		{BATTERY_BACKED_SRAM, true},
		{BATTERY_BACKED_SRAM | TRAINER, true},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.hasBattery(); got != tc.want {
			t.Errorf("%d: Got %t, wanted %t", i, got, tc.want)
		}
	}
}

func TestROMSizes(t *testing.T) {
	cases := []struct {
		prgSize, chrSize, flags7, flags9 uint8
		wantPRG, wantCHR                 uint64
	}{
		{2, 1, 0x00, 0x00, 2 * PRG_BLOCK_SIZE, CHR_BLOCK_SIZE},
		{0xFF, 0xFF, 0x00, 0x00, 0xFF * PRG_BLOCK_SIZE, 0xFF * CHR_BLOCK_SIZE},
		{0x00, 0x00, 0x00, 0x11, 0, 0}, // iNES ignores byte 9 sizes
		{0x00, 0x00, 0x08, 0x21, 0x100 * PRG_BLOCK_SIZE, 0x200 * CHR_BLOCK_SIZE},
		{0xFF, 0xFF, 0x08, 0xEE, 0xEFF * PRG_BLOCK_SIZE, 0xEFF * CHR_BLOCK_SIZE},
		{(3 << 2) | 1, 0x02, 0x08, 0x0F, 24, 2 * CHR_BLOCK_SIZE},       // 2^3 * 3
		{0x04, (20 << 2) | 2, 0x08, 0xF0, 4 * PRG_BLOCK_SIZE, 5 << 20}, // 2^20 * 5
		{(26 << 2) | 3, (10 << 2), 0x08, 0xFF, 7 << 26, 1 << 10},
	}

	for i, tc := range cases {
		h := parseHeader(hdr('N', 'E', 'S', 0x1A, tc.prgSize, tc.chrSize, 0, tc.flags7, 0, tc.flags9))
		prg, err := h.prgROMSize()
		if err != nil || prg != tc.wantPRG {
			t.Errorf("%d: Got PRG %d (%v), want %d", i, prg, err, tc.wantPRG)
		}
		chr, err := h.chrROMSize()
		if err != nil || chr != tc.wantCHR {
			t.Errorf("%d: Got CHR %d (%v), want %d", i, chr, err, tc.wantCHR)
		}
	}
}

func TestRAMShift(t *testing.T) {
	cases := []struct {
		size      uint32
		wantShift uint8
		wantSize  uint32
	}{
		{0, 0, 0},
		{1, 1, 128},
		{64, 1, 128},
		{128, 1, 128},
		{129, 2, 256},
		{1000, 4, 1024},
		{8192, 7, 8192},
		{64 << 15, 15, 64 << 15},
	}

	for i, tc := range cases {
		shift, err := ramShift("test", tc.size)
		if err != nil {
			t.Errorf("%d: unexpected error: %v", i, err)
			continue
		}
		if shift != tc.wantShift || ramSize(shift) != tc.wantSize {
			t.Errorf("%d: Got shift %d (%d bytes), want %d (%d bytes)", i, shift, ramSize(shift), tc.wantShift, tc.wantSize)
		}
	}

	if _, err := ramShift("test", (64<<15)+1); err == nil {
		t.Errorf("expected an error for a RAM size above 64 << 15")
	}
}
