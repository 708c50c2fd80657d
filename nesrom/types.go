package nesrom

import "fmt"

// Version is the header format a ROM is read from or written as.
type Version uint8

const (
	INES Version = iota
	NES20
)

func (v Version) String() string {
	switch v {
	case INES:
		return "iNES"
	case NES20:
		return "NES 2.0"
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

// Mirroring is what CIRAM A10 is connected to.
// https://www.nesdev.org/wiki/Mirroring#Nametable_Mirroring
type Mirroring uint8

const (
	MIRROR_HORIZONTAL   Mirroring = iota // PPU A11
	MIRROR_VERTICAL                      // PPU A10
	MIRROR_ONE_SCREEN_A                  // ground
	MIRROR_ONE_SCREEN_B                  // Vcc
	MIRROR_FOUR_SCREEN                   // extra VRAM on the cart
	MIRROR_MAPPER_CONTROLLED
	MIRROR_UNKNOWN Mirroring = 0xFF
)

func (m Mirroring) String() string {
	switch m {
	case MIRROR_HORIZONTAL:
		return "horizontal"
	case MIRROR_VERTICAL:
		return "vertical"
	case MIRROR_ONE_SCREEN_A:
		return "one-screen A"
	case MIRROR_ONE_SCREEN_B:
		return "one-screen B"
	case MIRROR_FOUR_SCREEN:
		return "four-screen"
	case MIRROR_MAPPER_CONTROLLED:
		return "mapper controlled"
	case MIRROR_UNKNOWN:
		return "unknown"
	}
	return fmt.Sprintf("Mirroring(%d)", uint8(m))
}

// Region is the CPU/PPU timing the game expects.
type Region uint8

const (
	NTSC     Region = iota // RP2C02: North America, Japan, South Korea, Taiwan
	PAL                    // RP2C07: Western Europe, Australia
	MULTIPLE               // same ROM released in both, or detects timing itself
	DENDY                  // UMC 6527P and clones
)

func (r Region) String() string {
	switch r {
	case NTSC:
		return "NTSC"
	case PAL:
		return "PAL"
	case MULTIPLE:
		return "multiple"
	case DENDY:
		return "Dendy"
	}
	return fmt.Sprintf("Region(%d)", uint8(r))
}

type Console uint8

const (
	CONSOLE_NORMAL Console = iota
	CONSOLE_VS_SYSTEM
	CONSOLE_PLAYCHOICE_10
	CONSOLE_EXTENDED
)

func (c Console) String() string {
	switch c {
	case CONSOLE_NORMAL:
		return "NES/Famicom"
	case CONSOLE_VS_SYSTEM:
		return "Vs. System"
	case CONSOLE_PLAYCHOICE_10:
		return "PlayChoice-10"
	case CONSOLE_EXTENDED:
		return "extended"
	}
	return fmt.Sprintf("Console(%d)", uint8(c))
}

// VsPPU is the Vs. System PPU type, only meaningful for CONSOLE_VS_SYSTEM.
type VsPPU uint8

var vsPPUNames = []string{
	"RP2C03B", "RP2C03G", "RP2C04-0001", "RP2C04-0002", "RP2C04-0003",
	"RP2C04-0004", "RC2C03B", "RC2C03C", "RC2C05-01", "RC2C05-02",
	"RC2C05-03", "RC2C05-04", "RC2C05-05",
}

func (p VsPPU) String() string {
	return enumName(vsPPUNames, uint8(p), "VsPPU")
}

// VsHardware is the Vs. System protection/board type.
type VsHardware uint8

var vsHardwareNames = []string{
	"Vs. Unisystem",
	"Vs. Unisystem (RBI Baseball protection)",
	"Vs. Unisystem (TKO Boxing protection)",
	"Vs. Unisystem (Super Xevious protection)",
	"Vs. Unisystem (Vs. Ice Climber Japan protection)",
	"Vs. Dual System",
	"Vs. Dual System (Raid on Bungeling Bay protection)",
}

func (h VsHardware) String() string {
	return enumName(vsHardwareNames, uint8(h), "VsHardware")
}

// ExtendedConsole is only meaningful for CONSOLE_EXTENDED.
type ExtendedConsole uint8

var extendedConsoleNames = []string{
	"Regular NES/Famicom/Dendy",
	"Nintendo Vs. System",
	"PlayChoice-10",
	"Famiclone with decimal mode CPU",
	"V.R. Technology VT01 (monochrome)",
	"V.R. Technology VT01 (red/cyan STN)",
	"V.R. Technology VT02",
	"V.R. Technology VT03",
	"V.R. Technology VT09",
	"V.R. Technology VT32",
	"V.R. Technology VT369",
	"UMC UM6578",
}

func (e ExtendedConsole) String() string {
	return enumName(extendedConsoleNames, uint8(e), "ExtendedConsole")
}

// ExpansionDevice is the default input/expansion device.
// https://www.nesdev.org/wiki/NES_2.0#Default_Expansion_Device
type ExpansionDevice uint8

var expansionDeviceNames = []string{
	"unspecified",
	"standard controllers",
	"NES Four Score/Satellite",
	"Famicom Four Players Adapter",
	"Vs. System",
	"Vs. System (reversed inputs)",
	"Vs. Pinball (Japan)",
	"Vs. Zapper",
	"Zapper ($4017)",
	"two Zappers",
	"Bandai Hyper Shot Lightgun",
	"Power Pad side A",
	"Power Pad side B",
	"Family Trainer side A",
	"Family Trainer side B",
	"Arkanoid Vaus controller (NES)",
	"Arkanoid Vaus controller (Famicom)",
	"two Vaus controllers plus Famicom Data Recorder",
	"Konami Hyper Shot controller",
	"Coconuts Pachinko controller",
	"Exciting Boxing punching bag",
	"Jissen Mahjong controller",
	"Party Tap",
	"Oeka Kids tablet",
	"Sunsoft Barcode Battler",
	"Miracle Piano keyboard",
	"Pokkun Moguraa",
	"Top Rider",
	"double-fisted",
	"Famicom 3D System",
	"Doremikko keyboard",
	"R.O.B. Gyro Set",
	"Famicom Data Recorder",
	"ASCII Turbo File",
	"IGS Storage Battle Box",
	"Family BASIC keyboard plus Famicom Data Recorder",
	"Dongda PEC-586 keyboard",
	"Bit Corp. Bit-79 keyboard",
	"Subor keyboard",
	"Subor keyboard plus mouse (3x8-bit)",
	"Subor keyboard plus mouse (24-bit)",
	"SNES mouse ($4017.d0)",
	"multicart",
	"two SNES controllers",
	"RacerMate bicycle",
	"U-Force",
	"R.O.B. Stack-Up",
	"City Patrolman lightgun",
	"Sharp C1 cassette interface",
	"standard controller (swapped inputs)",
	"Excalibor Sudoku pad",
	"ABL Pinball",
	"Golden Nugget Casino extra buttons",
}

func (d ExpansionDevice) String() string {
	return enumName(expansionDeviceNames, uint8(d), "ExpansionDevice")
}

func enumName(names []string, v uint8, typ string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}
