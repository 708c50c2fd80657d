package mappers

// https://www.nesdev.org/wiki/Mapper
var boards = []Board{
	{0, "NROM"},
	{1, "MMC1"},
	{2, "UxROM"},
	{3, "CNROM"},
	{4, "MMC3"},
	{5, "MMC5"},
	{7, "AxROM"},
	{9, "MMC2"},
	{10, "MMC4"},
	{11, "Color Dreams"},
	{13, "CPROM"},
	{16, "Bandai FCG"},
	{18, "Jaleco SS88006"},
	{19, "Namco 163"},
	{21, "VRC4a/VRC4c"},
	{22, "VRC2a"},
	{23, "VRC2b/VRC4e"},
	{24, "VRC6a"},
	{25, "VRC4b/VRC4d"},
	{26, "VRC6b"},
	{30, "UNROM 512"},
	{32, "Irem G-101"},
	{33, "Taito TC0190"},
	{34, "BNROM/NINA-001"},
	{48, "Taito TC0690"},
	{64, "RAMBO-1"},
	{65, "Irem H3001"},
	{66, "GxROM"},
	{67, "Sunsoft-3"},
	{68, "Sunsoft-4"},
	{69, "Sunsoft FME-7"},
	{70, "Bandai 74161"},
	{71, "Camerica BF909x"},
	{73, "VRC3"},
	{75, "VRC1"},
	{79, "NINA-03/NINA-06"},
	{85, "VRC7"},
	{87, "Jaleco J87"},
	{94, "UN1ROM"},
	{105, "NES-EVENT"},
	{118, "TxSROM"},
	{119, "TQROM"},
	{152, "Bandai 74161 (one-screen)"},
	{153, "Bandai LZ93D50 + SRAM"},
	{157, "Bandai Datach"},
	{159, "Bandai LZ93D50 + 24C01"},
	{180, "UNROM (Crazy Climber)"},
	{184, "Sunsoft-1"},
	{185, "CNROM with protection"},
	{206, "DxROM/Namco 118"},
	{207, "Taito X1-005 (alternate mirroring)"},
	{209, "J.Y. Company (extended mirroring)"},
	{210, "Namco 175/340"},
	{228, "Action 52"},
}

func init() {
	for _, b := range boards {
		RegisterMapper(b.ID, b.Name)
	}
}
