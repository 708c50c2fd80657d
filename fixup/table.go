package fixup

// NO_CHR is OR'ed into a row's mapper to say the board has CHR RAM only.
const NO_CHR = 0x1000

// Row mirroring codes.
const (
	mirrorKeep        = -1
	mirrorHorizontal  = 0
	mirrorVertical    = 1
	mirrorFourScreen  = 2
	mirrorNotFourScrn = 8
)

// row is the compact form the correction table is written in: mapper -1
// means no mapper change.
type row struct {
	crc    uint32
	mapper int
	mirror int
}

func (r row) entry() Entry {
	e := Entry{CRC: r.crc, Mapper: -1}
	if r.mapper >= 0 {
		e.DropCHR = r.mapper&NO_CHR != 0
		e.Mapper = r.mapper &^ NO_CHR
	}

	switch r.mirror {
	case mirrorHorizontal:
		e.Mirroring = ForceHorizontal
	case mirrorVertical:
		e.Mirroring = ForceVertical
	case mirrorFourScreen:
		e.Mirroring = ForceFourScreen
	case mirrorNotFourScrn:
		e.Mirroring = NotFourScreen
	default:
		e.Mirroring = KeepMirroring
	}

	return e
}

// Derived from the FCEUX ines-correct table. Order matters: the first row
// matching a CRC wins.
var corrections = []row{
	{0xaf5d7aa2, -1, mirrorHorizontal},   // Clu Clu Land
	{0xcfb224e6, 222, mirrorVertical},    // Dragon Ninja (J)
	{0x4f2f1846, -1, mirrorVertical},     // Famista '89 - Kaimaku Han!!
	{0x82f204ae, -1, mirrorVertical},     // Liang Shan Ying Xiong
	{0x9cbadc25, -1, mirrorVertical},     // Just Breed
	{0x6e68e31a, 16, mirrorNotFourScrn},  // Dragon Ball 3
	{0x3f15d20d, 153, mirrorNotFourScrn}, // Famicom Jump 2
	{0x983d8175, 157, mirrorNotFourScrn}, // Datach Battle Rush
	{0x894efdbc, 157, mirrorNotFourScrn}, // Datach Crayon Shin Chan
	{0x19e81461, 157, mirrorNotFourScrn}, // Datach Dragon Ball Z
	{0xbe06853f, 157, mirrorNotFourScrn}, // Datach J-League
	{0x0be0a328, 157, mirrorNotFourScrn}, // Datach SD Gundam Wars
	{0x5b457641, 157, mirrorNotFourScrn}, // Datach Ultraman Club
	{0xf51a7f46, 157, mirrorNotFourScrn}, // Datach Yuu Yuu Hakusho
	{0xe62e3382, 71, mirrorKeep},         // MiG-29 Soviet Fighter
	{0x21a653c7, 4, mirrorKeep},          // Super Sky Kid
	{0xdd4d9a62, 209, mirrorKeep},        // Shin Samurai Spirits 2
	{0x063b1151, 209, mirrorKeep},        // Power Rangers 4
	{0xdd8ced31, 209, mirrorKeep},        // Power Rangers 3
	{0x0c47946d, 210, mirrorVertical},    // Chibi Maruko Chan
	{0xbd523011, 210, mirrorVertical},    // Dream Master
	{0xc247cc80, 210, mirrorVertical},    // Family Circuit '91
	{0x6ec51de5, 210, mirrorVertical},    // Famista '92
	{0xadffd64f, 210, mirrorVertical},    // Famista '93
	{0x429103c9, 210, mirrorVertical},    // Famista '94
	{0x81b7f1a8, 210, mirrorVertical},    // Heisei Tensai Bakabon
	{0x2447e03b, 210, mirrorVertical},    // Top Striker
	{0x1dc0f740, 210, mirrorVertical},    // Wagyan Land 2
	{0xd323b806, 210, mirrorVertical},    // Wagyan Land 3
	{0x07eb2c12, 208, mirrorKeep},        // Street Fighter IV
	{0x96ce586e, 189, mirrorNotFourScrn}, // Street Fighter 2 Yoko
	{0x7678f1d5, 207, mirrorNotFourScrn}, // Fudou Myouou Den
	{0x276237b3, 206, mirrorHorizontal},  // Karnov
	{0x4e1c1e3c, 206, mirrorHorizontal},  // Karnov
	{0x3d1c3137, 78, mirrorNotFourScrn},  // Uchuusen - Cosmo Carrier
}

// Last 8 bytes of the MD5 of PRG+CHR, see PartialMD5.
var batteryCarts = []uint64{
	0xc04361e499748382, // AD&D Heroes of the Lance
	0xb72ee2337ced5792, // AD&D Hillsfar
	0x2b7103b7a27bd72f, // AD&D Pool of Radiance
	0x498c10dc463cfe95, // Battle Fleet
	0x854d7947a3177f57, // Crystalis
	0x4a1f5336b86851b6, // Dragon Warrior
	0xb0bcc02c843c1b79, // Dragon Warrior
	0x2dcf3a98c7937c22, // Dragon Warrior 2
	0x733026b6b72f2470, // Dragon Warrior 3
	0x98e55e09dfcc7533, // Dragon Warrior 4
	0x6917ffcaca2d8466, // Famista '90
	0x8da46db592a1fcf4, // Faria
	0xedba17a2c4608d20, // Final Fantasy
	0x91a6846d3202e3d6, // Final Fantasy
	0x012df596e2b31174, // Final Fantasy 1+2
	0xf6b359a720549ecd, // Final Fantasy 2
	0x5a30da1d9b4af35d, // Final Fantasy 3
	0xd63dcc68c2b20adc, // Final Fantasy (J)
	0x2ee3417ba8b69706, // Hydlide 3
	0xebbce5a54cf3ecc0, // Just Breed
	0x6a858da551ba239e, // Kaijuu Monogatari
	0x2db8f5d16c10b925, // Kyonshiizu 2
	0x04a31647de80fdab, // Legend of Zelda
	0x94b9484862a26cba, // Legend of Zelda
	0xa40666740b7d22fe, // Mindseeker
	0x82000965f04a71bb, // Mirai Shinwa Jarvas
	0x77b811b2760104b9, // Mouryou Senki Madara
	0x11b69122efe86e8c, // RPG Jinsei Game
	0x9aa1dc16c05e7de5, // StarTropics
	0x1b084107d0878bd0, // StarTropics 2
	0xa70b495314f4d075, // Ys 3
	0x836c0ff4f3e06e45, // Zelda 2
}
