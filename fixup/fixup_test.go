package fixup

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowEntry(t *testing.T) {
	cases := []struct {
		r    row
		want Entry
	}{
		{row{0x1, -1, mirrorKeep}, Entry{CRC: 0x1, Mapper: -1, Mirroring: KeepMirroring}},
		{row{0x2, 4, mirrorVertical}, Entry{CRC: 0x2, Mapper: 4, Mirroring: ForceVertical}},
		{row{0x3, NO_CHR | 2, mirrorHorizontal}, Entry{CRC: 0x3, Mapper: 2, DropCHR: true, Mirroring: ForceHorizontal}},
		{row{0x4, 157, mirrorNotFourScrn}, Entry{CRC: 0x4, Mapper: 157, Mirroring: NotFourScreen}},
		{row{0x5, -1, mirrorFourScreen}, Entry{CRC: 0x5, Mapper: -1, Mirroring: ForceFourScreen}},
	}

	for i, tc := range cases {
		assert.Equalf(t, tc.want, tc.r.entry(), "case %d", i)
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	db := New([]Entry{
		{CRC: 0xAAAA, Mapper: 1},
		{CRC: 0xBBBB, Mapper: 2},
		{CRC: 0xAAAA, Mapper: 3},
	}, nil)

	e, ok := db.Lookup(0xAAAA)
	require.True(t, ok)
	assert.Equal(t, 1, e.Mapper)
	assert.Equal(t, 3, db.Len())

	_, ok = db.Lookup(0xCCCC)
	assert.False(t, ok)
}

func TestNewCopiesEntries(t *testing.T) {
	entries := []Entry{{CRC: 1, Mapper: 1}}
	db := New(entries, nil)
	entries[0].Mapper = 99

	e, _ := db.Lookup(1)
	assert.Equal(t, 1, e.Mapper)
}

func TestPartialMD5(t *testing.T) {
	sum := [16]byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x85, 0x4d, 0x79, 0x47, 0xa3, 0x17, 0x7f, 0x57,
	}
	assert.Equal(t, uint64(0x854d7947a3177f57), PartialMD5(sum))

	db := New(nil, []uint64{0x854d7947a3177f57})
	assert.True(t, db.NeedsBattery(sum))

	sum[15] = 0
	assert.False(t, db.NeedsBattery(sum))
}

func TestDefault(t *testing.T) {
	db := Default()
	require.NotNil(t, db)
	assert.Same(t, db, Default())
	assert.Equal(t, len(corrections), db.Len())

	e, ok := db.Lookup(0xe62e3382)
	require.True(t, ok)
	assert.Equal(t, 71, e.Mapper)
	assert.Equal(t, KeepMirroring, e.Mirroring)

	e, ok = db.Lookup(0x983d8175)
	require.True(t, ok)
	assert.Equal(t, 157, e.Mapper)
	assert.Equal(t, NotFourScreen, e.Mirroring)

	for _, b := range batteryCarts {
		var sum [16]byte
		for i := 0; i < 8; i++ {
			sum[15-i] = byte(b >> (8 * i))
		}
		assert.Truef(t, db.NeedsBattery(sum), "%016x", b)
	}
}

func TestDefaultConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	dbs := make([]*Database, 8)
	for i := range dbs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dbs[i] = Default()
		}(i)
	}
	wg.Wait()

	for _, db := range dbs {
		assert.Same(t, dbs[0], db)
	}
}

func TestDirectiveString(t *testing.T) {
	assert.Equal(t, "not four-screen", NotFourScreen.String())
	assert.Equal(t, "keep", KeepMirroring.String())
	assert.Equal(t, "unknown", Directive(99).String())
}
