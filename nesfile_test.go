package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdwalton/nesfile/nesrom"
	"github.com/bdwalton/nesfile/romfile"
)

func testROM(t *testing.T, mapper uint16) []byte {
	t.Helper()
	r := nesrom.New()
	r.Mapper = mapper
	r.Mirroring = nesrom.MIRROR_VERTICAL
	r.PRG = bytes.Repeat([]byte{byte(mapper)}, nesrom.PRG_BLOCK_SIZE)
	r.CHR = bytes.Repeat([]byte{0x55}, nesrom.CHR_BLOCK_SIZE)
	data, err := r.ToBytes()
	require.NoError(t, err)
	return data
}

func gz(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestProcess(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "roms/mmc3.nes.gz", gz(t, testROM(t, 4)), 0o644))
	l := romfile.NewLoader(fs)

	out, err := process(l, "roms/mmc3.nes.gz", options{nes2: true, fix: true, outDir: "fixed"})
	require.NoError(t, err)
	assert.Contains(t, out, "roms/mmc3.nes.gz:")
	assert.Contains(t, out, "Corrections: none")
	assert.Contains(t, out, "Mapper: 4 (MMC3)")
	assert.Contains(t, out, "NES 2.0")
	assert.Contains(t, out, "Wrote "+filepath.Join("fixed", "mmc3.nes"))

	data, err := afero.ReadFile(fs, filepath.Join("fixed", "mmc3.nes"))
	require.NoError(t, err)
	r, err := nesrom.FromBytesStrict(data)
	require.NoError(t, err)
	assert.Equal(t, nesrom.NES20, r.Version)
	assert.Equal(t, uint16(4), r.Mapper)
	assert.Equal(t, nesrom.MIRROR_VERTICAL, r.Mirroring)
}

func TestProcessErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	short := testROM(t, 0)[:100]
	require.NoError(t, afero.WriteFile(fs, "short.nes", short, 0o644))
	require.NoError(t, afero.WriteFile(fs, "junk.nes", []byte("not a rom"), 0o644))
	l := romfile.NewLoader(fs)

	_, err := process(l, "short.nes", options{})
	assert.NoError(t, err)

	_, err = process(l, "short.nes", options{strict: true})
	assert.ErrorIs(t, err, nesrom.ErrTruncated)

	_, err = process(l, "junk.nes", options{})
	assert.ErrorIs(t, err, nesrom.ErrBadMagic)

	_, err = process(l, "missing.nes", options{})
	assert.Error(t, err)
}

func TestRunKeepsOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	var paths []string
	for i := 0; i < 20; i++ {
		p := filepath.Join("roms", strings.Repeat("x", i+1)+".nes")
		require.NoError(t, afero.WriteFile(fs, p, testROM(t, uint16(i)), 0o644))
		paths = append(paths, p)
	}
	paths = append(paths, "missing.nes")

	results := run(romfile.NewLoader(fs), paths, options{}, 4)
	require.Len(t, results, len(paths))
	for i, p := range paths[:20] {
		require.NoError(t, results[i].err, p)
		assert.True(t, strings.HasPrefix(results[i].out, p+":\n"), p)
	}
	assert.Error(t, results[20].err)
}
