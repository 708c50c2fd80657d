// Package romfile reads and writes ROM images through an afero.Fs, looking
// inside the archive formats ROM sets are commonly distributed in.
package romfile

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/nwaples/rardecode/v2"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

var (
	// ErrNoROM means an archive has no regular file in it.
	ErrNoROM = errors.New("no ROM found in archive")
	// ErrTooLarge means a file or archive member is bigger than the
	// loader's size limit.
	ErrTooLarge = errors.New("file too large")
)

const (
	// Largest image Load will read: a header, trainer, two maximal
	// segments and some misc ROM.
	MAX_FILE_SIZE = 3 << 30
	ROM_EXT       = ".NES"
)

// list of file extensions for the supported archive types
var ArchiveExtensions = [...]string{".ZIP", ".7Z", ".RAR", ".GZ", ".XZ"}

type Loader struct {
	fs afero.Fs
	// MaxSize caps how many bytes Load returns.
	MaxSize int64
}

func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs, MaxSize: MAX_FILE_SIZE}
}

// Load returns the ROM image at path. Archives are opened and the first
// member with a .nes extension is returned, or failing that the first
// regular member.
func (l *Loader) Load(path string) ([]byte, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}

	var data []byte
	switch strings.ToUpper(filepath.Ext(path)) {
	case ".ZIP":
		data, err = l.loadZip(f, fi.Size())
	case ".7Z":
		data, err = l.load7z(f, fi.Size())
	case ".RAR":
		data, err = l.loadRar(f)
	case ".GZ":
		data, err = l.loadGzip(f)
	case ".XZ":
		data, err = l.loadXz(f)
	default:
		data, err = l.readAll(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return data, nil
}

// Save writes data to path, creating any missing parent directories.
func (l *Loader) Save(path string, data []byte) error {
	if err := l.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(l.fs, path, data, 0o644)
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.MaxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.MaxSize {
		return nil, fmt.Errorf("more than %d bytes: %w", l.MaxSize, ErrTooLarge)
	}
	return data, nil
}

// member is an archive entry that can be opened on demand.
type member struct {
	name string
	open func() (io.ReadCloser, error)
}

// pick returns the first .nes member, else the first member.
func pick(members []member) (member, error) {
	if len(members) == 0 {
		return member{}, ErrNoROM
	}
	for _, m := range members {
		if isROMName(m.name) {
			return m, nil
		}
	}
	return members[0], nil
}

func (l *Loader) readMember(members []member) ([]byte, error) {
	m, err := pick(members)
	if err != nil {
		return nil, err
	}

	rc, err := m.open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.name, err)
	}
	defer rc.Close()

	data, err := l.readAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.name, err)
	}
	return data, nil
}

func (l *Loader) loadZip(r io.ReaderAt, size int64) ([]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	var members []member
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		members = append(members, member{name: f.Name, open: f.Open})
	}
	return l.readMember(members)
}

func (l *Loader) load7z(r io.ReaderAt, size int64) ([]byte, error) {
	sr, err := sevenzip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	var members []member
	for _, f := range sr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		members = append(members, member{name: f.Name, open: f.Open})
	}
	return l.readMember(members)
}

// loadRar reads members as they stream past, so the fallback member is
// held in memory until a .nes member turns up or the archive ends.
func (l *Loader) loadRar(r io.Reader) ([]byte, error) {
	rr, err := rardecode.NewReader(r)
	if err != nil {
		return nil, err
	}

	var first []byte
	for {
		hdr, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.IsDir {
			continue
		}

		switch {
		case isROMName(hdr.Name):
			return l.readAll(rr)
		case first == nil:
			if first, err = l.readAll(rr); err != nil {
				return nil, fmt.Errorf("%s: %w", hdr.Name, err)
			}
		}
	}

	if first == nil {
		return nil, ErrNoROM
	}
	return first, nil
}

func (l *Loader) loadGzip(r io.Reader) ([]byte, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return l.readAll(zr)
}

func (l *Loader) loadXz(r io.Reader) ([]byte, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return l.readAll(xr)
}

func isROMName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ROM_EXT)
}

// TrimArchiveExt removes the file extension of any supported archive type
// from the end of the string
func TrimArchiveExt(s string) string {
	sext := strings.ToUpper(filepath.Ext(s))
	for _, ext := range ArchiveExtensions {
		if sext == ext {
			return strings.TrimSuffix(s, filepath.Ext(s))
		}
	}
	return s
}

// BaseName returns the name of path with the directory, any archive
// extension and any .nes extension removed. "roms/Game.nes.gz" is "Game".
func BaseName(path string) string {
	name := TrimArchiveExt(filepath.Base(path))
	if isROMName(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
