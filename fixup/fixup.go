// Package fixup holds the tables of known badly dumped or badly tagged
// cartridges. The first table maps the CRC32 of PRG+CHR to the mapper and
// mirroring the board really uses; the second lists carts known to have
// battery backed save RAM even though their headers don't say so.
//
// A Database is immutable once built and may be shared between goroutines.
package fixup

import (
	"encoding/binary"
	"sync"
)

// Directive says what should happen to a ROM's mirroring.
type Directive uint8

const (
	KeepMirroring Directive = iota
	ForceHorizontal
	ForceVertical
	ForceFourScreen
	// NotFourScreen resets hard-wired four-screen mirroring to horizontal
	// and leaves every other mode alone.
	NotFourScreen
)

func (d Directive) String() string {
	switch d {
	case KeepMirroring:
		return "keep"
	case ForceHorizontal:
		return "horizontal"
	case ForceVertical:
		return "vertical"
	case ForceFourScreen:
		return "four-screen"
	case NotFourScreen:
		return "not four-screen"
	}
	return "unknown"
}

// Entry is a correction for one dump.
type Entry struct {
	CRC uint32
	// Mapper is the correct mapper number, or -1 to leave it as is.
	Mapper int
	// DropCHR is set for boards that use CHR RAM only; any CHR data in
	// the dump is spurious.
	DropCHR   bool
	Mirroring Directive
}

type Database struct {
	entries []Entry
	battery map[uint64]struct{}
}

// New builds a database. Entries keep their order: duplicate CRCs are
// allowed and Lookup returns the first.
func New(entries []Entry, battery []uint64) *Database {
	db := &Database{
		entries: make([]Entry, len(entries)),
		battery: make(map[uint64]struct{}, len(battery)),
	}
	copy(db.entries, entries)
	for _, b := range battery {
		db.battery[b] = struct{}{}
	}
	return db
}

// Lookup returns the first entry for crc.
func (db *Database) Lookup(crc uint32) (Entry, bool) {
	for _, e := range db.entries {
		if e.CRC == crc {
			return e, true
		}
	}
	return Entry{}, false
}

// NeedsBattery reports whether the dump with the given MD5 is known to use
// battery backed memory.
func (db *Database) NeedsBattery(sum [16]byte) bool {
	_, ok := db.battery[PartialMD5(sum)]
	return ok
}

// Len returns the number of CRC entries.
func (db *Database) Len() int {
	return len(db.entries)
}

// PartialMD5 packs the last 8 bytes of an MD5 digest into one integer,
// sum[8] being the most significant byte. This is the key used by the
// battery table.
func PartialMD5(sum [16]byte) uint64 {
	return binary.BigEndian.Uint64(sum[8:])
}

var defaultDB = sync.OnceValue(func() *Database {
	entries := make([]Entry, 0, len(corrections))
	for _, c := range corrections {
		entries = append(entries, c.entry())
	}
	return New(entries, batteryCarts)
})

// Default returns the built-in database. It is built on first use.
func Default() *Database {
	return defaultDB()
}
