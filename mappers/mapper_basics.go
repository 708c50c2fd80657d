// Package mappers registers the cartridge boards that are referenced
// numerically by iNES and NES2.0 ROM files so they can be named in
// human readable output.
package mappers

import "fmt"

// A global registry of boards, keyed by mapper id. It is only written
// from init() and is read-only afterwards.
var allMappers = map[uint16]Board{}

const (
	MAX_INES_MAPPER = 255
	MAX_NES2_MAPPER = 4095
)

type Board struct {
	ID   uint16
	Name string
}

func (b Board) String() string {
	return fmt.Sprintf("%d (%s)", b.ID, b.Name)
}

// RegisterMapper adds a board to the registry. It panics on a duplicate
// id or an id that can't be stored in a NES2.0 header, both of which are
// programming errors in the tables.
func RegisterMapper(id uint16, name string) {
	if id > MAX_NES2_MAPPER {
		panic(fmt.Sprintf("mapper %d out of range", id))
	}
	if b, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("mapper %d already registered as %q", id, b.Name))
	}
	allMappers[id] = Board{ID: id, Name: name}
}

// Lookup returns the board registered for id.
func Lookup(id uint16) (Board, bool) {
	b, ok := allMappers[id]
	return b, ok
}

// Name returns the board name for id, or "" if it isn't known.
func Name(id uint16) string {
	return allMappers[id].Name
}
