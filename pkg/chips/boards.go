package chips

import (
	"fmt"
	"strings"
)

// Board identifies an off-the-shelf controller board. A board is a carrier
// for exactly one chip; device descriptions may name either, and a board
// name resolves to its chip before any chip metadata is consulted.
type Board uint8

const (
	NrfMicro Board = iota
	BlueMicro840
	PuchiBle
	NiceNano
	NiceNanoV2
	XiaoBle
	Liatris
	EliteC
	ProMicro

	boardCount // sentinel, keep last
)

var boardNames = map[Board]string{
	NrfMicro:     "nrf-micro",
	BlueMicro840: "blue-micro840",
	PuchiBle:     "puchi-ble",
	NiceNano:     "nice-nano",
	NiceNanoV2:   "nice-nano-v2",
	XiaoBle:      "xiao-ble",
	Liatris:      "liatris",
	EliteC:       "elite-c",
	ProMicro:     "pro-micro",
}

// boardChips maps every board to the chip soldered onto it.
var boardChips = map[Board]Chip{
	NrfMicro:     NRF52840,
	BlueMicro840: NRF52840,
	PuchiBle:     NRF52840,
	NiceNano:     NRF52840,
	NiceNanoV2:   NRF52840,
	XiaoBle:      NRF52840,
	Liatris:      RP2040,
	EliteC:       ATMEGA32,
	ProMicro:     ATMEGA32,
}

// boardByName is the reverse of boardNames, built once at init.
var boardByName = func() map[string]Board {
	m := make(map[string]Board, len(boardNames))
	for board, name := range boardNames {
		m[name] = board
	}
	return m
}()

func (b Board) String() string {
	if name, ok := boardNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Board(%d)", uint8(b))
}

// Chip returns the chip mounted on the board. Defined for every Board value.
func (b Board) Chip() Chip {
	return boardChips[b]
}

// UnknownBoardError is returned when a textual board identifier does not
// match any enumerated board.
type UnknownBoardError struct {
	Name string
}

func (e *UnknownBoardError) Error() string {
	return fmt.Sprintf("unknown board %q, supported boards: %s",
		e.Name, strings.Join(BoardNames(), ", "))
}

// ParseBoard converts a textual board identifier into a Board. Matching is
// case-insensitive. An identifier outside the enumerated set yields an
// *UnknownBoardError.
func ParseBoard(name string) (Board, error) {
	if board, ok := boardByName[strings.ToLower(name)]; ok {
		return board, nil
	}
	return 0, &UnknownBoardError{Name: name}
}

// BoardNames returns all board identifiers in enumeration order.
func BoardNames() []string {
	names := make([]string, 0, int(boardCount))
	for b := Board(0); b < boardCount; b++ {
		names = append(names, b.String())
	}
	return names
}

// Boards returns every board in enumeration order.
func Boards() []Board {
	all := make([]Board, 0, int(boardCount))
	for b := Board(0); b < boardCount; b++ {
		all = append(all, b)
	}
	return all
}
