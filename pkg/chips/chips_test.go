package chips

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistryComplete(t *testing.T) {
	if len(chipNames) != int(chipCount) {
		t.Fatalf("chipNames has %d entries, want %d", len(chipNames), int(chipCount))
	}
	if len(infos) != int(chipCount) {
		t.Fatalf("infos has %d entries, want %d", len(infos), int(chipCount))
	}

	for _, c := range All() {
		info := Lookup(c)
		if info.FamilyID == 0 {
			t.Fatalf("chip %s has no family ID", c)
		}
		if len(info.Formats) == 0 {
			t.Fatalf("chip %s has no format chain", c)
		}
	}
}

func TestFamilyIDsDistinct(t *testing.T) {
	seen := make(map[uint32]Chip, int(chipCount))
	for _, c := range All() {
		id := c.FamilyID()
		if prev, ok := seen[id]; ok {
			t.Fatalf("family ID %#08x assigned to both %s and %s", id, prev, c)
		}
		seen[id] = c
	}
}

func TestFamilyIDValues(t *testing.T) {
	cases := []struct {
		chip Chip
		id   uint32
	}{
		{NRF52840, 0xada52840},
		{RP2040, 0xe48bff56},
		{RP2350ArmS, 0xe48bff59},
		{ATMEGA32, 0x16573617},
		{STM32F4, 0x57755a57},
		{ESP32S3, 0xc47e5767},
		{SAMD21, 0x68ed2b88},
		{STM32L4, 0x00ff6919},
	}

	for _, tc := range cases {
		if got := tc.chip.FamilyID(); got != tc.id {
			t.Fatalf("FamilyID(%s) = %#08x, want %#08x", tc.chip, got, tc.id)
		}
	}
}

func TestParseChipRoundTrip(t *testing.T) {
	for _, c := range All() {
		got, err := ParseChip(c.String())
		if err != nil {
			t.Fatalf("ParseChip(%q) returned error: %v", c.String(), err)
		}
		if got != c {
			t.Fatalf("ParseChip(%q) = %s, want %s", c.String(), got, c)
		}
	}

	// Identifiers are matched case-insensitively.
	got, err := ParseChip("NRF52840")
	if err != nil {
		t.Fatalf("ParseChip(NRF52840) returned error: %v", err)
	}
	if got != NRF52840 {
		t.Fatalf("ParseChip(NRF52840) = %s, want %s", got, NRF52840)
	}
}

func TestParseChipUnknown(t *testing.T) {
	_, err := ParseChip("z80")
	if err == nil {
		t.Fatal("ParseChip(z80) returned no error")
	}

	var unknownErr *UnknownChipError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("ParseChip(z80) error type = %T, want *UnknownChipError", err)
	}
	if unknownErr.Name != "z80" {
		t.Fatalf("error name = %q, want %q", unknownErr.Name, "z80")
	}
	// The message lists valid identifiers so a typo is easy to fix.
	if !strings.Contains(err.Error(), "nrf52840") {
		t.Fatalf("error message %q does not list supported chips", err.Error())
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	for _, name := range BoardNames() {
		got, err := ParseBoard(name)
		if err != nil {
			t.Fatalf("ParseBoard(%q) returned error: %v", name, err)
		}
		if got.String() != name {
			t.Fatalf("ParseBoard(%q).String() = %q", name, got.String())
		}
	}

	if _, err := ParseBoard("deck-o-keys"); err == nil {
		t.Fatal("ParseBoard(deck-o-keys) returned no error")
	}
}

func TestBoardChipMapping(t *testing.T) {
	cases := []struct {
		board Board
		chip  Chip
	}{
		{NiceNanoV2, NRF52840},
		{XiaoBle, NRF52840},
		{Liatris, RP2040},
		{ProMicro, ATMEGA32},
		{EliteC, ATMEGA32},
	}

	for _, tc := range cases {
		if got := tc.board.Chip(); got != tc.chip {
			t.Fatalf("Chip(%s) = %s, want %s", tc.board, got, tc.chip)
		}
	}

	// Every enumerated board maps to a chip with registry metadata.
	for b := Board(0); b < boardCount; b++ {
		if _, ok := infos[b.Chip()]; !ok {
			t.Fatalf("board %s maps to unregistered chip %s", b, b.Chip())
		}
	}
}

func TestFormatChainsWellFormed(t *testing.T) {
	for _, c := range All() {
		formats := c.Formats()
		if formats[0] != Elf {
			t.Fatalf("chip %s chain starts with %s, want %s", c, formats[0], Elf)
		}
		for i, f := range formats {
			if f == Uf2 && i != len(formats)-1 {
				t.Fatalf("chip %s has %s before the end of the chain", c, Uf2)
			}
			if f == Elf && i != 0 {
				t.Fatalf("chip %s repeats %s mid-chain", c, Elf)
			}
		}
	}
}

func TestUf2ChipsHaveLoadAddress(t *testing.T) {
	for _, c := range All() {
		info := Lookup(c)
		needsBase := false
		for i, f := range info.Formats {
			if f == Uf2 && i > 0 && info.Formats[i-1] == Bin {
				needsBase = true
			}
		}
		if needsBase && info.FlashBase == 0 {
			t.Fatalf("chip %s wraps a raw binary into UF2 but has no flash base", c)
		}
	}
}

func TestSplitSupport(t *testing.T) {
	want := map[Chip]bool{NRF52840: true, RP2040: true}
	for _, c := range All() {
		if got := c.SplitSupport(); got != want[c] {
			t.Fatalf("SplitSupport(%s) = %v, want %v", c, got, want[c])
		}
	}
}

func TestFormatExt(t *testing.T) {
	cases := []struct {
		format Format
		ext    string
	}{
		{Elf, ""},
		{Hex, "hex"},
		{Bin, "bin"},
		{Uf2, "uf2"},
	}

	for _, tc := range cases {
		if got := tc.format.Ext(); got != tc.ext {
			t.Fatalf("Ext(%s) = %q, want %q", tc.format, got, tc.ext)
		}
	}
}
