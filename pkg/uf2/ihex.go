package uf2

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Intel HEX record types understood by the reader. Anything else aborts the
// conversion rather than silently dropping data.
const (
	recData        = 0x00
	recEOF         = 0x01
	recExtSegment  = 0x02
	recExtLinear   = 0x04
	recStartLinear = 0x05
)

// HexError reports a malformed Intel HEX record with its line number.
type HexError struct {
	Line   int
	Reason string
}

func (e *HexError) Error() string {
	return fmt.Sprintf("uf2: hex record on line %d: %s", e.Line, e.Reason)
}

// FromHex reads Intel HEX records from r and packages the described image
// into UF2 blocks tagged with familyID. Target addresses come from the hex
// records themselves, extended by type 02 and 04 base address records.
func FromHex(w io.Writer, r io.Reader, familyID uint32) error {
	im := newImage()

	var base uint32
	sawEOF := false
	line := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text[0] != ':' {
			return &HexError{Line: line, Reason: "missing ':' prefix"}
		}

		raw, err := hex.DecodeString(text[1:])
		if err != nil {
			return &HexError{Line: line, Reason: "invalid hex encoding"}
		}
		// count + address + type + checksum
		if len(raw) < 5 {
			return &HexError{Line: line, Reason: "record too short"}
		}

		count := int(raw[0])
		if len(raw) != 5+count {
			return &HexError{Line: line, Reason: fmt.Sprintf(
				"record length %d does not match byte count %d", len(raw)-5, count)}
		}

		var sum byte
		for _, b := range raw {
			sum += b
		}
		if sum != 0 {
			return &HexError{Line: line, Reason: "checksum mismatch"}
		}

		offset := uint32(raw[1])<<8 | uint32(raw[2])
		typ := raw[3]
		data := raw[4 : 4+count]

		switch typ {
		case recData:
			for i, b := range data {
				im.set(base+offset+uint32(i), b)
			}
		case recEOF:
			sawEOF = true
		case recExtSegment:
			if count != 2 {
				return &HexError{Line: line, Reason: "extended segment record needs 2 data bytes"}
			}
			base = (uint32(data[0])<<8 | uint32(data[1])) << 4
		case recExtLinear:
			if count != 2 {
				return &HexError{Line: line, Reason: "extended linear record needs 2 data bytes"}
			}
			base = (uint32(data[0])<<8 | uint32(data[1])) << 16
		case recStartLinear:
			// Entry point hint, irrelevant for flashing.
		default:
			return &HexError{Line: line, Reason: fmt.Sprintf("unsupported record type %#02x", typ)}
		}

		if sawEOF {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("uf2: reading hex input: %w", err)
	}
	if !sawEOF {
		return fmt.Errorf("uf2: hex input has no end-of-file record")
	}

	return im.writeTo(w, familyID)
}
