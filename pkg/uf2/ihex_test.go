package uf2

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

// record assembles one Intel HEX record with a valid checksum.
func record(offset uint16, typ byte, data []byte) string {
	raw := []byte{byte(len(data)), byte(offset >> 8), byte(offset), typ}
	raw = append(raw, data...)
	var sum byte
	for _, b := range raw {
		sum += b
	}
	raw = append(raw, -sum)
	return ":" + strings.ToUpper(hex.EncodeToString(raw))
}

func TestFromHexRoundTrip(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11, 0x22, 0x33}
	input := strings.Join([]string{
		record(0, recExtLinear, []byte{0x08, 0x00}),
		record(0x0100, recData, payload),
		record(0, recEOF, nil),
	}, "\n")

	var buf bytes.Buffer
	if err := FromHex(&buf, strings.NewReader(input), testFamily); err != nil {
		t.Fatalf("FromHex returned error: %v", err)
	}

	out := buf.Bytes()
	if len(out) != BlockSize {
		t.Fatalf("output size = %d, want %d", len(out), BlockSize)
	}

	le := binary.LittleEndian
	if got := le.Uint32(out[12:]); got != 0x08000100 {
		t.Fatalf("block address = %#08x, want 0x08000100", got)
	}
	if got := le.Uint32(out[28:]); got != testFamily {
		t.Fatalf("family = %#08x, want %#08x", got, uint32(testFamily))
	}
	if !bytes.Equal(out[32:32+len(payload)], payload) {
		t.Fatal("payload does not match hex data")
	}
	if out[32+len(payload)] != 0xff {
		t.Fatal("padding after payload is not erased flash")
	}
}

func TestFromHexSegmentRecord(t *testing.T) {
	input := strings.Join([]string{
		record(0, recExtSegment, []byte{0x10, 0x00}),
		record(0x0020, recData, []byte{0xaa}),
		record(0, recEOF, nil),
	}, "\n")

	var buf bytes.Buffer
	if err := FromHex(&buf, strings.NewReader(input), testFamily); err != nil {
		t.Fatalf("FromHex returned error: %v", err)
	}

	// Segment base 0x1000 << 4 = 0x10000, plus offset 0x20, aligned down.
	if got := binary.LittleEndian.Uint32(buf.Bytes()[12:]); got != 0x00010000 {
		t.Fatalf("block address = %#08x, want 0x00010000", got)
	}
}

func TestFromHexGapsMakeSeparateBlocks(t *testing.T) {
	input := strings.Join([]string{
		record(0x0000, recData, []byte{0x01}),
		record(0x1000, recData, []byte{0x02}),
		record(0, recEOF, nil),
	}, "\n")

	var buf bytes.Buffer
	if err := FromHex(&buf, strings.NewReader(input), testFamily); err != nil {
		t.Fatalf("FromHex returned error: %v", err)
	}

	out := buf.Bytes()
	if len(out) != 2*BlockSize {
		t.Fatalf("output size = %d, want %d", len(out), 2*BlockSize)
	}

	le := binary.LittleEndian
	if got := le.Uint32(out[12:]); got != 0x0000 {
		t.Fatalf("block 0 address = %#08x, want 0", got)
	}
	if got := le.Uint32(out[BlockSize+12:]); got != 0x1000 {
		t.Fatalf("block 1 address = %#08x, want 0x1000", got)
	}
}

func TestFromHexErrors(t *testing.T) {
	valid := record(0, recData, []byte{0x01})
	eof := record(0, recEOF, nil)

	cases := []struct {
		name   string
		input  string
		reason string
	}{
		{"checksum", ":0100000001FD\n" + eof, "checksum"},
		{"prefix", "0100000001FE\n" + eof, "prefix"},
		{"odd length", ":0100000001F\n" + eof, "hex encoding"},
		{"short record", ":01000001\n" + eof, "too short"},
		{"count mismatch", ":02000000FFFF\n" + eof, "byte count"},
		{"unsupported type", record(0, 0x03, []byte{0, 0, 0, 0}) + "\n" + eof, "record type"},
		{"missing eof", valid, "end-of-file"},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		err := FromHex(&buf, strings.NewReader(tc.input), testFamily)
		if err == nil {
			t.Fatalf("%s: FromHex returned no error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.reason) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.reason)
		}
	}
}

func TestFromHexErrorLineNumbers(t *testing.T) {
	input := strings.Join([]string{
		record(0, recData, []byte{0x01}),
		"",
		":0100000001FD", // checksum off by one
		record(0, recEOF, nil),
	}, "\n")

	var buf bytes.Buffer
	err := FromHex(&buf, strings.NewReader(input), testFamily)

	var hexErr *HexError
	if !errors.As(err, &hexErr) {
		t.Fatalf("error type = %T, want *HexError", err)
	}
	if hexErr.Line != 3 {
		t.Fatalf("error line = %d, want 3", hexErr.Line)
	}
}
