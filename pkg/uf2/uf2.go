// Package uf2 writes firmware images in the UF2 container format consumed
// by USB mass storage bootloaders. An image can be assembled from a raw
// binary at a fixed load address or from Intel HEX records that carry their
// own addresses. Every emitted block is tagged with the target chip's UF2
// family identifier so the bootloader can reject foreign firmware.
package uf2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
)

const (
	// BlockSize is the fixed on-disk size of one UF2 block.
	BlockSize = 512
	// PayloadSize is the number of firmware bytes carried per block.
	// Blocks are padded, never packed tighter.
	PayloadSize = 256

	// MagicStart0 and MagicStart1 open every block, MagicEnd closes it.
	MagicStart0 = 0x0a324655
	MagicStart1 = 0x9e5d5157
	MagicEnd    = 0x0ab16f30

	// FlagFamilyID marks the fileSize field as holding a family ID.
	FlagFamilyID = 0x00002000
)

// ErrEmptyImage is returned when a conversion source contains no firmware
// bytes at all.
var ErrEmptyImage = errors.New("uf2: image contains no data")

// image accumulates firmware bytes into payload-sized chunks keyed by their
// aligned target address. Unwritten bytes inside a chunk keep the erased
// flash value 0xff.
type image struct {
	chunks map[uint32]*[PayloadSize]byte
}

func newImage() *image {
	return &image{chunks: make(map[uint32]*[PayloadSize]byte)}
}

func (im *image) set(addr uint32, b byte) {
	base := addr &^ (PayloadSize - 1)
	chunk, ok := im.chunks[base]
	if !ok {
		chunk = new([PayloadSize]byte)
		for i := range chunk {
			chunk[i] = 0xff
		}
		im.chunks[base] = chunk
	}
	chunk[addr-base] = b
}

// writeTo emits one block per chunk in ascending address order.
func (im *image) writeTo(w io.Writer, familyID uint32) error {
	if len(im.chunks) == 0 {
		return ErrEmptyImage
	}

	addrs := make([]uint32, 0, len(im.chunks))
	for addr := range im.chunks {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	var block [BlockSize]byte
	for i, addr := range addrs {
		encodeBlock(&block, addr, im.chunks[addr], uint32(i), uint32(len(addrs)), familyID)
		if _, err := w.Write(block[:]); err != nil {
			return fmt.Errorf("uf2: writing block %d: %w", i, err)
		}
	}
	return nil
}

func encodeBlock(block *[BlockSize]byte, addr uint32, payload *[PayloadSize]byte,
	blockNo, numBlocks, familyID uint32) {

	le := binary.LittleEndian
	le.PutUint32(block[0:], MagicStart0)
	le.PutUint32(block[4:], MagicStart1)
	le.PutUint32(block[8:], FlagFamilyID)
	le.PutUint32(block[12:], addr)
	le.PutUint32(block[16:], PayloadSize)
	le.PutUint32(block[20:], blockNo)
	le.PutUint32(block[24:], numBlocks)
	le.PutUint32(block[28:], familyID)
	copy(block[32:], payload[:])
	for i := 32 + PayloadSize; i < BlockSize-4; i++ {
		block[i] = 0
	}
	le.PutUint32(block[BlockSize-4:], MagicEnd)
}

// FromBin packages a raw binary image loaded at base into UF2 blocks tagged
// with familyID.
func FromBin(w io.Writer, data []byte, base, familyID uint32) error {
	if len(data) == 0 {
		return ErrEmptyImage
	}

	im := newImage()
	for i, b := range data {
		im.set(base+uint32(i), b)
	}
	return im.writeTo(w, familyID)
}
