package chips

import "fmt"

// Format is a firmware container format produced by the packaging pipeline.
type Format uint8

const (
	// Elf is the linked executable as emitted by the compiler. Every chain
	// starts here; debug probes and espflash consume it directly.
	Elf Format = iota
	// Hex is Intel HEX, the format nRF and AVR bootloaders expect.
	Hex
	// Bin is a raw flat binary image with no address information.
	Bin
	// Uf2 is the USB Flashing Format consumed by drag-and-drop mass
	// storage bootloaders. Always the final step of a chain.
	Uf2
)

var formatNames = map[Format]string{
	Elf: "elf",
	Hex: "hex",
	Bin: "bin",
	Uf2: "uf2",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Ext returns the file name extension for the format, without the dot.
// ELF firmware keeps the extensionless name the compiler gave it.
func (f Format) Ext() string {
	if f == Elf {
		return ""
	}
	return f.String()
}
