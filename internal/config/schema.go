package config

// KeyboardConfig is the parsed form of a keyboard.toml device description.
// It is read once per invocation, validated by Resolve and never mutated
// afterwards.
type KeyboardConfig struct {
	Keyboard   Keyboard    `toml:"keyboard"`
	Matrix     *Matrix     `toml:"matrix,omitempty"`
	Split      *Split      `toml:"split,omitempty"`
	Layout     *Layout     `toml:"layout,omitempty"`
	Light      *Light      `toml:"light,omitempty"`
	Storage    *Storage    `toml:"storage,omitempty"`
	Vial       *Vial       `toml:"vial,omitempty"`
	Dependency *Dependency `toml:"dependency,omitempty"`
}

// Keyboard holds the device identity. Exactly one of Board and Chip
// determines the target hardware.
type Keyboard struct {
	Name         string `toml:"name"`
	ProductName  string `toml:"product_name,omitempty"`
	Manufacturer string `toml:"manufacturer,omitempty"`
	VendorID     string `toml:"vendor_id,omitempty"`
	ProductID    string `toml:"product_id,omitempty"`
	Board        string `toml:"board,omitempty"`
	Chip         string `toml:"chip,omitempty"`
}

// Matrix describes a unibody key matrix wiring.
type Matrix struct {
	Rows       uint8    `toml:"rows,omitempty"`
	Cols       uint8    `toml:"cols,omitempty"`
	Row2Col    bool     `toml:"row2col,omitempty"`
	InputPins  []string `toml:"input_pins,omitempty"`
	OutputPins []string `toml:"output_pins,omitempty"`
}

// Split describes a two-board split keyboard. The central side carries the
// wiring orientation for the whole device.
type Split struct {
	Connection string       `toml:"connection,omitempty"`
	Central    SplitBoard   `toml:"central"`
	Peripheral []SplitBoard `toml:"peripheral,omitempty"`
}

// SplitBoard is one half of a split keyboard with its slice of the full
// logical matrix.
type SplitBoard struct {
	Rows      uint8  `toml:"rows,omitempty"`
	Cols      uint8  `toml:"cols,omitempty"`
	RowOffset uint8  `toml:"row_offset,omitempty"`
	ColOffset uint8  `toml:"col_offset,omitempty"`
	Matrix    Matrix `toml:"matrix"`
}

// Layout declares the logical key layout and the per-layer keymap. Keymap is
// indexed as [layer][row][col]; each entry is a key action such as "A",
// "MO(1)" or "LT(2, Space)".
type Layout struct {
	Rows   uint8        `toml:"rows,omitempty"`
	Cols   uint8        `toml:"cols,omitempty"`
	Layers uint8        `toml:"layers,omitempty"`
	Keymap [][][]string `toml:"keymap,omitempty"`
}

// Light assigns indicator LED pins. Any assigned pin pulls the lighting
// controller into the firmware.
type Light struct {
	Capslock   *LightPin `toml:"capslock,omitempty"`
	Scrolllock *LightPin `toml:"scrolllock,omitempty"`
	Numlock    *LightPin `toml:"numlock,omitempty"`
}

// LightPin is one indicator LED assignment.
type LightPin struct {
	Pin       string `toml:"pin"`
	LowActive bool   `toml:"low_active,omitempty"`
}

// Storage toggles on-flash persistence of keymap edits. Enabled defaults to
// true when the section is absent.
type Storage struct {
	Enabled *bool `toml:"enabled,omitempty"`
}

// Vial toggles the Vial keymap-editor protocol. Enabled defaults to true
// when the section is absent.
type Vial struct {
	Enabled *bool `toml:"enabled,omitempty"`
}

// Dependency tunes firmware-side dependency features.
type Dependency struct {
	// DefmtLog controls deferred-format debug logging, on by default.
	DefmtLog *bool `toml:"defmt_log,omitempty"`
}

// anyPin reports whether at least one indicator pin is assigned.
func (l *Light) anyPin() bool {
	return l != nil && (l.Capslock != nil || l.Scrolllock != nil || l.Numlock != nil)
}

// disabled reports whether an optional toggle is explicitly switched off.
func disabled(b *bool) bool {
	return b != nil && !*b
}
