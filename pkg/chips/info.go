package chips

// Info carries the packaging metadata for one chip.
type Info struct {
	// FamilyID is the chip's UF2 bootloader family identifier as assigned
	// in the microsoft/uf2 registry. Stamped into every UF2 block so the
	// bootloader can reject firmware built for another chip.
	FamilyID uint32

	// Formats is the firmware container chain for the chip, ordered from
	// compiler output to the format the bootloader consumes. The first
	// entry is always Elf. Treat as read-only.
	Formats []Format

	// SplitSupport reports whether RMK can run the chip as one half of a
	// split keyboard.
	SplitSupport bool

	// FlashBase is the load address for formats that carry no address
	// information of their own. Only consulted when a raw binary image is
	// wrapped into UF2.
	FlashBase uint32
}

// Chains shared by all chips of a family. Read-only.
var (
	elfOnly   = []Format{Elf}
	elfHex    = []Format{Elf, Hex}
	elfBin    = []Format{Elf, Bin}
	elfHexUf2 = []Format{Elf, Hex, Uf2}
	elfBinUf2 = []Format{Elf, Bin, Uf2}
)

// infos holds the full chip registry. Family identifiers follow the
// microsoft/uf2 families list; format chains follow what each family's
// stock bootloader accepts.
var infos = map[Chip]Info{
	AT32F415:     {FamilyID: 0xa0c97b8e, Formats: elfOnly},
	ATMEGA32:     {FamilyID: 0x16573617, Formats: elfHex},
	BK7231N:      {FamilyID: 0x7b3ef230, Formats: elfOnly},
	BK7231U:      {FamilyID: 0x675a40b0, Formats: elfOnly},
	BK7251:       {FamilyID: 0x6a82cc42, Formats: elfOnly},
	BL602:        {FamilyID: 0xde1270b7, Formats: elfOnly},
	CH32V:        {FamilyID: 0x699b62ec, Formats: elfOnly},
	CSK4:         {FamilyID: 0x4f6ace52, Formats: elfOnly},
	CSK6:         {FamilyID: 0x6e7348a8, Formats: elfOnly},
	ESP32:        {FamilyID: 0x1c5f21b0, Formats: elfOnly},
	ESP32C2:      {FamilyID: 0x2b88d29c, Formats: elfOnly},
	ESP32C3:      {FamilyID: 0xd42ba06c, Formats: elfOnly},
	ESP32C5:      {FamilyID: 0xf71c0343, Formats: elfOnly},
	ESP32C6:      {FamilyID: 0x540ddf62, Formats: elfOnly},
	ESP32C61:     {FamilyID: 0x77d850c4, Formats: elfOnly},
	ESP32H2:      {FamilyID: 0x332726f6, Formats: elfOnly},
	ESP32P4:      {FamilyID: 0x3d308e94, Formats: elfOnly},
	ESP32S2:      {FamilyID: 0xbfdd4eee, Formats: elfOnly},
	ESP32S3:      {FamilyID: 0xc47e5767, Formats: elfOnly},
	ESP8266:      {FamilyID: 0x7eab61ed, Formats: elfOnly},
	FX2:          {FamilyID: 0x5a18069b, Formats: elfOnly},
	GD32F350:     {FamilyID: 0x31d228c6, Formats: elfOnly},
	GD32VF103:    {FamilyID: 0x9af03e33, Formats: elfOnly},
	KL32L2:       {FamilyID: 0x7f83e793, Formats: elfOnly},
	LPC55:        {FamilyID: 0x2abc77ec, Formats: elfOnly},
	M0SENSE:      {FamilyID: 0x11de784a, Formats: elfOnly},
	MIMXRT10XX:   {FamilyID: 0x4fb2d5bd, Formats: elfOnly},
	MaixPlayU4:   {FamilyID: 0x4b684d71, Formats: elfOnly},
	NRF52:        {FamilyID: 0x1b57745f, Formats: elfHex},
	NRF52832xxAA: {FamilyID: 0x72721d4e, Formats: elfHex},
	NRF52832xxAB: {FamilyID: 0x6f752678, Formats: elfHex},
	NRF52833:     {FamilyID: 0x621e937a, Formats: elfHex},
	NRF52840:     {FamilyID: 0xada52840, Formats: elfHexUf2, SplitSupport: true},
	RA4M1:        {FamilyID: 0x7be8976d, Formats: elfOnly},
	RP2040:       {FamilyID: 0xe48bff56, Formats: elfBinUf2, SplitSupport: true, FlashBase: 0x10000000},
	RP2350ArmNS:  {FamilyID: 0xe48bff5b, Formats: elfBinUf2, FlashBase: 0x10000000},
	RP2350ArmS:   {FamilyID: 0xe48bff59, Formats: elfBinUf2, FlashBase: 0x10000000},
	RP2350RiscV:  {FamilyID: 0xe48bff5a, Formats: elfBinUf2, FlashBase: 0x10000000},
	// The rp2xxx absolute and data families are flashing modes of the
	// RP2350 bootrom rather than separate silicon.
	RP2xxxAbsolute: {FamilyID: 0xe48bff57, Formats: elfBinUf2, FlashBase: 0x10000000},
	RP2xxxData:     {FamilyID: 0xe48bff58, Formats: elfBinUf2, FlashBase: 0x10000000},
	RTL8710A:       {FamilyID: 0x9fffd543, Formats: elfOnly},
	RTL8710B:       {FamilyID: 0x22e0d6fc, Formats: elfOnly},
	RTL8720C:       {FamilyID: 0xe08f7564, Formats: elfOnly},
	RTL8720D:       {FamilyID: 0x3379cfe2, Formats: elfOnly},
	RZA1LU:         {FamilyID: 0x9517422f, Formats: elfOnly},
	// SAMD bootloaders reserve the bottom of flash for themselves, so the
	// application image is linked and flashed above it.
	SAMD21:      {FamilyID: 0x68ed2b88, Formats: elfBinUf2, FlashBase: 0x2000},
	SAMD51:      {FamilyID: 0x55114460, Formats: elfBinUf2, FlashBase: 0x4000},
	SAML21:      {FamilyID: 0x1851780a, Formats: elfOnly},
	STM32F0:     {FamilyID: 0x647824b6, Formats: elfBin},
	STM32F1:     {FamilyID: 0x5ee21072, Formats: elfBin},
	STM32F2:     {FamilyID: 0x5d1a0a2e, Formats: elfBin},
	STM32F3:     {FamilyID: 0x6b846188, Formats: elfBin},
	STM32F4:     {FamilyID: 0x57755a57, Formats: elfBin},
	STM32F407:   {FamilyID: 0x6d0922fa, Formats: elfBin},
	STM32F407VG: {FamilyID: 0x8fb060fe, Formats: elfBin},
	STM32F411xC: {FamilyID: 0x06d1097b, Formats: elfBin},
	STM32F411xE: {FamilyID: 0x2dc309c5, Formats: elfBin},
	STM32F7:     {FamilyID: 0x53b80f00, Formats: elfBin},
	STM32G0:     {FamilyID: 0x300f5633, Formats: elfBin},
	STM32G4:     {FamilyID: 0x4c71240a, Formats: elfBin},
	STM32H7:     {FamilyID: 0x6db66082, Formats: elfBin},
	STM32L0:     {FamilyID: 0x202e3a91, Formats: elfBin},
	STM32L1:     {FamilyID: 0x1e1f432d, Formats: elfBin},
	STM32L4:     {FamilyID: 0x00ff6919, Formats: elfBin},
	STM32L5:     {FamilyID: 0x04240bdf, Formats: elfBin},
	STM32WB:     {FamilyID: 0x70d16653, Formats: elfBin},
	STM32WL:     {FamilyID: 0x21460ff0, Formats: elfBin},
	XR809:       {FamilyID: 0x51e903a8, Formats: elfOnly},
}

// Lookup returns the packaging metadata for a chip. Defined for every Chip
// value.
func Lookup(c Chip) Info {
	return infos[c]
}

// FamilyID returns the chip's UF2 family identifier.
func (c Chip) FamilyID() uint32 {
	return infos[c].FamilyID
}

// Formats returns the chip's firmware container chain. Treat as read-only.
func (c Chip) Formats() []Format {
	return infos[c].Formats
}

// SplitSupport reports whether the chip can drive one half of a split
// keyboard.
func (c Chip) SplitSupport() bool {
	return infos[c].SplitSupport
}

// All returns every chip in enumeration order.
func All() []Chip {
	all := make([]Chip, 0, int(chipCount))
	for c := Chip(0); c < chipCount; c++ {
		all = append(all, c)
	}
	return all
}
