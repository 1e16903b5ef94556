// Package chips enumerates the microcontrollers and controller boards that
// RMK firmware projects can target, together with the per-chip metadata the
// build pipeline needs: the UF2 bootloader family identifier, the firmware
// container formats a chip's bootloader consumes, and whether the chip can
// drive one half of a split keyboard.
package chips

import (
	"fmt"
	"strings"
)

// Chip identifies a supported microcontroller family.
//
// The set is closed: every chip the template repository and the packaging
// pipeline know about has exactly one value here. Free-form text from a
// device description is turned into a Chip with ParseChip, which is the only
// place unknown identifiers are rejected.
type Chip uint8

const (
	AT32F415 Chip = iota
	ATMEGA32
	BK7231N
	BK7231U
	BK7251
	BL602
	CH32V
	CSK4
	CSK6
	ESP32
	ESP32C2
	ESP32C3
	ESP32C5
	ESP32C6
	ESP32C61
	ESP32H2
	ESP32P4
	ESP32S2
	ESP32S3
	ESP8266
	FX2
	GD32F350
	GD32VF103
	KL32L2
	LPC55
	M0SENSE
	MIMXRT10XX
	MaixPlayU4
	NRF52
	NRF52832xxAA
	NRF52832xxAB
	NRF52833
	NRF52840
	RA4M1
	RP2040
	RP2350ArmNS
	RP2350ArmS
	RP2350RiscV
	RP2xxxAbsolute
	RP2xxxData
	RTL8710A
	RTL8710B
	RTL8720C
	RTL8720D
	RZA1LU
	SAMD21
	SAMD51
	SAML21
	STM32F0
	STM32F1
	STM32F2
	STM32F3
	STM32F4
	STM32F407
	STM32F407VG
	STM32F411xC
	STM32F411xE
	STM32F7
	STM32G0
	STM32G4
	STM32H7
	STM32L0
	STM32L1
	STM32L4
	STM32L5
	STM32WB
	STM32WL
	XR809

	chipCount // sentinel, keep last
)

var chipNames = map[Chip]string{
	AT32F415:       "at32f415",
	ATMEGA32:       "atmega32",
	BK7231N:        "bk7231n",
	BK7231U:        "bk7231u",
	BK7251:         "bk7251",
	BL602:          "bl602",
	CH32V:          "ch32v",
	CSK4:           "csk4",
	CSK6:           "csk6",
	ESP32:          "esp32",
	ESP32C2:        "esp32c2",
	ESP32C3:        "esp32c3",
	ESP32C5:        "esp32c5",
	ESP32C6:        "esp32c6",
	ESP32C61:       "esp32c61",
	ESP32H2:        "esp32h2",
	ESP32P4:        "esp32p4",
	ESP32S2:        "esp32s2",
	ESP32S3:        "esp32s3",
	ESP8266:        "esp8266",
	FX2:            "fx2",
	GD32F350:       "gd32f350",
	GD32VF103:      "gd32vf103",
	KL32L2:         "kl32l2",
	LPC55:          "lpc55",
	M0SENSE:        "m0sense",
	MIMXRT10XX:     "mimxrt10xx",
	MaixPlayU4:     "maixplayu4",
	NRF52:          "nrf52",
	NRF52832xxAA:   "nrf52832xxaa",
	NRF52832xxAB:   "nrf52832xxab",
	NRF52833:       "nrf52833",
	NRF52840:       "nrf52840",
	RA4M1:          "ra4m1",
	RP2040:         "rp2040",
	RP2350ArmNS:    "rp2350armns",
	RP2350ArmS:     "rp2350arms",
	RP2350RiscV:    "rp2350riscv",
	RP2xxxAbsolute: "rp2xxxabsolute",
	RP2xxxData:     "rp2xxxdata",
	RTL8710A:       "rtl8710a",
	RTL8710B:       "rtl8710b",
	RTL8720C:       "rtl8720c",
	RTL8720D:       "rtl8720d",
	RZA1LU:         "rza1lu",
	SAMD21:         "samd21",
	SAMD51:         "samd51",
	SAML21:         "saml21",
	STM32F0:        "stm32f0",
	STM32F1:        "stm32f1",
	STM32F2:        "stm32f2",
	STM32F3:        "stm32f3",
	STM32F4:        "stm32f4",
	STM32F407:      "stm32f407",
	STM32F407VG:    "stm32f407vg",
	STM32F411xC:    "stm32f411xc",
	STM32F411xE:    "stm32f411xe",
	STM32F7:        "stm32f7",
	STM32G0:        "stm32g0",
	STM32G4:        "stm32g4",
	STM32H7:        "stm32h7",
	STM32L0:        "stm32l0",
	STM32L1:        "stm32l1",
	STM32L4:        "stm32l4",
	STM32L5:        "stm32l5",
	STM32WB:        "stm32wb",
	STM32WL:        "stm32wl",
	XR809:          "xr809",
}

// chipByName is the reverse of chipNames, built once at init.
var chipByName = func() map[string]Chip {
	m := make(map[string]Chip, len(chipNames))
	for chip, name := range chipNames {
		m[name] = chip
	}
	return m
}()

func (c Chip) String() string {
	if name, ok := chipNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Chip(%d)", uint8(c))
}

// UnknownChipError is returned when a textual chip identifier does not match
// any enumerated chip. It lists the valid identifiers so the user can fix the
// device description without consulting documentation.
type UnknownChipError struct {
	Name string
}

func (e *UnknownChipError) Error() string {
	return fmt.Sprintf("unknown chip %q, supported chips: %s",
		e.Name, strings.Join(ChipNames(), ", "))
}

// ParseChip converts a textual chip identifier into a Chip. Matching is
// case-insensitive. An identifier outside the enumerated set yields an
// *UnknownChipError.
func ParseChip(name string) (Chip, error) {
	if chip, ok := chipByName[strings.ToLower(name)]; ok {
		return chip, nil
	}
	return 0, &UnknownChipError{Name: name}
}

// ChipNames returns all chip identifiers in enumeration order.
func ChipNames() []string {
	names := make([]string, 0, int(chipCount))
	for c := Chip(0); c < chipCount; c++ {
		names = append(names, c.String())
	}
	return names
}
