// Package config holds the rider-adjustable settings mirrored from the
// handlebar LCD (LcdConfig) together with the lookup tables that turn
// those settings into motor-controller limits.
package config

// LcdConfig is the set of rider-adjustable settings synced with the LCD
// over the wire protocol in internal/lcd, and persisted across reboots.
type LcdConfig struct {
	AssistLevel            uint8 // 0..7; only 0..5 are defined, 5 is the fallback
	MotorCharacteristic    uint8 // RPM-per-volt x16, encoded
	WheelSize              uint8 // 5-bit code indexing the wheel perimeter table
	MaxSpeed               uint8 // km/h, upper speed cap (10..41)
	PowerAssistControlMode bool  // false: cadence/throttle also modulates speed; true: current only, speed unconstrained up to cap
	ControllerMaxCurrent   uint8 // 0..10, indexes the fractional-of-hardware-max current table
}

// Default returns the documented first-boot defaults (spec.md §6,
// "Persistent state layout").
func Default() LcdConfig {
	return LcdConfig{
		AssistLevel:            2,
		MotorCharacteristic:    202,
		WheelSize:              20, // 26"
		MaxSpeed:               25,
		PowerAssistControlMode: true,
		ControllerMaxCurrent:   10,
	}
}

// Equal reports whether two configs carry the same rider-visible values.
func (c LcdConfig) Equal(other LcdConfig) bool {
	return c == other
}
