// Package lcd implements the framed serial protocol between the
// controller and the LCD display, per spec.md §4.6: a 12-byte TX frame
// reporting telemetry, and a 13-byte RX frame carrying the rider's
// configuration settings.
package lcd

import "fmt"

// Frame sizes.
const (
	TXFrameSize = 12
	RXFrameSize = 13
)

// TXStartByte marks the beginning of every outbound frame.
const TXStartByte = 65

// CommunicationsBatteryVoltage is the B2 constant field reported to the
// LCD, carried from COMMUNICATIONS_BATTERY_VOLTAGE (a 24V-class
// controller report code: 7 cells × 3.45, truncated).
const CommunicationsBatteryVoltage = 24

// Moving-indication bit positions within TX byte 7.
const (
	MovingBrake    = 1 << 5
	MovingCruise   = 1 << 3
	MovingPAS      = 1 << 4
	MovingThrottle = 1 << 1
)

// TXTelemetry is the data communications_controller assembles into the
// outbound frame every tick.
type TXTelemetry struct {
	BatterySOC              uint8 // 0..16, in increments of 4 (bars) plus 1/3 for empty states
	WheelPeriodMS           uint16
	ErrorCode               uint8
	MovingIndication        uint8 // OR of the Moving* bit constants
	MotorCurrentFiltered10b uint8
}

// EncodeTX assembles a 12-byte TX frame from t, computing the XOR CRC
// over bytes 1..11 and placing it at byte 6. Mirrors the TX half of
// communications_controller().
func EncodeTX(t TXTelemetry) [TXFrameSize]byte {
	var buf [TXFrameSize]byte

	buf[0] = TXStartByte
	buf[1] = t.BatterySOC
	buf[2] = CommunicationsBatteryVoltage
	buf[3] = byte(t.WheelPeriodMS >> 8)
	buf[4] = byte(t.WheelPeriodMS)
	buf[5] = t.ErrorCode
	buf[6] = 0 // CRC placeholder, filled below
	buf[7] = t.MovingIndication
	buf[8] = t.MotorCurrentFiltered10b
	buf[9] = 0 // motor temperature, unused
	buf[10] = 0
	buf[11] = 0

	var crc uint8
	for i := 1; i <= 11; i++ {
		crc ^= buf[i]
	}
	buf[6] = crc

	return buf
}

// acceptedCRCXORs are the XOR masks tolerated between the frame's
// computed CRC and the byte actually carried at RX[7], matching the
// several LCD firmware variants the controller has been seen paired
// with in the field.
var acceptedCRCXORs = [...]uint8{10, 5, 9, 2}

// RXConfig is the rider-configurable settings decoded from an RX frame.
type RXConfig struct {
	AssistLevel            uint8
	MotorCharacteristic    uint8
	WheelSize              uint8
	MaxSpeed               uint8
	PowerAssistControlMode bool
	ControllerMaxCurrent   uint8
}

// DecodeRX validates an RX frame's CRC and, if it checks out, unpacks
// the rider's configuration settings. Mirrors the RX half of
// communications_controller(), including its bitfield unpack formulas.
func DecodeRX(buf [RXFrameSize]byte) (RXConfig, error) {
	var crc uint8
	for i := 0; i <= 12; i++ {
		if i == 7 {
			continue // byte 7 carries the CRC itself, not XORed in
		}
		crc ^= buf[i]
	}

	ok := false
	for _, mask := range acceptedCRCXORs {
		if (crc ^ mask) == buf[7] {
			ok = true
			break
		}
	}
	if !ok {
		return RXConfig{}, fmt.Errorf("lcd: rx frame failed CRC validation")
	}

	return RXConfig{
		AssistLevel:         buf[3] & 7,
		MotorCharacteristic: buf[5],
		WheelSize:           ((buf[6] & 192) >> 6) | ((buf[4] & 7) << 2),
		// Operator-precedence quirk preserved intentionally: in the
		// original C, `+` binds tighter than `|`, so this is
		// (10 + ((rx4&248)>>3)) | (rx6&32), not 10 + (... | ...).
		MaxSpeed:               (10 + ((buf[4] & 248) >> 3)) | (buf[6] & 32),
		PowerAssistControlMode: buf[6]&8 != 0,
		ControllerMaxCurrent:   buf[9] & 15,
	}, nil
}
