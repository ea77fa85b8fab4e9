// Package pas computes pedal-assist cadence from the timer-tick period
// between magnet pulses, per spec.md §4.3.
package pas

// PWMCyclesSecond is the timer tick rate backing the PAS period
// measurement, carried from the firmware's PWM_CYCLES_SECOND.
const PWMCyclesSecond = 15625

// NumberMagnets is the sensor wheel's magnet count. The original
// firmware's PAS_NUMBER_MAGNETS lived in a config.h not present in the
// retrieval pack; 20 magnets is the common value across this firmware
// family's default hardware and is recorded as an Open Question
// resolution in DESIGN.md.
const NumberMagnets = 20

// AbsoluteMinCadencePWMCycleTicks is the tick count at or above which
// cadence is reported as zero (pedaling has effectively stopped).
// Carried verbatim from main.h's PAS_ABSOLUTE_MIN_CADENCE_PWM_CYCLE_TICKS
// (156250 / PAS_NUMBER_MAGNETS, "6RPM PAS cadence floor").
const AbsoluteMinCadencePWMCycleTicks = uint16(156250 / NumberMagnets)

// MaxCadenceRPM caps reported cadence, matching PAS_MAX_CADENCE_RPM.
const MaxCadenceRPM = 120

// Direction values reported by the quadrature-style PAS sensor pair,
// named PAS_DIRECTION_RIGHT/PAS_DIRECTION_LEFT in the original firmware.
const (
	DirectionForward uint8 = 0
	DirectionReverse uint8 = 1
)

// Reading is one tick's pedal-cadence measurement.
type Reading struct {
	CadenceRPM uint8
	IsSet      bool
}

// Estimate computes cadence from the measured inter-pulse tick period
// and sensor direction, mirroring read_pas_cadence_and_direction().
// Pedaling backwards (DirectionReverse) is reported as zero cadence —
// the assist strategies must not drive the motor from backpedaling.
func Estimate(pwmCycleTicks uint16, direction uint8) Reading {
	var cadence uint8

	if pwmCycleTicks < AbsoluteMinCadencePWMCycleTicks {
		// cadence_rpm = 60 / (ticks * magnets * (1/PWMCyclesSecond))
		rpm := 60.0 * PWMCyclesSecond / (float64(pwmCycleTicks) * float64(NumberMagnets))
		if rpm > MaxCadenceRPM {
			rpm = MaxCadenceRPM
		}
		cadence = uint8(rpm)
	}

	if direction == DirectionReverse {
		cadence = 0
	}

	return Reading{CadenceRPM: cadence, IsSet: cadence != 0}
}
