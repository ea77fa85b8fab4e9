// Package control implements the two compile-time-selectable motor
// control strategies — throttle+PAS and torque-sensor — per spec.md
// §4.6. Exactly one variant is wired into the running application via
// the build-tag-selected constructor in select_throttle_pas.go /
// select_torque_sensor.go, modeling the firmware's preprocessor-chosen
// control law as a statically-dispatched Go interface instead of
// runtime branching (spec.md §9).
package control

import "github.com/ebike-foss/ctrlcore/internal/config"

// PWMDutyCycleMax bounds the open-loop duty-cycle output.
const PWMDutyCycleMax = 254

// PWMDutyCycleMin is the floor below which a commanded duty cycle can't
// actually turn the motor. Not in spec.md's distillation; carried from
// the original firmware's PWM_DUTY_CYCLE_MIN alongside the max it does
// name. ThrottlePASDutyCycle clamps anything under this floor to 0
// instead, avoiding a stall buzz at the bottom of the throttle's range.
const PWMDutyCycleMin = 20

// Inputs are the per-tick values a Strategy consumes to compute motor
// set-points. All fields are read-only snapshots; a Strategy must not
// retain state across calls beyond what an implementation explicitly
// stores in its own struct (e.g. none of the current strategies need to).
type Inputs struct {
	ThrottleFiltered       uint8 // 0..255, post-EMA-filter throttle value
	PASCadenceRPM          uint8
	AssistLevel            uint8
	PowerAssistControlMode bool // true: speed uncapped (current-only control); false: cadence/throttle also sets speed

	MaxCurrent10b  uint16 // ceiling derived from controller_max_current (config package)
	MaxERPSCeiling uint16 // ceiling derived from max_speed/wheel_size/motor_characteristic (config package)

	// TargetSpeedERPSMax is the motor controller's own reported speed
	// ceiling (motor_controller_get_target_speed_erps_max), used as the
	// "uncapped" target when PowerAssistControlMode selects current-only
	// control.
	TargetSpeedERPSMax uint16
}

// Targets are the motor set-points a Strategy computes for the tick.
type Targets struct {
	TargetCurrent10b uint16
	TargetERPS       uint16
	DutyCycle        uint8 // only meaningful for the PWM_DUTY_CYCLE sub-variant
	UseDutyCycle     bool  // true: apply DutyCycle via PWM.SetDutyCycle instead of current/speed set-points
}

// Strategy computes motor set-points from one tick's rider inputs.
type Strategy interface {
	Evaluate(in Inputs) Targets
}

// assistGain looks up the gain multiplier for in.AssistLevel, reusing
// the config package's table so both packages stay in lockstep.
func assistGain(assistLevel uint8) float64 {
	return config.AssistGain(assistLevel)
}

// mapClamped linearly remaps v from [0, inMax] to [0, outMax], matching
// the firmware's map() helper used throughout the strategy evaluators.
func mapClamped(v, inMax, outMax uint32) uint32 {
	if inMax == 0 {
		return 0
	}
	if v > inMax {
		v = inMax
	}
	return v * outMax / inMax
}

func maxUint8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func capERPS(erps uint16, ceiling uint16) uint16 {
	if erps > ceiling {
		return ceiling
	}
	return erps
}

func capCurrent(current uint16, ceiling uint16) uint16 {
	if current > ceiling {
		return ceiling
	}
	return current
}
