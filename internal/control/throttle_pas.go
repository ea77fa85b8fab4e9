package control

import "github.com/ebike-foss/ctrlcore/internal/pas"

// ThrottlePAS is the closed-loop (CURRENT_SPEED) throttle+PAS strategy
// and the package's default, grounded on
// ebike_throotle_type_throotle_pas()'s EBIKE_THROTTLE_TYPE_THROTTLE_PAS_CURRENT_SPEED
// branch.
//
// u = max(throttle_filtered, pas_scaled), unless AssistLevelPASOnly is
// set, in which case the assist gain is applied to pas_scaled alone and
// throttle is only reintroduced as a floor afterward.
type ThrottlePAS struct {
	// AssistLevelPASOnly mirrors EBIKE_THROTTLE_TYPE_THROTTLE_PAS_ASSIST_LEVEL_PAS_ONLY:
	// when true, only pedal cadence feeds the assist-gain scaling and
	// throttle is applied as a post-gain floor instead of being blended
	// in up front.
	AssistLevelPASOnly bool
}

func (s ThrottlePAS) Evaluate(in Inputs) Targets {
	pasScaled := uint8(mapClamped(uint32(in.PASCadenceRPM), uint32(pas.MaxCadenceRPM), 255))

	u := pasScaled
	if !s.AssistLevelPASOnly {
		u = maxUint8(in.ThrottleFiltered, pasScaled)
	}

	gained := float64(u) * assistGain(in.AssistLevel)

	var effective uint8
	if s.AssistLevelPASOnly {
		effective = maxUint8(in.ThrottleFiltered, uint8(gained))
	} else {
		effective = uint8(gained)
	}

	targetCurrent := uint16(mapClamped(uint32(effective), 255, uint32(in.MaxCurrent10b)))

	var targetERPS uint16
	if in.PowerAssistControlMode {
		targetERPS = in.TargetSpeedERPSMax
	} else {
		targetERPS = uint16(mapClamped(uint32(effective), 255, uint32(in.TargetSpeedERPSMax)))
	}

	return Targets{
		TargetCurrent10b: capCurrent(targetCurrent, in.MaxCurrent10b),
		TargetERPS:       capERPS(targetERPS, in.MaxERPSCeiling),
	}
}

// ThrottlePASDutyCycle is the open-loop (PWM_DUTY_CYCLE) throttle+PAS
// sub-variant: it writes a PWM duty cycle directly instead of closing a
// current/speed loop, and always targets the motor controller's
// existing speed ceiling.
type ThrottlePASDutyCycle struct{}

func (ThrottlePASDutyCycle) Evaluate(in Inputs) Targets {
	gained := float64(in.ThrottleFiltered) * assistGain(in.AssistLevel)
	duty := uint8(mapClamped(uint32(gained), 255, PWMDutyCycleMax))
	if duty < PWMDutyCycleMin {
		duty = 0
	}

	return Targets{
		TargetERPS:   in.TargetSpeedERPSMax,
		DutyCycle:    duty,
		UseDutyCycle: true,
	}
}
