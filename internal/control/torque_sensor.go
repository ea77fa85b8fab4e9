package control

import "github.com/ebike-foss/ctrlcore/internal/pas"

// TorqueSensor is the torque-sensor control strategy, grounded on
// ebike_throotle_type_torque_sensor(). It reuses the throttle ADC path
// but halves its effective range, since a torque sensor's wiper travel
// only covers half the throttle pot's range on this hardware.
type TorqueSensor struct {
	// HumanPower mirrors EBIKE_THROTTLE_TYPE_TORQUE_SENSOR_HUMAN_POWER:
	// when true, the scaled torque value is further multiplied by
	// cadence/pas.MaxCadenceRPM to approximate mechanical power rather
	// than torque alone.
	HumanPower bool
}

func (s TorqueSensor) Evaluate(in Inputs) Targets {
	torque := in.ThrottleFiltered >> 1
	scaled := float64(torque) * assistGain(in.AssistLevel)

	if s.HumanPower {
		scaled *= float64(in.PASCadenceRPM) / float64(pas.MaxCadenceRPM)
	}

	u := uint16(scaled)
	targetCurrent := uint16(mapClamped(uint32(u), 255, uint32(in.MaxCurrent10b)))

	var targetERPS uint16
	if in.PowerAssistControlMode {
		targetERPS = in.TargetSpeedERPSMax
	} else {
		targetERPS = uint16(mapClamped(uint32(u), 255, uint32(in.TargetSpeedERPSMax)))
	}

	return Targets{
		TargetCurrent10b: capCurrent(targetCurrent, in.MaxCurrent10b),
		TargetERPS:       capERPS(targetERPS, in.MaxERPSCeiling),
	}
}
