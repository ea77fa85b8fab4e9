package app

import (
	"github.com/ebike-foss/ctrlcore/internal/config"
	"github.com/ebike-foss/ctrlcore/internal/cruise"
)

// RiderInputs are the per-tick values read or derived from the rider's
// controls, per spec.md §3.
type RiderInputs struct {
	ADCThrottle      uint8
	ThrottleMapped   uint8
	ThrottleFiltered uint8
	ThrottleReleased bool
	PASCadenceRPM    uint8
	PASDirection     uint8
	BrakeActive      bool
}

// VehicleState is the per-tick computed vehicle telemetry, per spec.md §3.
type VehicleState struct {
	WheelPeriodMS             uint16
	WheelSpeedKMH             float64
	MotorERPSMeasured         uint16
	BatteryVoltageFilteredADC uint8
	BatteryPackVoltsQ8        uint32
	BatterySOCCode            uint8
	ErrorCode                 uint8
}

// State aggregates every piece of process-wide mutable state the
// firmware kept as module globals, per spec.md §9's "global state →
// module state object" guidance.
type State struct {
	Config  config.LcdConfig
	Rider   RiderInputs
	Vehicle VehicleState
	Cruise  cruise.Controller

	// ThrottleADCAtCruiseCapture mirrors the original firmware's second,
	// cruise-control-specific copy of the raw throttle ADC reading
	// (ebike_app_get_adc_throttle_value_cruise_control), kept alongside
	// the filtered value the control strategies use. The traced source
	// fragment never assigns it from an interrupt handler independently
	// of the main reading, so it always mirrors RiderInputs.ADCThrottle.
	ThrottleADCAtCruiseCapture uint8
}
