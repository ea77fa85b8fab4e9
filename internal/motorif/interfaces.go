// Package motorif names the collaborator interfaces the control core
// depends on but does not implement itself — the peripheral and
// commutation layer, per spec.md §6. Only a simulator implementation
// lives in this module; a real deployment wires these interfaces to
// actual ADC/PWM/UART/GPIO drivers outside this core's scope.
package motorif

// Motor reports measurements taken directly from the motor and its
// battery feed.
type Motor interface {
	BatteryVoltageFilteredADC() uint8
	CurrentFiltered10b() int16 // signed; negative = regen, clamped to 0 for display
	ERPSMeasured() uint16
}

// Motor controller error codes. Only BatteryUnderVoltage is
// distinguished by the core; all others pass through to the LCD as-is.
const (
	ErrorNone                = 0
	ErrorBatteryUnderVoltage = 91
)

// MotorController is the commutation/speed-and-current-loop layer the
// core publishes set-points to.
type MotorController interface {
	Error() uint8
	SetTargetCurrent10b(uint16)
	SetTargetSpeedERPS(uint16)
	SetMaxSpeedERPS(uint16)
	TargetSpeedERPSMax() uint16
}

// PWM is the open-loop duty-cycle output used by the PWM_DUTY_CYCLE
// throttle+PAS sub-variant.
type PWM interface {
	SetDutyCycle(uint8)
}

// Brake reports the physical brake lever's state.
type Brake interface {
	IsSet() bool
}

// ADC provides the raw throttle potentiometer reading.
type ADC interface {
	ReadThrottle() uint8
}
