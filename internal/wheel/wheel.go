// Package wheel estimates wheel speed, either from a dedicated wheel
// speed sensor or, when that sensor is disconnected, from the motor's
// electrical RPM (erps) as a fallback, per spec.md §4.1.
package wheel

// PWMCyclesSecond is the timer tick rate backing the wheel sensor
// period measurement, carried from the firmware's PWM_CYCLES_SECOND.
const PWMCyclesSecond = 15625

// Tick-count bounds for the external wheel speed sensor. Ticks outside
// this range are clamped before the speed formula runs, so a noisy or
// momentarily missing pulse train can't produce a speed spike.
const (
	MinPWMCycleTicks = 135   // ~200 km/h on a 6" wheel — fastest plausible pulse
	MaxPWMCycleTicks = 64000 // just under the uint16 rollover — effectively stopped
)

// Estimate is one tick's wheel-speed measurement.
type Estimate struct {
	SpeedKMH   float64
	PeriodMS   float64 // wheel rotation period, for LCD display
	SensorUsed bool    // true if the external sensor reading was used
}

// Speed computes wheel speed in km/h. When sensorDisconnected is true,
// it falls back to deriving speed from the motor's electrical RPM via
// the configured motor characteristic and wheel perimeter; otherwise it
// uses the external wheel sensor's measured tick period.
func Speed(sensorDisconnected bool, motorCharacteristic uint8, motorERPS uint16, sensorPWMCycleTicks uint16, wheelPerimeterM float64) Estimate {
	if sensorDisconnected {
		return fromMotorERPS(motorCharacteristic, motorERPS, wheelPerimeterM)
	}
	return fromSensor(sensorPWMCycleTicks, wheelPerimeterM)
}

func fromMotorERPS(motorCharacteristic uint8, motorERPS uint16, wheelPerimeterM float64) Estimate {
	denom := float64(motorCharacteristic>>1) * 1000
	if denom == 0 {
		return Estimate{SensorUsed: false}
	}
	speed := float64(motorERPS) * 3600 * wheelPerimeterM / denom
	return Estimate{SpeedKMH: speed, SensorUsed: false}
}

func fromSensor(pwmCycleTicks uint16, wheelPerimeterM float64) Estimate {
	ticks := clampTicks(pwmCycleTicks)

	rps := float64(PWMCyclesSecond) / float64(ticks)
	speed := rps * wheelPerimeterM * 3.6

	periodMS := 1000.0 / rps

	return Estimate{SpeedKMH: speed, PeriodMS: periodMS, SensorUsed: true}
}

func clampTicks(ticks uint16) uint16 {
	if ticks < MinPWMCycleTicks {
		return MinPWMCycleTicks
	}
	if ticks > MaxPWMCycleTicks {
		return MaxPWMCycleTicks
	}
	return ticks
}
