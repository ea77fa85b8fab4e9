package motorif

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Simulator generates a synthetic driving cycle for bench testing and
// demoing the control core without real hardware. It implements Motor,
// MotorController, PWM, Brake, and ADC, and cycles through
// idle → accelerate → cruise → decelerate → idle, grounded on the
// teacher's protocol.Simulator driving-cycle shape.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand

	tick float64 // simulated seconds

	throttleADC      uint8
	motorERPS        uint16
	currentFiltered  int16
	batteryADC       uint8
	brakeActive      bool
	dutyCycle        uint8
	targetCurrent10b uint16
	targetSpeedERPS  uint16
	maxSpeedERPS     uint16
	errorCode        uint8

	// Bench-only extensions beyond the named collaborator interfaces,
	// used by internal/cli's run command (simDrive) to also drive the PAS and
	// wheel-speed-sensor inputs the core reads directly from shared
	// state rather than through a collaborator.
	pasPeriodTicks   uint16
	pasDirection     uint8
	wheelPeriodTicks uint16
}

// NewSimulator creates a driving-cycle simulator seeded from the
// current time.
func NewSimulator() *Simulator {
	return &Simulator{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		batteryADC: 110,
	}
}

// Advance steps the simulated driving cycle forward by dt seconds,
// recomputing every collaborator-visible value. Call once per tick
// before reading the Motor/MotorController/Brake/ADC accessors.
func (s *Simulator) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick += dt
	cyclePos := math.Mod(s.tick, 60.0)

	var throttleTarget, erpsTarget float64
	switch {
	case cyclePos < 10: // idle
		throttleTarget, erpsTarget = 0, 0
	case cyclePos < 20: // accelerate
		progress := (cyclePos - 10) / 10.0
		throttleTarget = progress * 200
		erpsTarget = progress * 300
	case cyclePos < 40: // cruise
		throttleTarget, erpsTarget = 160, 260
	case cyclePos < 50: // decelerate
		progress := (cyclePos - 40) / 10.0
		throttleTarget = 160 * (1 - progress)
		erpsTarget = 260 * (1 - progress)
	default: // idle again
		throttleTarget, erpsTarget = 0, 0
	}

	noise := func(base, amplitude float64) float64 {
		return base + (s.rng.Float64()-0.5)*2*amplitude
	}

	s.throttleADC = byte(clamp(noise(45+throttleTarget*0.72, 2), 0, 255))
	s.motorERPS = uint16(clamp(noise(erpsTarget, 5), 0, 1000))
	s.currentFiltered = int16(clamp(noise(erpsTarget*0.4, 3), 0, 660))

	// Slow battery sag proportional to load, floor at a plausible
	// low-charge value so the SOC table's lower bands are reachable.
	s.batteryADC = byte(clamp(noise(112-erpsTarget*0.02, 1), 70, 120))

	s.brakeActive = cyclePos >= 49.5 && cyclePos < 50.5

	// PAS and wheel-sensor tick periods fall as erps rises (shorter
	// period = faster rotation); held at their stopped ceiling at idle.
	if erpsTarget < 5 {
		s.pasPeriodTicks = 60000
		s.wheelPeriodTicks = 60000
	} else {
		s.pasPeriodTicks = uint16(clamp(8000-erpsTarget*20, 600, 60000))
		s.wheelPeriodTicks = uint16(clamp(6000-erpsTarget*15, 135, 60000))
	}
	s.pasDirection = 0 // forward
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Motor interface.

func (s *Simulator) BatteryVoltageFilteredADC() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batteryADC
}

func (s *Simulator) CurrentFiltered10b() int16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFiltered
}

func (s *Simulator) ERPSMeasured() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.motorERPS
}

// MotorController interface.

func (s *Simulator) Error() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorCode
}

func (s *Simulator) SetTargetCurrent10b(v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetCurrent10b = v
}

func (s *Simulator) SetTargetSpeedERPS(v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetSpeedERPS = v
}

func (s *Simulator) SetMaxSpeedERPS(v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSpeedERPS = v
}

func (s *Simulator) TargetSpeedERPSMax() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxSpeedERPS == 0 {
		return 1000
	}
	return s.maxSpeedERPS
}

// PWM interface.

func (s *Simulator) SetDutyCycle(v uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dutyCycle = v
}

// Brake interface.

func (s *Simulator) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brakeActive
}

// ADC interface.

func (s *Simulator) ReadThrottle() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.throttleADC
}

// PASPeriodTicks and WheelPeriodTicks expose the bench-only sensor
// period extensions described above.
func (s *Simulator) PASPeriodTicks() (ticks uint16, direction uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pasPeriodTicks, s.pasDirection
}

func (s *Simulator) WheelPeriodTicks() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wheelPeriodTicks
}
