package motorif

import "testing"

func TestSimulator_AdvanceProducesPlausibleReadings(t *testing.T) {
	s := NewSimulator()

	for i := 0; i < 600; i++ { // 60 simulated seconds at 100ms steps
		s.Advance(0.1)

		if v := s.BatteryVoltageFilteredADC(); v < 70 || v > 120 {
			t.Fatalf("tick %d: BatteryVoltageFilteredADC = %d, out of plausible range", i, v)
		}
		if v := s.ReadThrottle(); v > 255 {
			t.Fatalf("tick %d: ReadThrottle = %d, out of range", i, v)
		}
	}
}

func TestSimulator_BrakeEngagesDuringDeceleration(t *testing.T) {
	s := NewSimulator()
	sawBrake := false
	for i := 0; i < 600; i++ {
		s.Advance(0.1)
		if s.IsSet() {
			sawBrake = true
		}
	}
	if !sawBrake {
		t.Error("simulator never engaged the brake across a full driving cycle")
	}
}

func TestSimulator_ImplementsCollaboratorInterfaces(t *testing.T) {
	var (
		_ Motor           = (*Simulator)(nil)
		_ MotorController = (*Simulator)(nil)
		_ PWM             = (*Simulator)(nil)
		_ Brake           = (*Simulator)(nil)
		_ ADC             = (*Simulator)(nil)
	)
}
