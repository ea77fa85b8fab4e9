package wheel

import "testing"

func TestSpeed_FromSensor(t *testing.T) {
	e := Speed(false, 0, 0, 1000, 2.0625)
	if !e.SensorUsed {
		t.Error("SensorUsed = false, want true when sensor is connected")
	}
	if e.SpeedKMH <= 0 {
		t.Errorf("SpeedKMH = %v, want > 0", e.SpeedKMH)
	}
	if e.PeriodMS <= 0 {
		t.Errorf("PeriodMS = %v, want > 0", e.PeriodMS)
	}
}

func TestSpeed_FromMotorERPSFallback(t *testing.T) {
	e := Speed(true, 202, 300, 0, 2.0625)
	if e.SensorUsed {
		t.Error("SensorUsed = true, want false when sensor is disconnected")
	}
	if e.SpeedKMH <= 0 {
		t.Errorf("SpeedKMH = %v, want > 0", e.SpeedKMH)
	}
}

func TestSpeed_TicksClampedAtBounds(t *testing.T) {
	low := Speed(false, 0, 0, 1, 2.0625)
	atMin := Speed(false, 0, 0, MinPWMCycleTicks, 2.0625)
	if low.SpeedKMH != atMin.SpeedKMH {
		t.Errorf("tick below MinPWMCycleTicks not clamped: got %v, want %v", low.SpeedKMH, atMin.SpeedKMH)
	}

	high := Speed(false, 0, 0, 65535, 2.0625)
	atMax := Speed(false, 0, 0, MaxPWMCycleTicks, 2.0625)
	if high.SpeedKMH != atMax.SpeedKMH {
		t.Errorf("tick above MaxPWMCycleTicks not clamped: got %v, want %v", high.SpeedKMH, atMax.SpeedKMH)
	}
}

func TestSpeed_MonotonicWithTickPeriod(t *testing.T) {
	fast := Speed(false, 0, 0, 500, 2.0625)
	slow := Speed(false, 0, 0, 2000, 2.0625)
	if fast.SpeedKMH <= slow.SpeedKMH {
		t.Errorf("shorter tick period should yield higher speed: fast=%v slow=%v", fast.SpeedKMH, slow.SpeedKMH)
	}
}
