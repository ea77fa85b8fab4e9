package config

import "testing"

func TestWheelPerimeterM_UnknownCodeFallsBackTo26Inch(t *testing.T) {
	got := WheelPerimeterM(0xFF)
	if got != defaultWheelPerimeterM {
		t.Errorf("WheelPerimeterM(0xFF) = %v, want %v (26\" default)", got, defaultWheelPerimeterM)
	}
}

func TestWheelPerimeterM_Monotonic(t *testing.T) {
	// Wheel size codes in ascending physical size order; perimeter must
	// strictly increase (spec.md §8 property 7).
	order := []uint8{0x12, 0x0a, 0x0e, 0x02, 0x06, 0x00, 0x04, 0x08, 0x0c, 0x10, 0x14, 0x18, 0x1c, 0x1e}
	prev := 0.0
	for _, code := range order {
		p := WheelPerimeterM(code)
		if p <= prev {
			t.Errorf("wheel size 0x%02X perimeter %v is not strictly greater than previous %v", code, p, prev)
		}
		prev = p
	}
}

func TestControllerCurrentMultiplier_Table(t *testing.T) {
	cases := map[uint8]float64{
		0:  0.10,
		1:  0.25,
		2:  0.33,
		3:  0.50,
		4:  0.667,
		5:  0.752,
		6:  0.80,
		7:  0.833,
		8:  0.87,
		9:  0.91,
		10: 1.00,
	}
	for code, want := range cases {
		if got := ControllerCurrentMultiplier(code); got != want {
			t.Errorf("ControllerCurrentMultiplier(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestControllerCurrentMultiplier_DefaultsToOne(t *testing.T) {
	if got := ControllerCurrentMultiplier(11); got != 1.0 {
		t.Errorf("ControllerCurrentMultiplier(11) = %v, want 1.0", got)
	}
}

func TestAssistGain_FallsBackToLevel5(t *testing.T) {
	for _, code := range []uint8{6, 7, 200} {
		if got := AssistGain(code); got != AssistLevel5 {
			t.Errorf("AssistGain(%d) = %v, want AssistLevel5 (%v)", code, got, AssistLevel5)
		}
	}
}

func TestMaxCurrent10b_Bounded(t *testing.T) {
	for code := uint8(0); code <= 10; code++ {
		got := MaxCurrent10b(code)
		if got > ADCMotorCurrentMax10b {
			t.Errorf("MaxCurrent10b(%d) = %d, exceeds hardware max %d", code, got, ADCMotorCurrentMax10b)
		}
	}
	if got := MaxCurrent10b(10); got != ADCMotorCurrentMax10b {
		t.Errorf("MaxCurrent10b(10) = %d, want full hardware max %d", got, ADCMotorCurrentMax10b)
	}
}

func TestMaxErps_DefaultConfig(t *testing.T) {
	// 25 km/h, motor_characteristic=202, 26" wheel.
	got := MaxErps(25, 202, defaultWheelPerimeterM)
	if got == 0 {
		t.Fatal("MaxErps returned 0 for a plausible default configuration")
	}
}
