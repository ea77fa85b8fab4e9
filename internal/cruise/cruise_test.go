package cruise

import "testing"

const fastEnough = WheelSpeedResetKMH + 1

func TestController_LowSpeedResetsToIdle(t *testing.T) {
	var c Controller
	c.state = StateHold
	c.counter = 5

	out := c.Update(100, WheelSpeedResetKMH-1)
	if c.State() != StateIdle {
		t.Errorf("State = %v, want StateIdle after low-speed reset", c.State())
	}
	if out != 100 {
		t.Errorf("Update at low speed = %d, want passthrough of input (100)", out)
	}
}

func TestController_LocksAfterEightSeconds(t *testing.T) {
	var c Controller

	// First tick establishes the held value.
	c.Update(100, fastEnough)
	if c.State() != StateIdle {
		t.Fatalf("State after first tick = %v, want StateIdle", c.State())
	}

	// Hold steady until the counter exceeds LockTicks (counter > 80, so
	// LockTicks+1 steady ticks after the first establishing tick).
	for i := 0; i < LockTicks+1; i++ {
		c.Update(100, fastEnough)
	}
	if c.State() != StateHold {
		t.Errorf("State after %d steady ticks = %v, want StateHold", LockTicks+1, c.State())
	}
}

func TestController_ReleaseThenRepressResumesManualControl(t *testing.T) {
	var c Controller
	c.state = StateHold
	c.output = 150

	// Release: throttle drops below CruiseControlMin.
	out := c.Update(5, fastEnough)
	if c.State() != StateArmedRelease {
		t.Fatalf("State after release = %v, want StateArmedRelease", c.State())
	}
	if out != 150 {
		t.Errorf("Update during release = %d, want held output 150", out)
	}

	// Re-press: throttle above CruiseControlMin hands control back.
	out = c.Update(80, fastEnough)
	if c.State() != StateIdle {
		t.Errorf("State after re-press = %v, want StateIdle", c.State())
	}
	if out != 80 {
		t.Errorf("Update after re-press = %d, want passthrough of input (80)", out)
	}
}

func TestController_IsSetReflectsLockedStates(t *testing.T) {
	var c Controller
	if c.IsSet() {
		t.Error("IsSet() = true at zero value, want false")
	}
	c.state = StateHold
	if !c.IsSet() {
		t.Error("IsSet() = false in StateHold, want true")
	}
}

func TestController_SteadyWindowRequiresBothBounds(t *testing.T) {
	var c Controller
	c.state = StateIdle
	c.value = 100
	c.counter = 50

	// 150 is above the upper bound (c.value+CruiseControlMin = 120) even
	// though it's also above the lower bound (c.value-CruiseControlMin =
	// 80). Only an && test correctly rejects it as "not steady"; an ||
	// test would wrongly accept it because the lower-bound check alone
	// is satisfied.
	c.Update(150, fastEnough)
	if c.counter != 0 {
		t.Errorf("counter = %d after out-of-window throttle jump, want 0 (reset)", c.counter)
	}
	if c.value != 150 {
		t.Errorf("value = %d, want 150 (tracking the new throttle reading)", c.value)
	}
}

func TestController_StopForcesIdle(t *testing.T) {
	var c Controller
	c.state = StateHold
	c.counter = 42
	c.Stop()
	if c.State() != StateIdle {
		t.Errorf("State after Stop = %v, want StateIdle", c.State())
	}
}
