// Package cruise implements the cruise-control state machine, per
// spec.md §4.5. The rider holds the throttle steady for just over 8
// seconds (more than 80 ticks at the 10 Hz slow-tick rate) to lock the
// current throttle value as a cruising target; after the throttle is
// released the locked value stays the output until either the throttle
// is pressed again or wheel speed drops below the reset threshold.
package cruise

// CruiseControlMin is the throttle deadband used both to detect "holding
// steady" in State and to detect "throttle released" while armed.
const CruiseControlMin = 20

// LockTicks is the steady-tick count cruise control must exceed to lock:
// it locks on the (LockTicks+1)th consecutive steady tick, just over 8
// seconds at the 100ms slow-tick period.
const LockTicks = 80

// WheelSpeedResetKMH is the wheel speed below which cruise control is
// unconditionally reset, regardless of state.
const WheelSpeedResetKMH = 6

// State is the cruise-control FSM's state.
type State uint8

const (
	// StateIdle: no cruise lock yet; counting consecutive steady ticks.
	StateIdle State = 0
	// StateHold: cruise is locked; output stays at the locked value, and
	// releasing the throttle moves to StateArmedRelease.
	StateHold State = 1
	// StateArmedRelease: throttle was released while locked; waiting for
	// the rider to press the throttle again to resume at StateIdle.
	StateArmedRelease State = 2
)

// Controller holds the FSM's running state across ticks. Zero value
// starts at StateIdle, matching the firmware's zero-initialized globals.
type Controller struct {
	state   State
	counter uint8
	value   uint8 // last throttle value while accumulating toward a lock
	output  uint8 // cruise output for the current tick
}

// State returns the controller's current FSM state.
func (c *Controller) State() State { return c.state }

// IsSet reports whether cruise control currently holds a lock,
// mirroring ebike_app_cruise_control_is_set().
func (c *Controller) IsSet() bool { return c.state != StateIdle }

// Stop forces the controller back to StateIdle, mirroring
// ebike_app_cruise_control_stop().
func (c *Controller) Stop() {
	c.state = StateIdle
	c.counter = 0
}

// Update advances the FSM by one tick given the current throttle value
// and wheel speed, returning the throttle value the motor should target.
// Mirrors ebike_app_cruise_control(), including its uint8 wraparound
// arithmetic in the StateIdle steady-hold test, except that the two
// window bounds are combined with && where the firmware used ||.
func (c *Controller) Update(throttleValue uint8, wheelSpeedKMH float64) uint8 {
	if wheelSpeedKMH < WheelSpeedResetKMH {
		c.state = StateIdle
		c.counter = 0
		return throttleValue
	}

	switch c.state {
	case StateIdle:
		// uint8 arithmetic below intentionally wraps exactly as the C
		// firmware's uint8_t subtraction does when value < CruiseControlMin.
		steady := throttleValue > CruiseControlMin &&
			(throttleValue > (c.value-CruiseControlMin) && throttleValue < (c.value+CruiseControlMin))

		if steady {
			c.counter++
			c.output = throttleValue

			if c.counter > LockTicks {
				c.state = StateHold
				c.output = throttleValue
				c.counter = 0
				c.value = 0
			}
		} else {
			c.counter = 0
			c.value = throttleValue
			c.output = c.value
		}

	case StateHold:
		if throttleValue < CruiseControlMin {
			c.state = StateArmedRelease
		}

	case StateArmedRelease:
		if throttleValue > CruiseControlMin {
			c.state = StateIdle
			c.output = throttleValue
		}
	}

	return c.output
}
