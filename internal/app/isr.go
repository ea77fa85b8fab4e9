package app

import (
	"sync"
	"sync/atomic"

	"github.com/ebike-foss/ctrlcore/internal/lcd"
)

// SharedState holds the values the application's simulated interrupt
// sources publish and the main tick consumes, per spec.md §5. Single
// atomic words model the 8-bit-MCU guarantee that single-byte
// reads/writes are atomic; the RX frame buffer is the one multi-byte
// value and is guarded by a short critical section plus an explicit
// ready/gate handoff mirroring the firmware's UART RX interrupt
// enable bit.
type SharedState struct {
	pasPeriodTicks    atomic.Uint32
	pasDirection      atomic.Uint32
	wheelPeriodTicks  atomic.Uint32
	wheelDisconnected atomic.Bool

	mu        sync.Mutex
	linkSync  lcd.Synchronizer
	accepting bool
	frame     [lcd.RXFrameSize]byte
	ready     bool
}

// NewSharedState returns a SharedState ready to accept interrupt
// callbacks and main-tick reads. The RX gate starts open.
func NewSharedState() *SharedState {
	s := &SharedState{accepting: true}
	return s
}

// SetPASPeriod is called from the PAS edge interrupt.
func (s *SharedState) SetPASPeriod(ticks uint16, direction uint8) {
	s.pasPeriodTicks.Store(uint32(ticks))
	s.pasDirection.Store(uint32(direction))
}

// PASPeriod is called from the main tick to read the most recently
// published PAS period and direction.
func (s *SharedState) PASPeriod() (ticks uint16, direction uint8) {
	return uint16(s.pasPeriodTicks.Load()), uint8(s.pasDirection.Load())
}

// SetWheelPeriod is called from the wheel-speed-sensor edge interrupt.
func (s *SharedState) SetWheelPeriod(ticks uint16) {
	s.wheelPeriodTicks.Store(uint32(ticks))
}

// WheelPeriod is called from the main tick.
func (s *SharedState) WheelPeriod() uint16 {
	return uint16(s.wheelPeriodTicks.Load())
}

// SetWheelSensorDisconnected is called from whatever peripheral watchdog
// detects a missing wheel-sensor edge stream.
func (s *SharedState) SetWheelSensorDisconnected(disconnected bool) {
	s.wheelDisconnected.Store(disconnected)
}

// WheelSensorDisconnected is called from the main tick.
func (s *SharedState) WheelSensorDisconnected() bool {
	return s.wheelDisconnected.Load()
}

// FeedRXByte is called from the UART RX interrupt (or, in this
// simulated environment, a serial reader goroutine standing in for
// one) with each byte received from the LCD. Bytes are dropped while
// the gate is closed — i.e. while a previously assembled frame is still
// awaiting main-loop processing — mirroring the firmware disabling the
// UART2 RX interrupt until the main loop re-enables it.
func (s *SharedState) FeedRXByte(b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.accepting {
		return
	}

	frame, ok := s.linkSync.Feed(b)
	if !ok {
		return
	}

	s.frame = frame
	s.ready = true
	s.accepting = false
}

// TakeRXFrame is called once per tick from the main loop. It returns
// the pending frame, if any, and re-opens the RX gate — the handoff
// that re-enables the UART RX interrupt in the original firmware.
func (s *SharedState) TakeRXFrame() (frame [lcd.RXFrameSize]byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return frame, false
	}

	frame = s.frame
	s.ready = false
	s.accepting = true
	return frame, true
}
