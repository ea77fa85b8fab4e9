package lcd

// RX frame preamble bytes the byte-sync state machine locks onto
// before it starts accumulating a frame body.
const (
	rxPreambleByte1 = 50
	rxPreambleByte2 = 14
)

// linkState is the byte-sync state machine's state, mirroring the
// three-state dispatch inside the original firmware's UART2_IRQHandler.
type linkState uint8

const (
	linkWaitByte1 linkState = iota
	linkWaitByte2
	linkAccumulating
)

// Synchronizer re-assembles RX frames from a raw, possibly
// misaligned byte stream, one byte at a time — the Go-side analogue of
// the firmware's UART receive interrupt, which hands the main loop a
// complete frame rather than individual bytes (spec.md §5's
// ISR-to-main-loop handoff model).
type Synchronizer struct {
	state linkState
	buf   [RXFrameSize]byte
	count int
}

// Feed processes one received byte. It returns a complete frame and
// ok=true exactly when that byte completes a frame; any preamble
// mismatch silently resets the synchronizer back to hunting for byte 1,
// matching the firmware's behavior of dropping resync noise rather than
// surfacing an error for it.
func (s *Synchronizer) Feed(b byte) (frame [RXFrameSize]byte, ok bool) {
	switch s.state {
	case linkWaitByte1:
		if b == rxPreambleByte1 {
			s.buf[0] = b
			s.count = 1
			s.state = linkWaitByte2
		}

	case linkWaitByte2:
		if b == rxPreambleByte2 {
			s.buf[1] = b
			s.count = 2
			s.state = linkAccumulating
		} else {
			s.count = 0
			s.state = linkWaitByte1
		}

	case linkAccumulating:
		s.buf[s.count] = b
		s.count++
		if s.count >= RXFrameSize {
			frame = s.buf
			ok = true
			s.count = 0
			s.state = linkWaitByte1
		}
	}

	return frame, ok
}

// Reset returns the synchronizer to its initial hunting-for-preamble
// state, discarding any partially accumulated frame.
func (s *Synchronizer) Reset() {
	s.state = linkWaitByte1
	s.count = 0
}
