// Package lcdlink provides the real serial transport to the LCD
// display, wrapping the UART the firmware calls UART2. Grounded on the
// teacher's internal/protocol SerialConn, adapted to the LCD link's
// own baud rate and framing.
package lcdlink

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the firmware's UART2 configuration for the
	// LCD link.
	DefaultBaudRate = 9600

	// DefaultDataBits for the LCD protocol (8-N-1).
	DefaultDataBits = 8
)

// Conn wraps a serial port connection to the LCD display.
type Conn struct {
	mu       sync.Mutex
	port     serial.Port
	portName string
	baudRate int
	isOpen   bool
}

// NewConn creates a new LCD serial connection (not yet opened).
func NewConn(portName string, baudRate int) *Conn {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	return &Conn{
		portName: portName,
		baudRate: baudRate,
	}
}

// Open opens the serial port with the LCD link's settings (8N1, no flow
// control).
func (c *Conn) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isOpen {
		return nil
	}

	mode := &serial.Mode{
		BaudRate: c.baudRate,
		DataBits: DefaultDataBits,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}

	port, err := serial.Open(c.portName, mode)
	if err != nil {
		return fmt.Errorf("open lcd serial port %s: %w", c.portName, err)
	}

	// The slow tick runs at 10 Hz; a 50ms read timeout keeps a stalled
	// LCD link from blocking a whole tick period.
	if err := port.SetReadTimeout(50 * time.Millisecond); err != nil {
		port.Close()
		return fmt.Errorf("set lcd serial read timeout: %w", err)
	}

	c.port = port
	c.isOpen = true
	slog.Info("lcd serial port opened", "port", c.portName, "baud", c.baudRate)
	if c.baudRate != DefaultBaudRate {
		slog.Warn("non-standard lcd baud rate", "baud", c.baudRate, "expected", DefaultBaudRate)
	}
	return nil
}

// Close closes the serial port.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return nil
	}

	err := c.port.Close()
	c.isOpen = false
	c.port = nil
	slog.Info("lcd serial port closed", "port", c.portName)
	return err
}

// IsOpen returns whether the port is currently open.
func (c *Conn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// Send writes a TX frame's bytes to the serial port.
func (c *Conn) Send(data []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return 0, fmt.Errorf("lcd serial port not open")
	}
	return c.port.Write(data)
}

// Receive reads bytes from the serial port into buf.
func (c *Conn) Receive(buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return 0, fmt.Errorf("lcd serial port not open")
	}
	return c.port.Read(buf)
}

// PortName returns the configured port name.
func (c *Conn) PortName() string { return c.portName }

// BaudRate returns the configured baud rate.
func (c *Conn) BaudRate() int { return c.baudRate }

// Flush drains any stale bytes from the serial receive buffer. The
// control loop does not call it: a frame that fails its CRC is only
// logged and dropped.
func (c *Conn) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return nil
	}
	return c.port.ResetInputBuffer()
}

// ListPorts returns available serial ports on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
