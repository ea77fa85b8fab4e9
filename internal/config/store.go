package config

import (
	"fmt"
	"io"
	"os"
)

// Native binary settings format (.ebcfg), grounded on the teacher's .mmcd
// binary log header/record layout (internal/logger/store.go in the
// teacher repo), shrunk to a single fixed-size record since LcdConfig has
// no time series — just the six persisted bytes plus a header for
// forward-compatible versioning.
//
// Header (8 bytes):
//
//	[4] Magic: "EBCF"
//	[1] Version: 1
//	[3] Reserved
//
// Record (6 bytes, one per field, written atomically as a whole file):
//
//	[1] AssistLevel
//	[1] MotorCharacteristic
//	[1] WheelSize
//	[1] MaxSpeed
//	[1] PowerAssistControlMode (0 or 1)
//	[1] ControllerMaxCurrent
const (
	settingsMagic      = "EBCF"
	settingsVersion    = 1
	settingsHeaderSize = 8
	settingsRecordSize = 6
)

// Store persists an LcdConfig across reboots. Settings are written only
// when they change (spec.md §4.7: "On any changed field, request a
// persistent write"), matching the original firmware's
// eeprom_write_if_values_changed and the teacher's write-whole-file
// binary format.
type Store interface {
	Load() (LcdConfig, error)
	WriteIfChanged(cfg LcdConfig) (changed bool, err error)
}

// FileStore is a Store backed by a single binary file on disk.
type FileStore struct {
	path string
	last LcdConfig
	seen bool
}

// NewFileStore creates a FileStore rooted at path. The file is not
// touched until Load or WriteIfChanged is called.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted config, or returns Default() if no file
// exists yet (first boot).
func (fs *FileStore) Load() (LcdConfig, error) {
	f, err := os.Open(fs.path)
	if os.IsNotExist(err) {
		cfg := Default()
		fs.last = cfg
		fs.seen = true
		return cfg, nil
	}
	if err != nil {
		return LcdConfig{}, fmt.Errorf("open settings file %s: %w", fs.path, err)
	}
	defer f.Close()

	header := make([]byte, settingsHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return LcdConfig{}, fmt.Errorf("read settings header: %w", err)
	}
	if string(header[0:4]) != settingsMagic {
		return LcdConfig{}, fmt.Errorf("settings file %s: bad magic", fs.path)
	}

	record := make([]byte, settingsRecordSize)
	if _, err := io.ReadFull(f, record); err != nil {
		return LcdConfig{}, fmt.Errorf("read settings record: %w", err)
	}

	cfg := LcdConfig{
		AssistLevel:            record[0],
		MotorCharacteristic:    record[1],
		WheelSize:              record[2],
		MaxSpeed:               record[3],
		PowerAssistControlMode: record[4] != 0,
		ControllerMaxCurrent:   record[5],
	}
	fs.last = cfg
	fs.seen = true
	return cfg, nil
}

// WriteIfChanged writes cfg to disk only if it differs from the last
// loaded or written value. Returns whether a write occurred.
func (fs *FileStore) WriteIfChanged(cfg LcdConfig) (bool, error) {
	if fs.seen && fs.last.Equal(cfg) {
		return false, nil
	}

	buf := make([]byte, settingsHeaderSize+settingsRecordSize)
	copy(buf[0:4], settingsMagic)
	buf[4] = settingsVersion

	record := buf[settingsHeaderSize:]
	record[0] = cfg.AssistLevel
	record[1] = cfg.MotorCharacteristic
	record[2] = cfg.WheelSize
	record[3] = cfg.MaxSpeed
	if cfg.PowerAssistControlMode {
		record[4] = 1
	}
	record[5] = cfg.ControllerMaxCurrent

	if err := os.WriteFile(fs.path, buf, 0o644); err != nil {
		return false, fmt.Errorf("write settings file %s: %w", fs.path, err)
	}

	fs.last = cfg
	fs.seen = true
	return true, nil
}

// encodeRecord is exposed for tests that need to check the on-disk
// record layout without going through the filesystem.
func encodeRecord(cfg LcdConfig) []byte {
	b := make([]byte, settingsRecordSize)
	b[0] = cfg.AssistLevel
	b[1] = cfg.MotorCharacteristic
	b[2] = cfg.WheelSize
	b[3] = cfg.MaxSpeed
	if cfg.PowerAssistControlMode {
		b[4] = 1
	}
	b[5] = cfg.ControllerMaxCurrent
	return b
}
