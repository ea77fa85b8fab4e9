package config

import (
	"path/filepath"
	"testing"
)

func TestFileStore_LoadMissingFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ebcfg")
	fs := NewFileStore(path)

	cfg, err := fs.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Equal(Default()) {
		t.Errorf("Load() on missing file = %+v, want defaults %+v", cfg, Default())
	}
}

func TestFileStore_WriteIfChangedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ebcfg")
	fs := NewFileStore(path)

	cfg := LcdConfig{
		AssistLevel:            3,
		MotorCharacteristic:    210,
		WheelSize:              0x14,
		MaxSpeed:               32,
		PowerAssistControlMode: false,
		ControllerMaxCurrent:   7,
	}

	changed, err := fs.WriteIfChanged(cfg)
	if err != nil {
		t.Fatalf("WriteIfChanged: %v", err)
	}
	if !changed {
		t.Fatal("WriteIfChanged reported no change on first write")
	}

	fs2 := NewFileStore(path)
	got, err := fs2.Load()
	if err != nil {
		t.Fatalf("Load after write: %v", err)
	}
	if !got.Equal(cfg) {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestFileStore_WriteIfChangedSkipsIdenticalValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ebcfg")
	fs := NewFileStore(path)
	cfg := Default()

	if _, err := fs.WriteIfChanged(cfg); err != nil {
		t.Fatalf("first write: %v", err)
	}
	changed, err := fs.WriteIfChanged(cfg)
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if changed {
		t.Error("WriteIfChanged reported a change for an identical config")
	}
}

func TestFileStore_WriteIfChangedDetectsSingleFieldChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ebcfg")
	fs := NewFileStore(path)
	cfg := Default()

	if _, err := fs.WriteIfChanged(cfg); err != nil {
		t.Fatalf("first write: %v", err)
	}

	cfg.AssistLevel = cfg.AssistLevel + 1
	changed, err := fs.WriteIfChanged(cfg)
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if !changed {
		t.Error("WriteIfChanged missed a single-field change")
	}
}

func TestEncodeRecord_PowerAssistModeIsSingleBit(t *testing.T) {
	cfg := Default()
	cfg.PowerAssistControlMode = true
	rec := encodeRecord(cfg)
	if rec[4] != 1 {
		t.Errorf("encodeRecord power-assist byte = %d, want 1", rec[4])
	}

	cfg.PowerAssistControlMode = false
	rec = encodeRecord(cfg)
	if rec[4] != 0 {
		t.Errorf("encodeRecord power-assist byte = %d, want 0", rec[4])
	}
}
