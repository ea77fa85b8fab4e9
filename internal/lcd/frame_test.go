package lcd

import "testing"

func TestEncodeTX_StartByteAndCRC(t *testing.T) {
	buf := EncodeTX(TXTelemetry{
		BatterySOC:              16,
		WheelPeriodMS:           1234,
		ErrorCode:               0,
		MovingIndication:        MovingThrottle | MovingPAS,
		MotorCurrentFiltered10b: 42,
	})

	if buf[0] != TXStartByte {
		t.Errorf("buf[0] = %d, want start byte %d", buf[0], TXStartByte)
	}

	var want uint8
	for i := 1; i <= 11; i++ {
		want ^= buf[i]
	}
	if want != 0 {
		t.Errorf("CRC over bytes 1..11 (including B6) = %d, want 0", want)
	}
}

func TestEncodeTX_WheelPeriodSplitAcrossBytes(t *testing.T) {
	buf := EncodeTX(TXTelemetry{WheelPeriodMS: 0x1234})
	if buf[3] != 0x12 || buf[4] != 0x34 {
		t.Errorf("wheel period bytes = %02x %02x, want 12 34", buf[3], buf[4])
	}
}

func validRXFrame(crcXOR uint8) [RXFrameSize]byte {
	var buf [RXFrameSize]byte
	buf[0] = rxPreambleByte1
	buf[1] = rxPreambleByte2
	buf[3] = 5                   // assist level
	buf[4] = (2 << 3) | 3        // max_speed bits | wheel size high bits
	buf[5] = 201                 // motor characteristic
	buf[6] = (1 << 6) | (1 << 3) // wheel size low bits | power assist mode bit
	buf[9] = 7                   // controller max current

	var crc uint8
	for i := 0; i <= 12; i++ {
		if i == 7 {
			continue
		}
		crc ^= buf[i]
	}
	buf[7] = crc ^ crcXOR
	return buf
}

func TestDecodeRX_AcceptsAllFourCRCVariants(t *testing.T) {
	for _, mask := range acceptedCRCXORs {
		cfg, err := DecodeRX(validRXFrame(mask))
		if err != nil {
			t.Errorf("DecodeRX with CRC mask %d: unexpected error: %v", mask, err)
		}
		if cfg.AssistLevel != 5 {
			t.Errorf("CRC mask %d: AssistLevel = %d, want 5", mask, cfg.AssistLevel)
		}
	}
}

func TestDecodeRX_RejectsBadCRC(t *testing.T) {
	buf := validRXFrame(acceptedCRCXORs[0])
	buf[7] ^= 0xFF // corrupt the CRC byte
	if _, err := DecodeRX(buf); err == nil {
		t.Error("DecodeRX with corrupted CRC byte = no error, want error")
	}
}

func TestDecodeRX_UnpacksBitfields(t *testing.T) {
	cfg, err := DecodeRX(validRXFrame(acceptedCRCXORs[0]))
	if err != nil {
		t.Fatalf("DecodeRX: %v", err)
	}
	if cfg.AssistLevel != 5 {
		t.Errorf("AssistLevel = %d, want 5", cfg.AssistLevel)
	}
	if cfg.MotorCharacteristic != 201 {
		t.Errorf("MotorCharacteristic = %d, want 201", cfg.MotorCharacteristic)
	}
	if !cfg.PowerAssistControlMode {
		t.Error("PowerAssistControlMode = false, want true")
	}
	if cfg.ControllerMaxCurrent != 7 {
		t.Errorf("ControllerMaxCurrent = %d, want 7", cfg.ControllerMaxCurrent)
	}
}
