package app

// BatteryLiIonCellsNumber is the pack's series cell count. The original
// firmware's BATTERY_LI_ION_CELLS_NUMBER lived in a config.h not
// present in the retrieval pack; 7S is the value spec.md's own worked
// example (S1) and the firmware's COMMUNICATIONS_BATTERY_VOLTAGE
// comment ("7S battery, should be = 24") both assume, so it is adopted
// here rather than invented.
const BatteryLiIonCellsNumber = 7

// ADCBatteryVoltageK converts a filtered battery ADC reading into
// volts × 256 fixed point (Q8).
const ADCBatteryVoltageK = 73

// Battery pack voltage thresholds in Q8 fixed point, derived from
// LI_ION_CELL_VOLTS_{80,60,40,20} × BatteryLiIonCellsNumber × 256,
// truncated exactly as the firmware's uint16_t cast does.
const (
	BatteryPackVolts80 = 7203 // 4.02V/cell
	BatteryPackVolts60 = 6935 // 3.87V/cell
	BatteryPackVolts40 = 6809 // 3.80V/cell
	BatteryPackVolts20 = 6684 // 3.73V/cell
)

// SOC codes reported on the LCD's single SOC byte.
const (
	SOCFull          = 16
	SOCThreeBars     = 12
	SOCTwoBars       = 8
	SOCOneBar        = 4
	SOCEmpty         = 3
	SOCEmptyFlashing = 1 // forced when the motor controller reports battery under-voltage
)

// BatterySOC derives the coarse five-level SOC code from a Q8
// fixed-point pack voltage, mirroring communications_controller()'s SOC
// ladder.
func BatterySOC(packVoltsQ8 uint32) uint8 {
	switch {
	case packVoltsQ8 > BatteryPackVolts80:
		return SOCFull
	case packVoltsQ8 > BatteryPackVolts60:
		return SOCThreeBars
	case packVoltsQ8 > BatteryPackVolts40:
		return SOCTwoBars
	case packVoltsQ8 > BatteryPackVolts20:
		return SOCOneBar
	default:
		return SOCEmpty
	}
}
