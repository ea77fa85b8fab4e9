// Package throttle conditions the raw throttle ADC reading into the
// 0..255 value the control strategies consume, per spec.md §4.2.
package throttle

// ADC range the throttle potentiometer is wired across. Values outside
// this range are clamped, not rejected — a throttle wired slightly off
// spec should saturate cleanly rather than misbehave.
const (
	ADCMinValue = 45
	ADCMaxValue = 229

	MappedMinValue = 0
	MappedMaxValue = 255
)

// Conditioner holds the throttle filter's running state across ticks.
// Zero value is ready to use (matches the firmware's ui16_throttle_value_accumulated = 0 init).
type Conditioner struct {
	accumulated uint16
}

// Reading is the result of conditioning one tick's raw ADC sample.
type Reading struct {
	ADCRaw   uint8 // raw ADC count
	Mapped   uint8 // ADCRaw linearly remapped to 0..255
	Filtered uint8 // Mapped after the 4-tap exponential filter
	Released bool  // true once Mapped has dropped back to the "off" band
}

// Update conditions one raw ADC sample: remap, filter, and derive the
// released flag. Mirrors read_throotle() in the original firmware.
func (c *Conditioner) Update(adcRaw uint8) Reading {
	mapped := mapClamped(adcRaw, ADCMinValue, ADCMaxValue, MappedMinValue, MappedMaxValue)

	// acc -= acc>>2; acc += mapped; filtered = acc>>2 — four-tap EMA.
	c.accumulated -= c.accumulated >> 2
	c.accumulated += uint16(mapped)
	filtered := uint8(c.accumulated >> 2)

	return Reading{
		ADCRaw: adcRaw,
		Mapped: mapped,
		// throttle_released is set from the post-remap value (spec.md §9
		// Open Question 4), so it flips false only once Mapped clears the
		// threshold — kept as-is per the spec's resolution.
		Filtered: filtered,
		Released: mapped <= ADCMinValue,
	}
}

// IsSet reports whether the raw ADC reading indicates the throttle is
// being actuated at all (spec.md §4.2, throttle_is_set).
func IsSet(adcRaw uint8) bool {
	return adcRaw > ADCMinValue
}

// mapClamped linearly remaps v from [inMin, inMax] to [outMin, outMax],
// clamping at the endpoints. Integer inputs, integer math throughout to
// match the firmware's map() semantics.
func mapClamped(v, inMin, inMax, outMin, outMax uint8) uint8 {
	if v <= inMin {
		return outMin
	}
	if v >= inMax {
		return outMax
	}
	span := int(inMax) - int(inMin)
	outSpan := int(outMax) - int(outMin)
	return uint8(int(outMin) + (int(v)-int(inMin))*outSpan/span)
}
