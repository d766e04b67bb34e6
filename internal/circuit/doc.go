// Package circuit provides an analytic model of a bipolar common-emitter
// amplifier.
//
// The model is a fixed sequence of closed-form equations evaluated from a
// [Parameters] value:
//
//   - [OperatingPoint]: DC bias currents and node voltages
//   - [ACParameters]: transconductance, small-signal gain and impedances
//   - [FrequencyResponse]: gain and phase over a logarithmic sweep
//   - [Waveform]: input and output voltages over five signal periods
//
// # Example
//
//	m, err := circuit.Evaluate(circuit.DefaultParameters())
//	if err != nil {
//	    return err
//	}
//	resp, _ := m.FrequencyResponse(circuit.DefaultSamples)
//
// # Thread Safety
//
// A [Model] is immutable once [Evaluate] returns and may be shared between
// goroutines. Every derived sequence is a fresh copy owned by the caller.
package circuit
