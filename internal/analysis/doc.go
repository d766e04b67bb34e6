// Package analysis post-processes evaluated amplifier data.
//
// The package works on the arrays produced by the circuit model:
//
//   - [NewSpectrum]: single-sided amplitude spectrum of a waveform column
//   - [Bandwidth]: -3 dB edges of a sampled frequency response
//   - [Crossings]: interpolated positive-going threshold crossings
//   - [TransferCurve]: input versus output points for an ASCII plot
//   - [SweepParameter]: operating point and gain across one parameter range
//
// # Dominant Frequency
//
// The strongest non-DC bin of the output spectrum sits at the input frequency
// for a linear amplifier:
//
//	spec, err := analysis.NewSpectrum(wf, analysis.SignalVoutTotal)
//	if err != nil {
//	    return err
//	}
//	bin, _ := spec.Dominant()
package analysis
