// Package compute provides the per-point classification backends.
//
// Every backend evaluates the same kernel for each point independently:
//
//	I = 2·ψs·ψp·cos(phase − φ)
//	visible = |I| > cutoff
//	lobe    = A if I > cutoff else B
//
// The [CPUBackend] splits the index range into one contiguous chunk per worker.
// No locks are taken; each output slot has exactly one writer, and the phase is
// read-only while the workers run.
//
//	backend := compute.AutoSelect(0)
//	backend.Classify(compute.Job{Samples: s, Out: v, Phase: phase, Cutoff: 0.05})
package compute
