package compute

import (
	"math"
	"testing"
)

func TestTrigTable_Cos(t *testing.T) {
	table := NewTrigTable(DefaultTableSize)
	for x := -20.0; x < 20; x += 0.0137 {
		if got, want := table.Cos(x), math.Cos(x); math.Abs(got-want) > 1e-5 {
			t.Fatalf("Cos(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestTrigTableBackendClose(t *testing.T) {
	s := randomSamples(20000, 11)
	job := Job{Samples: s, Phase: 0.4, Cutoff: 0.03}

	exact := newOut(s.Len())
	job.Out = exact
	NewSerialBackend().Classify(job)

	approx := newOut(s.Len())
	job.Out = approx
	NewCPUBackend(4).WithTrigTable(NewTrigTable(DefaultTableSize)).Classify(job)

	diff := 0
	for i := range exact.Visible {
		if exact.Visible[i] != approx.Visible[i] {
			diff++
		}
	}
	// only points within interpolation error of the cutoff may flip
	if diff > s.Len()/1000 {
		t.Errorf("table trig flipped %d of %d points", diff, s.Len())
	}
}

func BenchmarkSerial(b *testing.B) {
	s := randomSamples(200000, 1)
	job := Job{Samples: s, Out: newOut(s.Len()), Cutoff: 0.05}
	backend := NewSerialBackend()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		job.Phase += 0.01
		backend.Classify(job)
	}
}

func BenchmarkCPU(b *testing.B) {
	s := randomSamples(200000, 1)
	job := Job{Samples: s, Out: newOut(s.Len()), Cutoff: 0.05}
	backend := NewCPUBackend(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		job.Phase += 0.01
		backend.Classify(job)
	}
}

func BenchmarkCPUTable(b *testing.B) {
	s := randomSamples(200000, 1)
	job := Job{Samples: s, Out: newOut(s.Len()), Cutoff: 0.05}
	backend := NewCPUBackend(0).WithTrigTable(NewTrigTable(DefaultTableSize))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		job.Phase += 0.01
		backend.Classify(job)
	}
}
