package compute

import (
	"fmt"
	"math"
	"runtime"

	"github.com/san-kum/orbsim/internal/cloud"
)

// minChunk keeps goroutine overhead below the per-chunk work.
const minChunk = 8192

type CPUBackend struct {
	workers int
	table   *TrigTable
}

func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{workers: workers}
}

// WithTrigTable switches the kernel to the interpolated cosine lookup.
func (c *CPUBackend) WithTrigTable(t *TrigTable) *CPUBackend {
	c.table = t
	return c
}

func (c *CPUBackend) Name() string {
	if c.table != nil {
		return fmt.Sprintf("cpu x%d (table trig)", c.workers)
	}
	return fmt.Sprintf("cpu x%d", c.workers)
}

func (c *CPUBackend) Workers() int { return c.workers }

func (c *CPUBackend) Classify(job Job) {
	cos := math.Cos
	if c.table != nil {
		cos = c.table.Cos
	}
	cloud.ParallelFor(job.Samples.Len(), minChunk, c.workers, func(start, end int) {
		classifyRange(job, cos, start, end)
	})
}
