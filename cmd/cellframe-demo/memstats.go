package main

import (
	"runtime"

	"github.com/framegrace/cellframe/render"
)

// MemorySampler reads Go runtime counters into the renderer's memory
// stats, standing in for whatever telemetry a real host would supply.
type MemorySampler struct {
	ms runtime.MemStats
}

func (m *MemorySampler) Sample() render.MemoryStats {
	runtime.ReadMemStats(&m.ms)
	return render.MemoryStats{
		HeapUsed:     m.ms.HeapAlloc,
		HeapTotal:    m.ms.HeapSys,
		ArrayBuffers: m.ms.StackSys,
	}
}
