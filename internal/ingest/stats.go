package ingest

import (
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// resourceSnapshot samples host and process resource usage for the run
// report. Sampling failures leave the affected keys out rather than
// failing the run.
func resourceSnapshot() map[string]interface{} {
	out := make(map[string]interface{}, 4)

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		out["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		out["host_memory_used_percent"] = vm.UsedPercent
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			out["process_rss_bytes"] = mi.RSS
		}
		if threads, err := proc.NumThreads(); err == nil {
			out["process_threads"] = threads
		}
	}
	return out
}
