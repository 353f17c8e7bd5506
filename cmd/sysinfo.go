package cmd

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// reportSystem logs the host CPU and memory so render timings in the
// log can be compared across machines.
func reportSystem() {
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		logger.Infof("cpu: %s (%d cores)", info[0].ModelName, len(info))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Infof("memory: %.1f GiB total, %.1f%% in use",
			float64(vm.Total)/(1024*1024*1024), vm.UsedPercent)
	}
}
