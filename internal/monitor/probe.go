package monitor

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/net"
	"github.com/shirou/gopsutil/process"
)

// cpuSampleWindow is the blocking window cpu.Percent needs to measure
// utilisation.
const cpuSampleWindow = 500 * time.Millisecond

const bytesPerGB = 1024 * 1024 * 1024

// hostStats is one raw reading of the host counters the sampler consumes.
type hostStats struct {
	perCoreCPU []float64

	memoryPercent float64
	memoryUsedGB  float64
	memoryTotalGB float64

	diskPercent float64
	diskUsedGB  float64
	diskTotalGB float64

	// Cumulative interface counters; the sampler derives KB/s rates.
	netSentBytes uint64
	netRecvBytes uint64

	processCount int
	connections  int
	appRSSMB     float64
}

// probe reads the host counters. The production implementation wraps
// gopsutil; tests substitute a scripted one.
type probe interface {
	read() (hostStats, error)
}

// gopsutilProbe reads real host counters. CPU, memory, and disk are
// mandatory; process and connection counts degrade to zero since they can
// need elevated privileges.
type gopsutilProbe struct {
	self *process.Process
}

func newGopsutilProbe() *gopsutilProbe {
	// NewProcess only fails when the pid does not exist; our own pid does.
	self, _ := process.NewProcess(int32(os.Getpid()))
	return &gopsutilProbe{self: self}
}

func (p *gopsutilProbe) read() (hostStats, error) {
	var stats hostStats

	perCore, err := cpu.Percent(cpuSampleWindow, true)
	if err != nil {
		return stats, fmt.Errorf("cpu percent: %w", err)
	}
	stats.perCoreCPU = perCore

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, fmt.Errorf("virtual memory: %w", err)
	}
	stats.memoryPercent = vm.UsedPercent
	stats.memoryUsedGB = float64(vm.Used) / bytesPerGB
	stats.memoryTotalGB = float64(vm.Total) / bytesPerGB

	du, err := disk.Usage("/")
	if err != nil {
		return stats, fmt.Errorf("disk usage: %w", err)
	}
	stats.diskPercent = du.UsedPercent
	stats.diskUsedGB = float64(du.Used) / bytesPerGB
	stats.diskTotalGB = float64(du.Total) / bytesPerGB

	counters, err := net.IOCounters(false)
	if err != nil {
		return stats, fmt.Errorf("net counters: %w", err)
	}
	if len(counters) > 0 {
		stats.netSentBytes = counters[0].BytesSent
		stats.netRecvBytes = counters[0].BytesRecv
	}

	if pids, err := process.Pids(); err == nil {
		stats.processCount = len(pids)
	}
	if conns, err := net.Connections("tcp"); err == nil {
		stats.connections = len(conns)
	}
	if p.self != nil {
		if info, err := p.self.MemoryInfo(); err == nil && info != nil {
			stats.appRSSMB = float64(info.RSS) / (1024 * 1024)
		}
	}
	return stats, nil
}
