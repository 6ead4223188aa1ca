package utils

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// GetCPUUsage returns the current CPU usage as a percentage, sampled over interval.
func GetCPUUsage(ctx context.Context, interval time.Duration) float64 {
	percentage, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		log.Warn().Err(err).Msg("reading CPU usage")
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

// GetMemoryUsage returns used memory as a percentage of the total.
func GetMemoryUsage(ctx context.Context) float64 {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reading memory usage")
		return 0
	}
	return vm.UsedPercent
}
