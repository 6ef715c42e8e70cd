package rain

import (
	"errors"

	"github.com/shirou/gopsutil/v3/cpu"
)

// CPUSampler reads system-wide CPU utilization via gopsutil. Zero interval
// means each call reports usage since the previous call, so the sampler
// never blocks the monitoring loop.
type CPUSampler struct{}

func (CPUSampler) SampleUtilization() (float64, error) {
	pcts, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, errors.New("no cpu sample")
	}
	return clampF(pcts[0], 0, 100), nil
}
