package trvsched

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default Params values.
const (
	DefaultGranularityMins     = 6
	DefaultEcoOnPeriodMins     = 60
	DefaultComfortOnPeriodMins = 120
	DefaultMaxSchedules        = 2
)

// Params collects the static configuration of an Engine.
type Params struct {
	// GranularityMins is the resolution of stored on times, in
	// minutes. Must divide a day evenly and be at least 6 so a full
	// day of buckets fits in one byte with ErasedByte left over.
	GranularityMins int `yaml:"granularity_mins"`

	// EcoOnPeriodMins and ComfortOnPeriodMins are the scheduled WARM
	// period lengths at each end of the dial, eco never longer than
	// comfort.
	EcoOnPeriodMins     int `yaml:"eco_on_mins"`
	ComfortOnPeriodMins int `yaml:"comfort_on_mins"`

	// MaxSchedules is the number of independent schedule slots.
	MaxSchedules int `yaml:"max_schedules"`

	// BaseAddr is the store address of slot 0; slot i lives at
	// BaseAddr+i.
	BaseAddr uint16 `yaml:"base_addr"`
}

// Normalize fills unset fields with their default values.
func (p *Params) Normalize() {
	if p.GranularityMins == 0 {
		p.GranularityMins = DefaultGranularityMins
	}
	if p.EcoOnPeriodMins == 0 {
		p.EcoOnPeriodMins = DefaultEcoOnPeriodMins
	}
	if p.ComfortOnPeriodMins == 0 {
		p.ComfortOnPeriodMins = DefaultComfortOnPeriodMins
	}
	if p.MaxSchedules == 0 {
		p.MaxSchedules = DefaultMaxSchedules
	}
}

// Validate returns the first problem found in p, nil if none.
func (p *Params) Validate() error {
	switch {
	case p.GranularityMins < 6:
		return fmt.Errorf("granularity_mins must be >= 6, got %d",
			p.GranularityMins)
	case MinsPerDay%p.GranularityMins != 0:
		return fmt.Errorf("granularity_mins must divide %d evenly, got %d",
			MinsPerDay, p.GranularityMins)
	case p.EcoOnPeriodMins <= 0:
		return fmt.Errorf("eco_on_mins must be > 0, got %d",
			p.EcoOnPeriodMins)
	case p.ComfortOnPeriodMins < p.EcoOnPeriodMins:
		return fmt.Errorf("comfort_on_mins (%d) must be >= eco_on_mins (%d)",
			p.ComfortOnPeriodMins, p.EcoOnPeriodMins)
	case p.ComfortOnPeriodMins > 720:
		return fmt.Errorf("comfort_on_mins must be <= 720, got %d",
			p.ComfortOnPeriodMins)
	case p.MaxSchedules <= 0:
		return fmt.Errorf("max_schedules must be > 0, got %d",
			p.MaxSchedules)
	}
	return nil
}

// LoadParams reads, normalizes and validates a YAML parameters file.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, err
	}

	var p Params
	if err = yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("%s: %s", path, err)
	}

	p.Normalize()
	if err = p.Validate(); err != nil {
		return Params{}, fmt.Errorf("%s: %s", path, err)
	}
	return p, nil
}
