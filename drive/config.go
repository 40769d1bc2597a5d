package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config carries every tuning constant of the control core. It is built in
// main and handed down; nothing in the core reads package-level state.
type Config struct {
	Addr              string        `json:"addr"`
	ActuationPeriodMS int           `json:"actuation_period_ms"`
	MaxSpeed          float64       `json:"max_speed"`
	Horizon           int           `json:"horizon"`
	Wheelbase         float64       `json:"wheelbase"`
	SteerLockDeg      float64       `json:"steer_lock_deg"`
	Steering          PIDGains      `json:"steering_gains"`
	Reward            RewardWeights `json:"reward"`
	SteerBand         float64       `json:"steer_band"`
	ThrottleBand      float64       `json:"throttle_band"`
	CruiseThrottle    float64       `json:"cruise_throttle"`
	CoastThrottle     float64       `json:"coast_throttle"`
	InboxCapacity     int           `json:"inbox_capacity"`
}

// DefaultConfig returns the tuning the simulator protocol was calibrated
// against.
func DefaultConfig() Config {
	return Config{
		Addr:              ":4567",
		ActuationPeriodMS: 100,
		MaxSpeed:          70,
		Horizon:           11,
		Wheelbase:         2.67,
		SteerLockDeg:      25,
		Steering:          PIDGains{Kp: 0.12, Kd: 1.8, Ki: 0.005},
		Reward: RewardWeights{
			Progress:       1.0,
			OnRoadBonus:    10.0,
			OffRoadPenalty: -1000.0,
			Lateral:        15.0,
			Sway:           0.2,
			RoadHalfWidth:  3.0,
		},
		SteerBand:      0.2,
		ThrottleBand:   0.05,
		CruiseThrottle: 0.95,
		CoastThrottle:  0.05,
		InboxCapacity:  4,
	}
}

// LoadConfig reads overrides from a JSON file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ActuationPeriodMS <= 0 {
		return fmt.Errorf("invalid actuation_period_ms: %d", c.ActuationPeriodMS)
	}
	if c.Horizon < 1 {
		return fmt.Errorf("invalid horizon: %d", c.Horizon)
	}
	if c.Wheelbase <= 0 {
		return fmt.Errorf("invalid wheelbase: %f", c.Wheelbase)
	}
	if c.InboxCapacity < 1 {
		return fmt.Errorf("invalid inbox_capacity: %d", c.InboxCapacity)
	}
	return nil
}

// Period is the actuation period as a duration. It doubles as the solver's
// wall-clock budget and as dt for the predictor (in seconds).
func (c Config) Period() time.Duration {
	return time.Duration(c.ActuationPeriodMS) * time.Millisecond
}
