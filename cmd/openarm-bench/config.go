package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Fixture is the external step/ramp test-fixture file this binary reads:
// one CAN motor address plus the waveform parameters for a single bench
// run. Field names follow the key set the CSV batch runner upstream
// produces per-run, so a fixture file can be handed to this binary
// directly instead of to that runner.
type Fixture struct {
	SendCANID    uint32  `mapstructure:"send_can_id"`
	CANInterface string  `mapstructure:"can_interface"`
	StepTorque   float32 `mapstructure:"step_torque"`
	StepDuration float32 `mapstructure:"step_duration"`
	RiseWidth    float32 `mapstructure:"rise_width"`
	PlateauWidth float32 `mapstructure:"plateau_width"`
	FallWidth    float32 `mapstructure:"fall_width"`
	MaxTorque    float32 `mapstructure:"max_torque"`
	Resolution   float32 `mapstructure:"resolution"`
	TestName     string  `mapstructure:"test_name"`
}

// loadFixture reads a fixture file (YAML, JSON or TOML — whatever
// extension path carries) via viper, the way
// keskad-loco/pkgs/config/config.go loads its own config file.
func loadFixture(path string) (*Fixture, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("can_interface", "can0")
	v.SetDefault("resolution", float32(0.01))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot parse fixture %s: %w", path, err)
	}

	var fx Fixture
	if err := v.Unmarshal(&fx); err != nil {
		return nil, fmt.Errorf("cannot parse fixture %s: %w", path, err)
	}
	return &fx, nil
}
