// cmd/workload_config.go
package cmd

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/workload"
)

// workloadFileOverride holds the subset of workload.Spec a YAML file may
// override; fields absent from the file (nil) are left at their CLI-flag
// values, while a field set explicitly (even to zero) replaces them.
type workloadFileOverride struct {
	Seed      *int64   `yaml:"seed"`
	Horizon   *int64   `yaml:"horizon"`
	Rate      *float64 `yaml:"rate"`
	PWeighted *float64 `yaml:"p_weighted"`
	PHit      *float64 `yaml:"p_hit"`
}

// loadWorkloadOverride parses a workload config YAML file with strict
// field checking: unrecognized keys are a config error, not silently
// ignored.
func loadWorkloadOverride(path string) workloadFileOverride {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("failed to read workload file %s: %v", path, err)
	}
	var override workloadFileOverride
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&override); err != nil {
		logrus.Fatalf("failed to parse workload YAML %s: %v", path, err)
	}
	return override
}

// applyWorkloadOverride layers a workloadFileOverride on top of the
// CLI-flag-derived workload.Spec.
func applyWorkloadOverride(spec workload.Spec, override workloadFileOverride) workload.Spec {
	if override.Seed != nil {
		spec.Seed = *override.Seed
	}
	if override.Horizon != nil {
		spec.Horizon = sim.Ticks(*override.Horizon)
	}
	if override.Rate != nil {
		spec.Rate = *override.Rate
	}
	if override.PWeighted != nil {
		spec.PWeighted = *override.PWeighted
	}
	if override.PHit != nil {
		spec.PHit = *override.PHit
	}
	return spec
}
