// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/policy"
	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

var (
	numCPUs          int
	policyName       string
	admissionName    string
	admissionCap     float64
	admissionRefill  float64
	traceLevel       string
	priorityName     string
	observeInvariant bool
	logLevel         string

	seed         int64
	horizon      int64
	rate         float64
	pWeighted    float64
	pHit         float64
	workloadFile string
)

var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Discrete-event simulator for a pluggable CPU scheduler core",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	registerSharedFlags(runCmd)
	registerSharedFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}

func registerSharedFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&numCPUs, "num-cpus", 4, "Number of CPUs in the simulated kernel")
	cmd.Flags().StringVar(&admissionName, "admission", "always-admit", "Admission policy (always-admit, token-bucket)")
	cmd.Flags().Float64Var(&admissionCap, "admission-capacity", 100, "Token bucket capacity (token-bucket only)")
	cmd.Flags().Float64Var(&admissionRefill, "admission-refill", 10, "Token bucket refill rate, tokens/tick (token-bucket only)")
	cmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	cmd.Flags().StringVar(&priorityName, "priority", "constant", "Decision-trace priority scoring signal (constant, slo-based, inverted-slo)")
	cmd.Flags().BoolVar(&observeInvariant, "observe", true, "Run the invariant-checking Observer pass each tick")
	cmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")

	cmd.Flags().Int64Var(&seed, "seed", 1, "Master RNG seed")
	cmd.Flags().Int64Var(&horizon, "horizon", 10000, "Simulation horizon in ticks")
	cmd.Flags().Float64Var(&rate, "rate", 0.1, "Poisson job arrival rate, jobs/tick (λ)")
	cmd.Flags().Float64Var(&pWeighted, "p-weighted", 0.1, "Probability an arriving job is heavy-weight")
	cmd.Flags().Float64Var(&pHit, "p-hit", 0.7, "Probability an arriving job is short-running")
	cmd.Flags().StringVar(&workloadFile, "workload-file", "", "Optional YAML file overriding seed/horizon/rate/p-weighted/p-hit")
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func buildJobs() []sim.Job {
	spec := workload.Spec{
		Seed:      seed,
		Horizon:   sim.Ticks(horizon),
		Rate:      rate,
		PWeighted: pWeighted,
		PHit:      pHit,
	}
	if workloadFile != "" {
		spec = applyWorkloadOverride(spec, loadWorkloadOverride(workloadFile))
	}
	return workload.Generate(spec)
}

func buildPolicy(name string) sim.SchedPolicy {
	switch name {
	case "fifo":
		return &sim.FIFOScheduler{}
	case "vtime":
		return &sim.VTimeScheduler{}
	case "wrr":
		return sim.NewWeightedRoundRobinScheduler()
	default:
		panic(fmt.Sprintf("unknown scheduling policy %q; valid policies: [fifo, vtime, wrr]", name))
	}
}

func buildAdmission() policy.AdmissionPolicy {
	return policy.NewAdmissionPolicy(admissionName, admissionCap, admissionRefill, seed)
}

func buildTrace() *trace.SimulationTrace {
	if !trace.IsValidLevel(traceLevel) {
		logrus.Fatalf("invalid trace level: %s", traceLevel)
	}
	return trace.NewSimulationTrace(trace.Level(traceLevel))
}

// runOnce builds a driver+harness for the named policy and replays the
// jobs generated from the shared workload flags, returning the resulting
// Metrics.
func runOnce(name string, jobs []sim.Job) *sim.Metrics {
	driver := sim.NewDriver(numCPUs, buildPolicy(name), observeInvariant)
	harness := sim.NewHarness(driver, buildAdmission(), buildTrace()).WithPriority(sim.NewPriorityPolicy(priorityName))
	metrics := harness.Run(jobs, sim.Ticks(horizon))
	driver.Exit()
	return metrics
}
