// cmd/run.go
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	runCmd.Flags().StringVar(&policyName, "policy", "fifo", "Scheduling policy (fifo, vtime, wrr)")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single scheduler-core simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		logrus.Infof("starting simulation: policy=%s num-cpus=%d horizon=%d rate=%.4f seed=%d",
			policyName, numCPUs, horizon, rate, seed)

		jobs := buildJobs()
		metrics := runOnce(policyName, jobs)

		metrics.Print()
		logrus.Info("simulation complete")
	},
}
