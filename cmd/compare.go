// cmd/compare.go
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run FIFO and vtime side by side over an identical workload",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		logrus.Infof("comparing fifo vs vtime: num-cpus=%d horizon=%d rate=%.4f seed=%d",
			numCPUs, horizon, rate, seed)

		jobs := buildJobs()
		fifoMetrics := runOnce("fifo", jobs)
		vtimeMetrics := runOnce("vtime", jobs)

		fmt.Println("=== fifo ===")
		fifoMetrics.Print()
		fmt.Println()
		fmt.Println("=== vtime ===")
		vtimeMetrics.Print()
	},
}
