package cmd

import (
	"fmt"
	"os"

	"github.com/NoteDance/Pool/cmd/collect"
	"github.com/NoteDance/Pool/cmd/perf"
	"github.com/NoteDance/Pool/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "pool",
		Short: "parallel experience collection for reinforcement learning",
		Long: fmt.Sprintf(`Pool (v%s)

A parallel experience pool written in Go: independent workers drive
environment simulators and collect (state, action, next state, reward,
done) tuples into a size-bounded, partitioned buffer for training.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Pool",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Pool v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(collect.CollectCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("log level to use (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
