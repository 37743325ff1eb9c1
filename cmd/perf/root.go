package perf

import (
	"fmt"
	"testing"
	"time"

	cmdUtil "github.com/NoteDance/Pool/cmd/util"
	"github.com/NoteDance/Pool/lib/pool"
	"github.com/NoteDance/Pool/lib/rl"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfCmdConfig = &pool.Config{}
	PerfCmd       = &cobra.Command{
		Use:     "perf",
		Short:   "Benchmark the append and read-back paths of the pool",
		Long:    `Benchmark the append and read-back paths of the pool: the lock-free single-writer path, the lock-guarded balanced path under parallel writers, and the flattened read-back. Reports ns/op plus a latency histogram of the balanced path.`,
		PreRunE: processPerfConfig,
		RunE:    run,
	}
	perfSamples = 10000
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	cmdUtil.SetupPoolFlags(PerfCmd)

	key := "samples"
	PerfCmd.PersistentFlags().Int(key, 10000, cmdUtil.WrapString("Number of latency samples recorded for the balanced-path histogram"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	perfCmdConfig = cmdUtil.GetPoolConfig()
	perfSamples = viper.GetInt("samples")
	return perfCmdConfig.Validate()
}

// exp is the experience appended by all benchmarks
var exp = rl.Experience[int, int]{State: 1, Action: 1, NextState: 2, Reward: 0.5}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for the experience pool")
	fmt.Println(perfCmdConfig.String())

	fmt.Println("starting benchmarks...")
	fmt.Println()

	// single-writer path, one partition, no contention
	appendToResult := testing.Benchmark(func(b *testing.B) {
		registry, err := pool.NewRegistry[int, int](*perfCmdConfig)
		if err != nil {
			b.Fatalf("NewRegistry failed: %v", err)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			registry.AppendTo(0, exp)
		}
	})
	printResult("append-to", appendToResult)

	// balanced path under parallel writers
	appendBalancedResult := testing.Benchmark(func(b *testing.B) {
		registry, err := pool.NewRegistry[int, int](*perfCmdConfig)
		if err != nil {
			b.Fatalf("NewRegistry failed: %v", err)
		}

		b.SetParallelism(perfCmdConfig.Processes)
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				registry.AppendBalanced(exp)
			}
		})
	})
	printResult("append-balanced", appendBalancedResult)

	// read-back of a full pool
	readAllResult := testing.Benchmark(func(b *testing.B) {
		registry, err := pool.NewRegistry[int, int](*perfCmdConfig)
		if err != nil {
			b.Fatalf("NewRegistry failed: %v", err)
		}
		for i := 0; i < perfCmdConfig.PoolSize; i++ {
			registry.AppendBalanced(exp)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = registry.ReadAll()
		}
	})
	printResult("read-all", readAllResult)

	// latency histogram of the balanced path (lock acquisition included)
	registry, err := pool.NewRegistry[int, int](*perfCmdConfig)
	if err != nil {
		return err
	}

	histogram := gometrics.NewHistogram(gometrics.NewUniformSample(perfSamples))
	for i := 0; i < perfSamples; i++ {
		start := time.Now()
		registry.AppendBalanced(exp)
		histogram.Update(time.Since(start).Nanoseconds())
	}

	percentiles := histogram.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Println()
	fmt.Println("append-balanced latency")
	fmt.Printf("  %-22s: %.0f ns\n", "mean", histogram.Mean())
	fmt.Printf("  %-22s: %.0f ns\n", "p50", percentiles[0])
	fmt.Printf("  %-22s: %.0f ns\n", "p95", percentiles[1])
	fmt.Printf("  %-22s: %.0f ns\n", "p99", percentiles[2])
	fmt.Printf("  %-22s: %d ns\n", "max", histogram.Max())

	return nil
}

// printResult prints one benchmark result in a fixed-width layout
func printResult(name string, result testing.BenchmarkResult) {
	fmt.Printf("  %-22s: %12d ops %14s\n", name, result.N, result.String())
}
