package collect

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cmdUtil "github.com/NoteDance/Pool/cmd/util"
	"github.com/NoteDance/Pool/lib/pool"
	poolUtil "github.com/NoteDance/Pool/lib/pool/util"
	"github.com/NoteDance/Pool/lib/rl"
	"github.com/NoteDance/Pool/lib/rl/envs/chain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	collectCmdConfig = &pool.Config{}
	CollectCmd       = &cobra.Command{
		Use:     "collect",
		Short:   "Run parallel experience collection",
		Long:    `Run parallel experience collection over the built-in chain environment. One worker per process drives its own environment instance and stores the resulting tuples in the partitioned pool; at the end the pool state is summarized. The configuration can be set via command line flags or environment variables. The format of the environment variables is POOL_<flag> (e.g. POOL_POOL_SIZE=4096)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	cmdUtil.SetupPoolFlags(CollectCmd)

	key := "steps"
	CollectCmd.PersistentFlags().Int(key, 1000, cmdUtil.WrapString("Number of environment steps each worker takes"))

	key = "env-length"
	CollectCmd.PersistentFlags().Int(key, 11, cmdUtil.WrapString("Number of states on the chain environment"))

	key = "metrics"
	CollectCmd.PersistentFlags().Bool(key, false, cmdUtil.WrapString("Dump Prometheus metrics to stdout after collection"))
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts them to the pool configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	collectCmdConfig = cmdUtil.GetPoolConfig()
	return collectCmdConfig.Validate()
}

// run performs one bounded collection and prints the resulting pool state
func run(cmd *cobra.Command, _ []string) error {
	pool.InitLoggers(viper.GetString("log-level"))

	// print configuration
	fmt.Println(collectCmdConfig.String())

	// one environment per worker, each with its own seed
	seed := collectCmdConfig.Seed
	if seed == 0 {
		seed = poolUtil.GenerateSeed()
	}
	envs := make([]rl.Environment[int, int], collectCmdConfig.Processes)
	for i := range envs {
		envs[i] = chain.New(&chain.Options{
			Length: viper.GetInt("env-length"),
			Seed:   seed + uint64(i) + 1,
		})
	}

	manager, err := pool.NewManager(*collectCmdConfig, envs)
	if err != nil {
		return err
	}

	// stop collection cleanly on interrupt
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := manager.RunForSteps(ctx, viper.GetInt("steps")); err != nil {
		return err
	}

	// summarize the pool state
	info := manager.Info()
	fmt.Println()
	fmt.Println("COLLECTION RESULT")
	fmt.Printf("  %-22s: %d\n", "Samples Held", info.Size)
	fmt.Printf("  %-22s: %d\n", "Appends", info.Appends)
	fmt.Printf("  %-22s: %d\n", "Evicted", info.Evicted)
	fmt.Printf("  %-22s: %v\n", "Partition Lengths", info.Lengths)
	fmt.Printf("  %-22s: %.3f\n", "Balance Quality", info.Balance.DistributionQuality)

	if viper.GetBool("metrics") {
		fmt.Println()
		pool.WriteMetrics(os.Stdout)
	}

	return nil
}
