package util

import (
	"strings"

	"github.com/NoteDance/Pool/lib/pool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("pool")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// SetupPoolFlags adds the pool construction flags shared by the collect and
// perf commands
func SetupPoolFlags(cmd *cobra.Command) {
	key := "processes"
	cmd.PersistentFlags().Int(key, 4, WrapString("Number of partitions and collection workers"))

	key = "pool-size"
	cmd.PersistentFlags().Int(key, 4096, WrapString("Total target buffer size; the per-partition capacity is ceil(pool-size/processes)"))

	key = "window-size"
	cmd.PersistentFlags().Int(key, 0, WrapString("Sliding-window eviction: keep only the most recent N samples of an overflowing partition (mutually exclusive with clearing-freq)"))

	key = "clearing-freq"
	cmd.PersistentFlags().Int(key, 0, WrapString("Periodic-clear eviction: every N appends to a partition remove its oldest clear-window samples"))

	key = "clear-window"
	cmd.PersistentFlags().Int(key, 0, WrapString("Periodic-clear eviction: number of oldest samples removed per clear (required with clearing-freq)"))

	key = "balanced"
	cmd.PersistentFlags().Bool(key, true, WrapString("Balanced placement: route every append to a partition weighted by inverse length instead of the worker's own partition"))

	key = "seed"
	cmd.PersistentFlags().Uint64(key, 0, WrapString("Seed for the balanced-placement RNG and the environments (0 = random)"))
}

// GetPoolConfig reads the pool configuration from viper
func GetPoolConfig() *pool.Config {
	return &pool.Config{
		Processes:    viper.GetInt("processes"),
		PoolSize:     viper.GetInt("pool-size"),
		WindowSize:   viper.GetInt("window-size"),
		ClearingFreq: viper.GetInt("clearing-freq"),
		ClearWindow:  viper.GetInt("clear-window"),
		Balanced:     viper.GetBool("balanced"),
		Seed:         viper.GetUint64("seed"),
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
