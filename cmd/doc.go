// Package cmd implements the command line interface of Pool.
//
// The CLI is built with cobra and viper; every flag can also be provided as
// an environment variable with the POOL_ prefix (e.g. POOL_POOL_SIZE=4096),
// optionally via .env / .env.local files.
//
// Subcommands:
//   - collect: run parallel collection over the reference chain environment
//   - perf:    micro-benchmark the append and read-back paths
//   - version: print the version
package cmd
