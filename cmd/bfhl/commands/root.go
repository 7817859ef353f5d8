package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/bfhl/internal/cli"
	"github.com/TimurManjosov/bfhl/internal/client"
)

var (
	// Global flags
	baseURL string
	env     string
	format  string
	quiet   bool
	timeout time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bfhl",
	Short: "CLI tool for the BFHL service",
	Long: `bfhl is a command-line client for the BFHL service.

It sends fibonacci, prime, lcm, hcf and AI requests to POST /bfhl
and prints the response envelope.

Examples:
  bfhl fibonacci 10
  bfhl prime 2 3 4 5 --format json
  bfhl lcm 4 6 8
  bfhl ask "What is the capital of France?"
  bfhl health --base-url http://localhost:3000`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the BFHL API")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "Environment from the config file")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
}

func newClient() (*client.Client, error) {
	envCfg, _, err := cli.GetEnvConfig(env, baseURL)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	c := client.NewClient(envCfg.BaseURL)
	c.HTTPClient.Timeout = timeout
	return c, nil
}
