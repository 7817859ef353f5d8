package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/bfhl/internal/cli"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health",
	Long: `Call GET /health and report whether the service is up.

Example:
  bfhl health --env dev`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		health, err := c.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		if !quiet {
			return cli.PrintHealth(cmd.OutOrStdout(), health, cli.OutputFormat(format))
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show service information",
	Long: `Call GET / and list the endpoints the service exposes.

Example:
  bfhl info --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		info, err := c.Info(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get service info: %w", err)
		}

		if !quiet {
			return cli.PrintInfo(cmd.OutOrStdout(), info, cli.OutputFormat(format))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(infoCmd)
}
