package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/bfhl/internal/cli"
	"github.com/TimurManjosov/bfhl/internal/client"
)

var fibonacciCmd = &cobra.Command{
	Use:   "fibonacci <n>",
	Short: "Get the first n Fibonacci terms",
	Long: `Get the first n terms of the Fibonacci sequence, starting at 0.

Example:
  bfhl fibonacci 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid term count '%s': %w", args[0], err)
		}
		return runOperation(cmd, "fibonacci", n)
	},
}

var primeCmd = &cobra.Command{
	Use:   "prime <n>...",
	Short: "Filter the prime numbers from a list",
	Long: `Return the prime numbers from the given integers, in input order.

Negative numbers must follow "--" so they are not read as flags.

Examples:
  bfhl prime 2 3 4 5 6 7
  bfhl prime -- -7 2 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseIntegers(args)
		if err != nil {
			return err
		}
		return runOperation(cmd, "prime", nums)
	},
}

var lcmCmd = &cobra.Command{
	Use:   "lcm <n>...",
	Short: "Compute the least common multiple",
	Long: `Compute the least common multiple of the given non-zero integers.

Negative numbers must follow "--" so they are not read as flags.

Examples:
  bfhl lcm 4 6 8
  bfhl lcm -- -4 6`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseIntegers(args)
		if err != nil {
			return err
		}
		return runOperation(cmd, "lcm", nums)
	},
}

var hcfCmd = &cobra.Command{
	Use:   "hcf <n>...",
	Short: "Compute the highest common factor",
	Long: `Compute the highest common factor of the given integers.

Negative numbers must follow "--" so they are not read as flags.

Examples:
  bfhl hcf 12 18 24
  bfhl hcf -- -12 18`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseIntegers(args)
		if err != nil {
			return err
		}
		return runOperation(cmd, "hcf", nums)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and get a one-word answer",
	Long: `Send a question to the AI operation. Multiple arguments are joined with spaces.

Example:
  bfhl ask What is the capital of France?`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, "AI", strings.Join(args, " "))
	},
}

// runOperation posts {key: value} and prints the envelope, including failed ones.
func runOperation(cmd *cobra.Command, key string, value any) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	result, err := c.Do(cmd.Context(), map[string]any{key: value})
	var apiErr *client.APIError
	if err != nil && (result == nil || !errors.As(err, &apiErr)) {
		return fmt.Errorf("%s request failed: %w", key, err)
	}

	if !quiet {
		if perr := cli.PrintResult(cmd.OutOrStdout(), key, result, cli.OutputFormat(format)); perr != nil {
			return perr
		}
	}
	return err
}

func parseIntegers(args []string) ([]int64, error) {
	nums := make([]int64, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer '%s': %w", arg, err)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func init() {
	rootCmd.AddCommand(fibonacciCmd)
	rootCmd.AddCommand(primeCmd)
	rootCmd.AddCommand(lcmCmd)
	rootCmd.AddCommand(hcfCmd)
	rootCmd.AddCommand(askCmd)
}
