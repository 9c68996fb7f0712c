package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"budget-engine/internal/config"
	"budget-engine/internal/logging"
	"budget-engine/internal/narrative"
	"budget-engine/internal/policyregistry"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "budget-engine",
	Short: "Budget scenario-planning derivation engine",
	Long: `budget-engine derives the financial position of a children's services budget
from a snapshot of inputs and scenario levers: reserve runway, compounding
deficit projections, recovery scenarios, RAG status and the Section 114
early warning.

Run "serve" to expose the engine over HTTP or "calc" for a one-off derivation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			c.Logging.Level = "debug"
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = c

		logger, err = logging.New(c.Logging.Level, c.Logging.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func formatter() narrative.Formatter {
	return narrative.Formatter{
		CurrencySymbol: cfg.Narrative.CurrencySymbol,
		UnitSuffix:     cfg.Narrative.UnitSuffix,
	}
}

// newRegistry builds the policy registry from config and loads the local
// thresholds file if one is configured.
func newRegistry() (*policyregistry.Registry, error) {
	reg := policyregistry.New(cfg.Policy.RegistryURL, cfg.GetRegistryTimeout(), logger)
	if cfg.Policy.ThresholdsFile != "" {
		if err := reg.LoadFile(cfg.Policy.ThresholdsFile); err != nil {
			reg.Close()
			return nil, err
		}
	}
	return reg, nil
}
