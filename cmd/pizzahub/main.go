package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pizzahub/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}
	root := &cobra.Command{
		Use:           "pizzahub",
		Short:         "Pizza shops, pizzas, beverages and orders over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			*cfg = *loaded
			return applyFlags(cmd, cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.String("store", "", "storage backend: file, memory, redis or postgres (env STORE)")
	flags.String("data", "", "data file for the file backend (env DATA_FILE)")

	root.AddCommand(newServeCmd(cfg), newInitCmd(cfg), newRoutesCmd())
	return root
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store, _ = flags.GetString("store")
	}
	if flags.Changed("data") {
		cfg.DataFile, _ = flags.GetString("data")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	return cfg.Validate()
}
