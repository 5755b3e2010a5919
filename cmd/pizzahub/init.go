package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pizzahub/internal/config"
	"pizzahub/internal/store"
)

var errStoreNotEmpty = errors.New("store already holds data, use --force to overwrite it")

func newInitCmd(cfg *config.Config) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a seeded data document to the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeBackend, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeBackend()

			if err := seedBackend(cmd, backend, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s store with %d shops\n", cfg.Store, len(seedState().Shops))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a store that already holds data")
	return cmd
}

func seedBackend(cmd *cobra.Command, backend store.Backend, force bool) error {
	if !force {
		current, err := backend.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("read current store (use --force to overwrite it): %w", err)
		}
		if current.Len() > 0 {
			return errStoreNotEmpty
		}
	}
	return backend.Save(cmd.Context(), seedState())
}

// seedState is the starting document: shops are read-only over HTTP, so
// this is how they get into the store.
func seedState() store.State {
	st := store.Empty()
	st.Shops = []store.Record{
		{"id": "1", "name": "Napoli Corner", "location": "12 Harbor Street", "rating": 4.6},
		{"id": "2", "name": "Slice Republic", "location": "88 Market Avenue", "rating": 4.2},
	}
	return st
}
