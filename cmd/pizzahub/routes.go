package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pizzahub/internal/server"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the documented endpoints",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := server.LoadDocument(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range server.Endpoints(doc) {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}
