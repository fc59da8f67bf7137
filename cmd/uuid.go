package cmd

import (
	"fmt"

	"github.com/container-registry/devicekey/internal/devicekey"
	"github.com/spf13/cobra"
)

func newUUIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uuid",
		Short: "Print a fresh random UUID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), devicekey.RandomUUID())
			return nil
		},
	}
}
