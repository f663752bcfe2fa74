package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// newCopyCmd is the target of the menu's copy actions.
func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy VALUE",
		Short: "Copy VALUE to the system clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clipboard.WriteAll(args[0]); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			return nil
		},
	}
}
