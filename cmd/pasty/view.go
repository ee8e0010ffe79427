package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <name>",
	Short: "Print one of your notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		ctx, svc, uid, err := session(cmd)
		if err != nil {
			return err
		}

		content, err := svc.ReadNote(ctx, uid, name)
		if err != nil {
			return aboutNote(name, err)
		}

		success(cmd.OutOrStdout(), "note: %s", name)
		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
