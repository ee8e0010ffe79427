package main

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete one of your notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		ctx, svc, uid, err := session(cmd)
		if err != nil {
			return err
		}

		if err := svc.DeleteNote(ctx, uid, name); err != nil {
			return aboutNote(name, err)
		}

		success(cmd.OutOrStdout(), "note '%s' deleted.", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
