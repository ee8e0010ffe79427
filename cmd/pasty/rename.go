package main

import (
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename one of your notes",
	Long:  `Rename a note. A note already called <new> is replaced.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldName, newName := args[0], args[1]

		ctx, svc, uid, err := session(cmd)
		if err != nil {
			return err
		}

		if err := svc.RenameNote(ctx, uid, oldName, newName); err != nil {
			return aboutNote(oldName, err)
		}

		success(cmd.OutOrStdout(), "note '%s' renamed to '%s'", oldName, newName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
