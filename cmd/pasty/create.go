package main

import (
	"io"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name> <content>",
	Short: "Create a note, replacing any note with the same name",
	Long:  `Create a note. Pass "-" as content to read it from stdin.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, content := args[0], args[1]

		if content == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			content = string(data)
		}

		ctx, svc, uid, err := session(cmd)
		if err != nil {
			return err
		}

		if err := svc.CreateNote(ctx, uid, name, content); err != nil {
			return aboutNote(name, err)
		}

		success(cmd.OutOrStdout(), "note '%s' created successfully!", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
