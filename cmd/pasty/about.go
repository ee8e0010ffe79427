package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pasty"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Learn about pasty",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		success(out, "about pasty")
		fmt.Fprintln(out, "pasty lets you create, rename, view, download and delete private notes.")
		fmt.Fprintln(out, "every user has their own key, so only you can read your notes.")
		fmt.Fprintf(out, "version %s\n", pasty.Version)
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}
