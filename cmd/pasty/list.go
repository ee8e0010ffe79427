package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

var listMatch string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listMatch != "" && !doublestar.ValidatePattern(listMatch) {
			return fmt.Errorf("invalid pattern %q", listMatch)
		}

		ctx, svc, uid, err := session(cmd)
		if err != nil {
			return err
		}

		names, err := svc.ListNotes(ctx, uid)
		if err != nil {
			return err
		}

		var shown []string
		for _, name := range names {
			if listMatch != "" {
				if ok, _ := doublestar.Match(listMatch, name); !ok {
					continue
				}
			}
			shown = append(shown, name)
		}

		out := cmd.OutOrStdout()
		if len(shown) == 0 {
			success(out, "you have no notes.")
			return nil
		}

		success(out, "your notes:")
		for _, name := range shown {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only show names matching a glob (e.g. 'work/**')")
}
