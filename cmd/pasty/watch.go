package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pasty/pkg/adapters/lifecycle"
)

var watchMine bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note changes as they happen, until interrupted",
	Long: `Print a line for every note created, modified or deleted in the store,
including changes made by other processes. Only user ids and note names are shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		events, err := svc.Watch(ctx)
		if err != nil {
			return err
		}

		var opts []lifecycle.Option
		if watchMine {
			uid, err := currentUser()
			if err != nil {
				return err
			}
			opts = append(opts, lifecycle.WithUser(uid))
		}

		source := lifecycle.NewSource(events, opts...)
		if err := source.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for e := range source.Events() {
			fmt.Fprintln(out, e.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchMine, "mine", false, "Only show changes to the acting user's notes")
}
