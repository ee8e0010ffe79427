package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsState bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many notes and users the store holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}

		stats, err := svc.Stats(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if statsState {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(struct {
				Stats any `json:"stats"`
				State any `json:"state"`
			}{stats, svc.State()})
		}

		fmt.Fprintf(out, "notes: %d\nusers: %d\n", stats.Notes, stats.Users)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsState, "state", false, "Print component state as JSON")
}
