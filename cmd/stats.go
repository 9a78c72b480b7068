package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/passosperdidos/parlamento-backend/internal/ingest"
)

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print row counts and top vote results",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		stats, err := ingest.CollectStats(cmd.Context(), a.pg.DB(), statsTop)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "how many vote results to rank")
	rootCmd.AddCommand(statsCmd)
}
