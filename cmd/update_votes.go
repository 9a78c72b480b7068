package cmd

import (
	"github.com/spf13/cobra"

	"github.com/passosperdidos/parlamento-backend/internal/services"
)

var updateVotesBatch int

var updateVotesCmd = &cobra.Command{
	Use:   "update-votes",
	Short: "Re-derive structured vote breakdowns from stored detail markup",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		svc := services.NewVoteFixService(a.repos.votes, a.log)
		result, err := svc.RefreshBreakdowns(cmd.Context(), updateVotesBatch)
		if err != nil {
			return err
		}
		a.log.Info("update-votes done", "processed", result.Processed, "updated", result.Updated, "failed", result.Failed)
		return nil
	},
}

func init() {
	updateVotesCmd.Flags().IntVar(&updateVotesBatch, "batch-size", 200, "votes per batch")
	rootCmd.AddCommand(updateVotesCmd)
}
