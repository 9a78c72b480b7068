package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/passosperdidos/parlamento-backend/internal/ingest"
	"github.com/passosperdidos/parlamento-backend/internal/utils"
)

var importOpts struct {
	url        string
	file       string
	limit      int
	skipPhases bool
	resumeFrom string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import initiatives from the Parlamento feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		source := importOpts.file
		if source == "" {
			source = importOpts.url
		}
		if source == "" {
			source = utils.GetEnv("FEED_URL", "", a.log)
		}
		if source == "" {
			return errors.New("no feed source: set --url, --file or FEED_URL")
		}

		counters, err := a.importer().Run(cmd.Context(), ingest.Options{
			Source:       source,
			Limit:        importOpts.limit,
			SkipPhases:   importOpts.skipPhases,
			ResumeFromID: importOpts.resumeFrom,
		})
		if err != nil {
			return err
		}
		if counters.Failed > 0 {
			a.log.Warn("import finished with record errors", "failed", counters.Failed)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importOpts.url, "url", "", "feed URL to fetch")
	importCmd.Flags().StringVar(&importOpts.file, "file", "", "local feed file instead of URL")
	importCmd.Flags().IntVar(&importOpts.limit, "limit", 0, "process at most N records")
	importCmd.Flags().BoolVar(&importOpts.skipPhases, "skip-phases", false, "import only headline and authorship")
	importCmd.Flags().StringVar(&importOpts.resumeFrom, "resume-from", "", "restart from this external id")
	rootCmd.AddCommand(importCmd)
}
