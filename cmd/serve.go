package cmd

import (
	"github.com/spf13/cobra"

	"github.com/passosperdidos/parlamento-backend/internal/handlers"
	"github.com/passosperdidos/parlamento-backend/internal/middleware"
	"github.com/passosperdidos/parlamento-backend/internal/server"
	"github.com/passosperdidos/parlamento-backend/internal/services"
	"github.com/passosperdidos/parlamento-backend/internal/utils"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		initiativeService := services.NewInitiativeService(a.repos.initiatives, a.repos.phases, a.repos.authors, a.log)
		router := server.NewRouter(server.RouterConfig{
			InitiativeHandler: handlers.NewInitiativeHandler(initiativeService, a.log),
			APIKeyMiddleware:  middleware.NewAPIKeyMiddleware(a.log, utils.GetEnv("API_SECRET_KEY", "", a.log)),
			FrontendOrigin:    utils.GetEnv("FRONTEND_ORIGIN", "", a.log),
		})

		addr := serveAddr
		if addr == "" {
			addr = ":" + utils.GetEnv("PORT", "8000", a.log)
		}
		a.log.Info("serving api", "addr", addr)
		return router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, defaults to :$PORT")
	rootCmd.AddCommand(serveCmd)
}
