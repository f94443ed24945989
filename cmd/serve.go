package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/config"
	"github.com/abhisek/prepcoach/internal/identity"
	"github.com/abhisek/prepcoach/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz API over HTTP",
	Long: "Serve profiles, quizzes and assessments as a JSON API. Requests are\n" +
		"authenticated with bearer tokens signed with PREPCOACH_JWT_SECRET.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, func(config.Config) identity.Resolver {
			return identity.ContextResolver{}
		})
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.cfg.ValidateServer(); err != nil {
			return err
		}

		addr := d.cfg.HTTPAddr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}
		if d.cfg.LogMode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := server.NewRouter(server.RouterConfig{
			Log:         d.log,
			Tokens:      identity.NewTokenVerifier(d.cfg.JWTSecret, d.cfg.JWTTTL),
			Profiles:    d.profiles,
			Quizzes:     d.quizzes,
			Assessments: d.assessments,
		})
		return server.Serve(cmd.Context(), addr, router, d.log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides PREPCOACH_HTTP_ADDR)")
}
