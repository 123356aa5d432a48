package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "cmms/internal/adapter/http"
	"cmms/internal/adapter/http/handlers"
	httpmiddleware "cmms/internal/adapter/http/middleware"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if a.cfg.JwtSecret == "" {
				return fmt.Errorf("JWT_SECRET must be set")
			}
			if port == "" {
				port = a.cfg.AppPort
			}

			r := gin.New()
			if err := r.SetTrustedProxies(a.cfg.TrustedProxies); err != nil {
				return fmt.Errorf("trusted proxies: %w", err)
			}
			r.Use(gin.Recovery(), httpmiddleware.RequestIDMiddleware(), httpmiddleware.GinZapMiddleware(a.logger))

			httpadapter.RegisterRoutes(r, httpadapter.Handlers{
				Health:    handlers.NewHealthHandler(a.db, handlers.HealthInfo{
					Version:     Version,
					MailBackend: a.cfg.MailBackend,
					MediaRoot:   a.cfg.MediaRoot,
				}),
				Tasks:     handlers.NewTaskHandler(a.tasks),
				Buildings: handlers.NewBuildingHandler(a.buildings),
				Audit:     handlers.NewAuditHandler(a.audit),
				Dashboard: handlers.NewDashboardHandler(a.dashboard),
				Users:     handlers.NewUserHandler(a.userSvc),
			}, httpmiddleware.AuthMiddleware(a.cfg.JwtSecret, a.users))

			addr := ":" + port
			a.logger.Info("starting server", zap.String("addr", addr), zap.String("mail_backend", a.cfg.MailBackend))
			return r.Run(addr)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to APP_PORT)")

	return cmd
}
