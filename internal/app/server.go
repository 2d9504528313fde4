package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"notification-router/internal/handlers"
	"notification-router/internal/middleware"
	"notification-router/internal/server"
)

// RunServer builds the HTTP server with all handlers configured
func (app *App) RunServer() (*server.Server, http.Handler) {
	h := handlers.New(app.Store, app.Dispatcher)
	if app.RedisClient != nil {
		h.AddHealthCheck("redis", app.RedisClient.Health)
	}

	router := mux.NewRouter()
	SetupRoutes(router, h, middleware.BearerAuth(app.Config.AuthToken))

	srv := server.New(router, app.Config.Port, app.Config.TLSCertFile, app.Config.TLSKeyFile,
		server.WithWriteTimeout(app.Config.WriteTimeout()))
	return srv, router
}
