// Package server wires the HTTP routes and runs the API server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/handler"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gameflux/backend/docs" // registers the API spec with swag

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API server.
type Server struct {
	listen string
	engine *gin.Engine
}

// Deps are the collaborators the routes need.
type Deps struct {
	Handler       *handler.Handler
	Authenticator *auth.Authenticator
	Policy        *auth.Policy
	Profiles      auth.ProfileReader
}

// New creates the server and registers every route.
func New(listen string, deps Deps, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(), gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(engine, deps)

	return &Server{listen: listen, engine: engine}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting API server", "listen", s.listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func registerRoutes(router *gin.Engine, deps Deps) {
	h := deps.Handler
	authn := deps.Authenticator

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", h.Ping)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ping", h.Ping)

		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", h.RegisterUser)
			authRoutes.POST("/login", h.LoginUser)
			authRoutes.POST("/logout", authn.AuthMiddleware(), h.LogoutUser)
			authRoutes.PUT("/password", authn.AuthMiddleware(), h.ChangePassword)
		}

		// Game routes (public, favorite status when signed in)
		gameRoutes := apiV1.Group("/games")
		gameRoutes.Use(authn.OptionalAuthMiddleware())
		{
			gameRoutes.GET("", h.GetGames)
			gameRoutes.GET("/categories", h.GetCategories)
			gameRoutes.GET("/:id", h.GetGameByID)
		}

		// Favorite routes (protected)
		favoriteRoutes := apiV1.Group("/favorites")
		favoriteRoutes.Use(authn.AuthMiddleware())
		{
			favoriteRoutes.GET("", h.GetFavorites)
			favoriteRoutes.GET("/count", h.CountFavorites)
			favoriteRoutes.POST("", h.AddFavorite)
			favoriteRoutes.DELETE("", h.RemoveFavorite)
		}

		// Profile routes (protected)
		profileRoutes := apiV1.Group("/profile")
		profileRoutes.Use(authn.AuthMiddleware())
		{
			profileRoutes.GET("", h.GetProfile)
			profileRoutes.PUT("", h.UpdateProfile)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(authn.AuthMiddleware(), auth.AdminMiddleware(deps.Policy, deps.Profiles))
		{
			adminRoutes.GET("/users", h.ListUsers)
			adminRoutes.PATCH("/users", h.SetAdminFlag)
			adminRoutes.DELETE("/users/:id", h.DeleteUser)
			adminRoutes.GET("/stats", h.GetStats)
		}
	}
}
