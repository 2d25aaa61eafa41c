package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/TrikamDevasi/ludo-multiplayer/config"
	"github.com/TrikamDevasi/ludo-multiplayer/domain"
	"github.com/TrikamDevasi/ludo-multiplayer/game"
	"github.com/TrikamDevasi/ludo-multiplayer/shared/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CreateServer builds the engine with the health check and origin policy.
// An empty allowedOrigins accepts any origin.
func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies([]string{"127.0.0.1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})
	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}

	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		r.Use(cors.New(corsConfig))
		return r
	}

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	return r
}

func RegisterRoutes(r *gin.Engine, h *game.GameHandler) {
	r.GET("/ws", h.WebsocketHandler)
	r.GET("/rooms", h.ListRoomsHandler)
	r.GET("/rooms/:id", h.RoomHandler)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := logger.Init(os.Stdout, cfg.LogLevel, cfg.Debug); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	lobby := game.NewLobby(game.NewIdGen(), game.NewTimerGen(), domain.RandomDice{}, cfg.ForfeitDelay)
	gateway := game.NewGateway(lobby)
	gameHandler := game.NewGameHandler(lobby, gateway)

	r := CreateServer(cfg.AllowedOrigins)
	RegisterRoutes(r, gameHandler)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("addr", cfg.Addr()).Strs("origins", cfg.AllowedOrigins).Msg("server started")

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()
	<-sigCtx.Done()
	log.Info().Msg("SIGTERM or SIGINT received, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Int("rooms", len(lobby.Rooms())).Int("sessions", gateway.Sessions()).Msg("shutting down now")
}
