package rewards

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SakuraBurst/rewards/internal/pkg/logger"
	"github.com/SakuraBurst/rewards/internal/rewards/config"
	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/identity"
	"github.com/SakuraBurst/rewards/internal/rewards/router"
	"github.com/SakuraBurst/rewards/internal/rewards/session"
	"go.uber.org/zap"
)

const sweepInterval = 10 * time.Minute

type App struct {
	router   *router.HttpRouter
	sessions *session.Store
	logger   *zap.Logger
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.sessions.RunSweeper(ctx, sweepInterval)

	sisChan := make(chan os.Signal, 1)
	go func() {
		if err := a.router.Run(); err != nil {
			a.logger.Error("router.Run failed: ", zap.Error(err))
			sisChan <- os.Interrupt
		}
	}()
	return a.gracefulShutdown(sisChan)
}

func (a *App) gracefulShutdown(sisChan chan os.Signal) error {
	signal.Notify(sisChan, os.Interrupt, syscall.SIGTERM)
	<-sisChan
	a.logger.Info("shutting down", zap.Int("sessions", a.sessions.Len()))
	err := a.router.Close()
	if err != nil {
		a.logger.Error("router.Close failed: ", zap.Error(err))
	}
	return a.logger.Sync()
}

func NewApp(cfg *config.Config) *App {
	log, err := logger.InitLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	client := gateway.NewClient(&http.Client{Timeout: cfg.API.Timeout}, cfg.API.URL, log)
	store := session.NewStore(client, cfg, log)
	bridge := identity.NewBridge(cfg.Identity.BotToken, cfg.Identity.MaxAge)
	r := router.CreateRouter(bridge, store, cfg, log)
	log.Info("rewards bff configured",
		zap.String("api_url", cfg.API.URL),
		zap.String("port", cfg.HTTP.Port),
		zap.Bool("verify_init_data", cfg.Identity.BotToken != ""))
	return &App{
		router:   r,
		sessions: store,
		logger:   log,
	}
}
