package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/SakuraBurst/rewards/internal/pkg/logger"
	"github.com/SakuraBurst/rewards/internal/rewards/config"
	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/identity"
	"github.com/SakuraBurst/rewards/internal/rewards/session"
	"github.com/go-faster/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type console struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *session.Session
}

func (c *console) load(ct *cli.Context) error {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		return errors.Wrap(err, "config.Load failed: ")
	}
	if url := ct.String("api-url"); url != "" {
		cfg.API.URL = url
	}
	log, err := logger.InitConsoleLogger(ct.String("log-level"))
	if err != nil {
		return errors.Wrap(err, "logger.InitConsoleLogger failed: ")
	}
	c.cfg = cfg
	c.logger = log
	return nil
}

// open ленивый: help и ошибки флагов не требуют init data
func (c *console) open(ct *cli.Context) (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	bridge := identity.NewBridge(c.cfg.Identity.BotToken, c.cfg.Identity.MaxAge)
	state, err := bridge.Resolve(ct.String("init-data"))
	if err != nil {
		return nil, errors.Wrap(err, "bridge.Resolve failed: ")
	}
	client := gateway.NewClient(&http.Client{Timeout: c.cfg.API.Timeout}, c.cfg.API.URL, c.logger)
	c.session = session.New(client, state, c.cfg, c.logger)
	return c.session, nil
}

func (c *console) close(*cli.Context) error {
	if c.session != nil {
		c.session.CloseSpin()
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	return nil
}

func (c *console) fatal(err error) {
	switch gateway.Classify(err) {
	case gateway.KindAlreadyDone:
		fmt.Fprintln(os.Stderr, gateway.UserMessage(err))
		os.Exit(0)
	case gateway.KindValidation, gateway.KindRejected, gateway.KindAPI, gateway.KindTransport:
		fmt.Fprintln(os.Stderr, "error:", gateway.UserMessage(err))
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}
