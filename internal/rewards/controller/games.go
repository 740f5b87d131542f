package controller

import (
	"context"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
)

type gamesAPI interface {
	PlayGame(ctx context.Context, gameID string) (*types.PlayGameResponse, error)
}

type Games struct {
	api gamesAPI
}

func NewGames(api gamesAPI) *Games {
	return &Games{api: api}
}

// Play returns the url the game should be opened at.
func (g *Games) Play(ctx context.Context, gameID string) (string, error) {
	if gameID == "" {
		return "", gateway.Required("game_id")
	}
	resp, err := g.api.PlayGame(ctx, gameID)
	if err != nil {
		return "", errors.Wrap(err, "api.PlayGame failed: ")
	}
	if !resp.Success || resp.GameURL == "" {
		msg := resp.Message
		if msg == "" {
			msg = "Game is not available"
		}
		return "", &gateway.RequestError{Message: msg, Kind: gateway.KindAPI}
	}
	return resp.GameURL, nil
}
