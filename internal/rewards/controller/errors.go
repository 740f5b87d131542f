package controller

import "github.com/SakuraBurst/rewards/internal/rewards/gateway"

var (
	ErrTaskNotFound       = gateway.Rejection("task not found")
	ErrTaskNotStartable   = gateway.Rejection("task cannot be started in its current status")
	ErrTaskNotCheckable   = gateway.Rejection("task cannot be checked in its current status")
	ErrStartInFlight      = gateway.Rejection("task start already in progress")
	ErrCheckInFlight      = gateway.Rejection("task check already in progress")
	ErrSpinNotAllowed     = gateway.Rejection("spin is not available")
	ErrSpinClosed         = gateway.Rejection("spin widget is closed")
	ErrLoadSkipped        = gateway.Rejection("nothing to load")
	ErrInsufficientPoints = gateway.Rejection("not enough points")
	ErrRewardNotFound     = gateway.Rejection("reward not found")
	ErrNotAdmin           = gateway.Rejection("admin screens are not available")
)
