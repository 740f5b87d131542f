package main

import (
	"strings"
	"testing"

	"github.com/SakuraBurst/rewards/internal/rewards/controller"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRenderRing(t *testing.T) {
	line := renderRing(controller.SpinState{Rotation: 315, DisplayedSlot: controller.SlotAt(315)})
	require.True(t, strings.HasPrefix(line, "[  50]"), line)
	require.Contains(t, line, "315.0°")
}

func TestPoints(t *testing.T) {
	require.Equal(t, "12,500", points(decimal.NewFromInt(12500)))
	require.Equal(t, "1,234.5", points(decimal.RequireFromString("1234.5")))
}
