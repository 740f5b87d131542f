package main

import (
	"github.com/SakuraBurst/rewards/internal/rewards"
	"github.com/SakuraBurst/rewards/internal/rewards/config"
)

func main() {
	// CONFIG_PATH=./config/config.yaml или переменные окружения
	cfg := config.MustLoad()
	a := rewards.NewApp(cfg)
	if err := a.Run(); err != nil {
		panic(err)
	}
}
