package main

import (
	"fmt"
	"os"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/app"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()

	if err := app.Run(config); err != nil {
		logger.Error("server stopped with error", err.Error())
		logger.Sync()
		os.Exit(1)
	}
}
