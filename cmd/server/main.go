package main

import (
	"github.com/diretoriaja/portal/internal/server"
	"github.com/diretoriaja/portal/internal/util"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		JSON:   util.GetEnvBool("LOG_JSON", false),
		Prefix: "portal",
	})
	logger.Init(consoleLogger)

	server.Init()
}
