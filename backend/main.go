package main

import (
	"flag"
	"fmt"
	"net/http"

	"fruitlens/backend/global"
	"fruitlens/backend/initialize"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("startup failed")
	}

	addr := fmt.Sprintf("%s:%d", app.Cfg.HTTP.Host, app.Cfg.HTTP.Port)
	global.Logger.Info().Str("addr", addr).Msg("fruitlens API listening")
	if err := http.ListenAndServe(addr, app.Router); err != nil {
		global.Logger.Fatal().Err(err).Msg("http server stopped")
	}
}
