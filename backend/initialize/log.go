package initialize

import (
	"io"
	"os"

	"fruitlens/backend/global"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	global.Logger = log.Output(cw)
}

// RedirectLog points the global logger at a file when the config names one.
func RedirectLog(path string) error {
	if path == "" {
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	var w io.Writer = file
	global.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: true})
	return nil
}
