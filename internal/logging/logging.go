package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup configures the process-wide logrus logger
func Setup(level, format string) {
	Configure(log.StandardLogger(), os.Stdout, level, format)
}

// Configure applies level and format to logger and directs it to out.
// Unknown levels fall back to info; any format other than "text" is JSON.
func Configure(logger *log.Logger, out io.Writer, level, format string) {
	logger.SetOutput(out)

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "text") {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		return
	}
	logger.SetFormatter(&log.JSONFormatter{})
}
