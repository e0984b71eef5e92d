package config

import "github.com/mordilloSan/go-logger/logger"

// InitLogger configures log levels; verbose adds DEBUG.
func InitLogger(verbose bool) {
	levels := []logger.Level{logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel}
	if verbose {
		levels = logger.AllLevels()
	}
	logger.Init(logger.Config{Levels: levels})
}
