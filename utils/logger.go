package utils

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ConfigureLogging points the standard logger at the configured output.
// When a file path is given the writer rotates via lumberjack; "both"
// tees between stdout and the rotating file.
func ConfigureLogging(output, filePath string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) {
	if output == "stdout" || filePath == "" {
		log.SetOutput(os.Stdout)
		return
	}

	rotating := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   compress,
	}

	switch output {
	case "file":
		log.SetOutput(rotating)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	default:
		log.SetOutput(os.Stdout)
	}
}
