package logger

import (
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process-wide structured logger. Output goes to a
// buffered file writer; a console hook mirrors every entry to stdout.
func NewLogger(env string) *logrus.Logger {
	l := logrus.New()

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "warn":
		l.SetLevel(logrus.WarnLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	if err := os.MkdirAll("logs", 0750); err != nil {
		log.Fatalf("failed to create logs directory: %v", err)
	}

	logFile := "logs/server.log"
	if env != "" && env != "production" {
		logFile = "logs/server." + env + ".log"
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		log.Fatalf("failed to initialize async log writer: %v", err)
	}
	l.SetOutput(asyncWriter)
	l.AddHook(NewConsoleHook())

	return l
}
