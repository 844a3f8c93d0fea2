package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lessonlab/code-runner/internal/config"
	"github.com/lessonlab/code-runner/internal/files"
	"github.com/lessonlab/code-runner/internal/httpapi"
	"github.com/lessonlab/code-runner/internal/rabbitmq"
	"github.com/lessonlab/code-runner/internal/runner/native"
)

func panicErr(err error) {
	if err != nil {
		panic(err)
	}
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "info":
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	default:
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}
}

func main() {
	cfg, err := config.NewConfig()
	panicErr(err)
	setLogLevel(cfg.LogLevel)

	runner := native.NewNativeRunner(cfg.Limits())

	var listener *rabbitmq.RabbitMQHandler
	if cfg.AMQPEnabled {
		var storage *files.FileStorage
		if cfg.MinIOLogin != "" {
			storage, err = files.NewFileStorage(files.Config{
				Url:      cfg.MinIOHost,
				Login:    cfg.MinIOLogin,
				Password: cfg.MinIOPassword,
				Bucket:   cfg.MinIOBucket,
			})
			panicErr(err)
		}
		listener, err = rabbitmq.NewRabbitMQHandler(rabbitmq.RabbitMqHandlerConfig{
			Login:        cfg.RabbitMQUser,
			Password:     cfg.RabbitMQPassword,
			Host:         cfg.RabbitMQHost,
			Port:         cfg.RabbitMQPort,
			WorkersCount: cfg.WorkersCount,
		}, runner, storage)
		panicErr(err)
		panicErr(listener.Start())
	}

	server := httpapi.NewServer(cfg.HTTPAddr, runner)
	go func() {
		panicErr(server.Start())
	}()
	slog.Info("app started", "languages", native.Languages())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	if listener != nil {
		listener.Close()
	}
}
