package main

import (
	"timegrid/internal/timeblocks/handler"
	"timegrid/internal/timeblocks/service"
	"timegrid/internal/timeblocks/validator"
	"timegrid/pkg/app"
	"timegrid/pkg/client"
	"timegrid/pkg/config"
	"timegrid/pkg/kafka"
	kafkaconfig "timegrid/pkg/kafka/config"
)

const ServiceName = "timeblocks"

// @title Timegrid Time Blocks API
// @version 1.0
// @description Weekly time-block generation against the timetable service.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Time Blocks service")

	timetableClient := client.NewTimetableClient(cfg.TimetableServiceURL, cfg.TimetableTimeout)
	timeBlockService := initServices(cfg, timetableClient)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewTimeBlockHandler(timeBlockService, cfg.Log),
		handler.NewHealthHandler(timetableClient, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, timetableClient *client.TimetableClient) service.TimeBlockService {
	blockValidator := validator.NewBlockConfigValidator(validator.Caps{
		MaxBlocksPerDay:  cfg.MaxBlocksPerDay,
		MaxBlockDuration: cfg.MaxBlockMinutes,
	}, cfg.Log)

	var events service.EventPublisher
	if cfg.EventsTopic != "" {
		kafkaCfg := kafkaconfig.Load()
		producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.EventsDLQTopic)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize event producer", "error", err)
		}
		events = producer
		cfg.Log.Info("Generation events enabled", "topic", cfg.EventsTopic)
	}

	timeBlockService := service.NewTimeBlockService(
		timetableClient,
		blockValidator,
		cfg,
		events,
	)

	cfg.Log.Info("Time Blocks service initialized", "timetable_url", cfg.TimetableServiceURL)
	return timeBlockService
}
