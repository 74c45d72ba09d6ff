package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/pkg/kafka"
	"github.com/prestamos/loan-service/pkg/observability"
)

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Inspect the domain event stream",
		Subcommands: []*cli.Command{
			{
				Name:  "tail",
				Usage: "Print events from the configured topic until interrupted",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "group", Usage: "consumer group, overrides kafka.consumer_group"},
				},
				Action: tailEvents,
			},
		},
	}
}

func tailEvents(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers (LOANS_KAFKA_BROKERS) is not set")
	}

	logger, err := observability.InitLogger(cfg.Logging())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := cfg.KafkaClient()
	if group := c.String("group"); group != "" {
		client.ConsumerGroup = group
	}

	out := c.App.Writer
	consumer, err := kafka.NewConsumer(client, cfg.Kafka.Topic, func(_ context.Context, msg kafka.Message) error {
		_, err := fmt.Fprintf(out, "%s\t%s\t%s\n", msg.Headers["event_type"], msg.Key, msg.Value)
		return err
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Warn("close consumer", zap.Error(err))
		}
	}()

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return consumer.Start(ctx)
}
