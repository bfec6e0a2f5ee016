package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"alert-engine/internal/config"
	"alert-engine/internal/engine"
)

// triggerMessage is the payload expected on the trigger topic. The source
// field is informational only; any valid message starts a run attempt.
type triggerMessage struct {
	Source string `json:"source"`
}

// Consumer turns broker messages into evaluation run attempts. It is an
// alternative trigger transport to the HTTP endpoint; the lease still
// serializes runs across both.
type Consumer struct {
	reader *kafkago.Reader
	engine *engine.Engine
	logger *logrus.Logger
}

func NewConsumer(cfg config.Config, eng *engine.Engine, logger *logrus.Logger) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{cfg.Kafka.Broker},
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	return &Consumer{reader: reader, engine: eng, logger: logger}
}

// Start blocks reading messages until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("Kafka trigger consumer started")
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Errorf("Read message failed: %v", err)
			continue
		}

		var trigger triggerMessage
		if err := json.Unmarshal(msg.Value, &trigger); err != nil {
			c.logger.Errorf("Unmarshal trigger message failed: %v", err)
			continue
		}

		result, err := c.engine.Run(ctx)
		if err != nil {
			c.logger.Errorf("Triggered run failed (source=%s): %v", trigger.Source, err)
			continue
		}
		c.logger.WithFields(logrus.Fields{
			"source":    trigger.Source,
			"skipped":   result.Skipped,
			"evaluated": result.Evaluated,
			"triggered": result.Triggered,
		}).Info("Processed Kafka trigger")
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Errorf("Kafka reader close failed: %v", err)
	}
}
