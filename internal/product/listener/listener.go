package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/metalmarket-service/internal/product"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// ViewsListener folds ProductViewed events into the products' view counters.
type ViewsListener struct {
	consumer MessageReader
	uc       product.UseCase
	logger   logger.ZapLogger
}

func NewViewsListener(consumer MessageReader, uc product.UseCase, logger logger.ZapLogger) *ViewsListener {
	return &ViewsListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *ViewsListener) Start(ctx context.Context) {
	l.logger.Info("Starting product views Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping product views Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *ViewsListener) processMessage(ctx context.Context, value []byte) {
	var event product.ViewedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != product.EventProductViewed || event.ProductID == "" {
		return
	}

	if err := l.uc.IncrementViews(ctx, event.ProductID); err != nil {
		// Views of a since-deleted product are dropped.
		l.logger.Warn("Failed to increment product views",
			zap.String("event_id", event.EventID),
			zap.String("product_id", event.ProductID),
			zap.Error(err),
		)
	}
}
