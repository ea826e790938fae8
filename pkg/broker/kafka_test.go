package broker

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"localhost:9092", "localhost:9093"}, Topic: "product-views"})
	t.Cleanup(func() { _ = p.Close() })

	require.NotNil(t, p.writer)
	assert.Equal(t, "product-views", p.writer.Topic)
	assert.Equal(t, "localhost:9092,localhost:9093", p.writer.Addr.String())
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
	assert.True(t, p.writer.AllowAutoTopicCreation)
}

func TestNewConsumer(t *testing.T) {
	c := NewConsumer(&Config{Brokers: []string{"localhost:9092"}, Topic: "product-views", GroupID: "catalog"})
	t.Cleanup(func() { _ = c.Close() })

	cfg := c.reader.Config()
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, "product-views", cfg.Topic)
	assert.Equal(t, "catalog", cfg.GroupID)
	assert.Equal(t, 500*time.Millisecond, cfg.MaxWait)
}

func TestPublishHonoursContext(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"127.0.0.1:1"}, Topic: "product-views"})
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	assert.Error(t, p.Publish(ctx, "p1", []byte(`{}`)))
}
