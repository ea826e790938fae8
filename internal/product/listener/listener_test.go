package listener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/metalmarket-service/internal/product"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type countingUseCase struct {
	product.UseCase
	incremented []string
}

func (u *countingUseCase) IncrementViews(_ context.Context, id string) error {
	u.incremented = append(u.incremented, id)
	if id == "gone" {
		return errors.New("not found")
	}
	return nil
}

type sliceReader struct {
	msgs   []kafka.Message
	cancel context.CancelFunc
}

func (r *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func TestProcessMessage(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"product viewed", `{"event_type":"ProductViewed","product_id":"p1"}`, []string{"p1"}},
		{"other event", `{"event_type":"LeadCreated","product_id":"p1"}`, nil},
		{"missing product", `{"event_type":"ProductViewed"}`, nil},
		{"malformed", `{`, nil},
		{"deleted product", `{"event_type":"ProductViewed","product_id":"gone"}`, []string{"gone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &countingUseCase{}
			l := NewViewsListener(nil, uc, logger.NewNop())
			l.processMessage(context.Background(), []byte(tt.value))
			assert.Equal(t, tt.want, uc.incremented)
		})
	}
}

func TestStartDrainsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &sliceReader{
		cancel: cancel,
		msgs: []kafka.Message{
			{Value: []byte(`{"event_type":"ProductViewed","product_id":"p1"}`)},
			{Value: []byte(`{"event_type":"ProductViewed","product_id":"p2"}`)},
		},
	}
	uc := &countingUseCase{}
	l := NewViewsListener(reader, uc, logger.NewNop())

	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after cancellation")
	}
	assert.Equal(t, []string{"p1", "p2"}, uc.incremented)
}
