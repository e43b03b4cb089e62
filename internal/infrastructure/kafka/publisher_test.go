package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/event"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
	pkgkafka "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/kafka"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	args := m.Called(ctx, topic, messages)
	return args.Error(0)
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestAdvisoryNotifier_PublishesOneEventPerAdvisory(t *testing.T) {
	producer := &mockProducer{}
	var sent []pkgkafka.Message
	producer.On("Publish", mock.Anything, "loanmatch.advisories", mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).([]pkgkafka.Message) }).
		Return(nil)

	n := NewAdvisoryNotifier(producer, "loanmatch.advisories", discardLogger())
	ctx := port.WithEvaluationID(context.Background(), "eval-7")

	err := n.Notify(ctx,
		model.Advisory{Code: model.AdvisoryLoanExceedsIncomeMultiple, Message: "loan exceeds 5x annual income"},
		model.Advisory{Code: model.AdvisoryDebtExceedsHalfIncome, Message: "existing debt exceeds 50% of income"},
	)
	require.NoError(t, err)
	require.Len(t, sent, 2)

	assert.Equal(t, "eval-7", string(sent[0].Key))
	assert.Equal(t, event.AdvisoryRaisedType, sent[0].Headers["event_type"])

	var decoded event.AdvisoryRaised
	require.NoError(t, json.Unmarshal(sent[1].Value, &decoded))
	assert.Equal(t, "EXISTING_DEBT_EXCEEDS_50PCT_INCOME", decoded.Code)
	assert.Equal(t, "eval-7", decoded.AggregateID())
	assert.Equal(t, decoded.EventID(), sent[1].Headers["event_id"])
	producer.AssertExpectations(t)
}

func TestAdvisoryNotifier_GeneratesIDOutsideEvaluation(t *testing.T) {
	producer := &mockProducer{}
	var sent []pkgkafka.Message
	producer.On("Publish", mock.Anything, "t", mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).([]pkgkafka.Message) }).
		Return(nil)

	n := NewAdvisoryNotifier(producer, "t", discardLogger())
	require.NoError(t, n.Notify(context.Background(), model.Advisory{Code: "X"}))

	require.Len(t, sent, 1)
	assert.Len(t, string(sent[0].Key), 36)
}

func TestEventPublisher_WrapsProducerError(t *testing.T) {
	producer := &mockProducer{}
	producer.On("Publish", mock.Anything, "events", mock.Anything).Return(errors.New("leader not available"))

	p := NewEventPublisher(producer, "events", discardLogger())
	err := p.Publish(context.Background(), event.NewPanelReloaded("v2", 5, 0))

	assert.ErrorContains(t, err, "publish events to topic events")
	assert.ErrorContains(t, err, "leader not available")
}

func TestEventPublisher_NoEventsIsNoop(t *testing.T) {
	producer := &mockProducer{}
	p := NewEventPublisher(producer, "events", discardLogger())

	require.NoError(t, p.Publish(context.Background()))
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
