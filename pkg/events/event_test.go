package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewBaseEvent("lending.advisory.raised", "eval-123", "Evaluation")
	after := time.Now().UTC()

	assert.NotEmpty(t, event.EventID())
	assert.Equal(t, "lending.advisory.raised", event.EventType())
	assert.Equal(t, "eval-123", event.AggregateID())
	assert.Equal(t, "Evaluation", event.AggregateType())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent("t", "agg", "Aggregate")
	b := NewBaseEvent("t", "agg", "Aggregate")
	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestBaseEvent_JSONEnvelope(t *testing.T) {
	type advisory struct {
		BaseEvent
		Code string `json:"code"`
	}
	ev := advisory{BaseEvent: NewBaseEvent("lending.advisory.raised", "eval-1", "Evaluation"), Code: "X"}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, ev.EventID(), parsed["event_id"])
	assert.Equal(t, "lending.advisory.raised", parsed["event_type"])
	assert.Equal(t, "eval-1", parsed["aggregate_id"])
	assert.Equal(t, "Evaluation", parsed["aggregate_type"])
	assert.Equal(t, "X", parsed["code"])
}
