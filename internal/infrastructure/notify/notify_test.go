package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
)

var loanAdvisory = model.Advisory{Code: model.AdvisoryLoanExceedsIncomeMultiple, Message: "loan exceeds 5x annual income"}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, advisories ...model.Advisory) error {
	args := m.Called(ctx, advisories)
	return args.Error(0)
}

func TestCollector_ConcurrentNotify(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Notify(context.Background(), loanAdvisory)
		}()
	}
	wg.Wait()

	assert.Len(t, c.Advisories(), 50)
}

func TestCollector_AdvisoriesIsCopy(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.Notify(context.Background(), loanAdvisory))

	got := c.Advisories()
	got[0].Message = "changed"

	assert.Equal(t, loanAdvisory, c.Advisories()[0])
}

func TestLogNotifier_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := port.WithEvaluationID(context.Background(), "eval-42")

	require.NoError(t, n.Notify(ctx, loanAdvisory))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "advisory_code=LOAN_EXCEEDS_5X_ANNUAL_INCOME")
	assert.Contains(t, out, "evaluation_id=eval-42")
}

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	ctx := context.Background()
	failing := &mockNotifier{}
	failing.On("Notify", ctx, []model.Advisory{loanAdvisory}).Return(errors.New("broker down"))
	collector := NewCollector()

	err := Fanout{failing, nil, collector}.Notify(ctx, loanAdvisory)

	assert.ErrorContains(t, err, "broker down")
	assert.Equal(t, []model.Advisory{loanAdvisory}, collector.Advisories())
	failing.AssertExpectations(t)
}
