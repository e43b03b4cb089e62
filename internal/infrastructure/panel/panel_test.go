package panel

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, DefaultVersion, p.Version())
	require.Equal(t, 5, p.Len())

	ids := make([]string, 0, p.Len())
	for _, l := range p.Lenders() {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"vietcombank", "techcombank", "bidv", "vpbank", "mbbank"}, ids)

	assert.Equal(t, []model.PanelFinding{
		{LenderID: "vietcombank", Kind: model.FindingTierGap, From: 0, To: 54},
		{LenderID: "techcombank", Kind: model.FindingTierGap, From: 0, To: 39},
		{LenderID: "bidv", Kind: model.FindingTierGap, From: 0, To: 59},
		{LenderID: "vpbank", Kind: model.FindingTierGap, From: 0, To: 44},
		{LenderID: "mbbank", Kind: model.FindingTierGap, From: 0, To: 49},
		{LenderID: "mbbank", Kind: model.FindingTierGap, From: 65, To: 69},
	}, p.Validate())
}

func TestDocument_YAMLRoundTrip(t *testing.T) {
	want := Default()

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, FromPanel(want)))
	assert.Contains(t, buf.String(), "id: vietcombank")

	doc, err := DecodeYAML(&buf)
	require.NoError(t, err)

	got, err := Build(doc, want.LoadedAt())
	require.NoError(t, err)
	assert.Equal(t, FromPanel(want), FromPanel(got))
}

const sampleYAML = `
version: "2024-06"
lenders:
  - id: acme
    name: Acme Bank
    min_score: 50
    min_monthly_income: 5000000
    max_debt_to_income: 0.6
    max_loan_to_collateral: 0.8
    min_employment_years: 1
    preferred_purposes: [home]
    fees:
      processing_percent: 1
      insurance_percent: 0.5
      early_repayment_percent: 2
      late_payment_percent: 150
      annual_management_fee: 100000
    rate_tiers:
      - scores: {min: 70, max: 100}
        base_rate: 8.5
        loan_amount:
          - {min: 0, max: 100000000, delta: 0.5}
          - {min: 100000000, delta: 0}
        occupation:
          doctor: -0.3
      - scores: {min: 50, max: 69}
        base_rate: 11
`

func TestDecodeYAML(t *testing.T) {
	doc, err := DecodeYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	p, err := Build(doc, time.Time{})
	require.NoError(t, err)

	l, err := p.Lender("acme")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", p.Version())
	require.Len(t, l.RateTiers, 2)

	top := l.RateTiers[0]
	assert.Equal(t, 8.5, top.BaseRate)
	assert.True(t, top.LoanAmountAdjustments[1].Range.Unbounded())
	assert.Equal(t, -0.3, top.OccupationDelta("doctor"))
	assert.Equal(t, "1", l.Fees.ProcessingFeePercent.String())
}

func TestDecodeYAML_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("version: x\nlendrs: []\n"))
	assert.Error(t, err)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"version":"x","lenders":[],"extra":1}`))
	assert.Error(t, err)

	doc, err := DecodeJSON(strings.NewReader(`{"version":"x","lenders":[{"id":"a","name":"A","rate_tiers":[{"scores":{"min":0,"max":100},"base_rate":9}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Lenders[0].ID)
}

func TestBuild_InvalidRange(t *testing.T) {
	hi := 10.0
	doc := Document{Version: "bad", Lenders: []LenderDocument{{
		ID:        "x",
		RateTiers: []TierDocument{{Scores: RangeDocument{Min: 50, Max: &hi}, BaseRate: 9}},
	}}}

	_, err := Build(doc, time.Time{})
	assert.ErrorIs(t, err, model.ErrInvalidPanel)
}

func TestSources(t *testing.T) {
	ctx := context.Background()

	p, err := BuiltinSource{}.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, p.Version())

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "panel.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o600))

	p, err = FileSource{Path: yamlPath}.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06", p.Version())

	_, err = FileSource{Path: filepath.Join(dir, "missing.yaml")}.Load(ctx)
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = FileSource{Path: yamlPath}.Load(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore(t *testing.T) {
	s := NewStore(nil)
	assert.False(t, s.Loaded())

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrPanelNotLoaded)

	first := Default()
	assert.Nil(t, s.Swap(first))
	assert.True(t, s.Loaded())

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, first, cur)

	second := Default()
	assert.Same(t, first, s.Swap(second))
}

func TestStore_ConcurrentReadersSeeWholePanels(t *testing.T) {
	a, err := model.NewLenderPanel("a", Default().Lenders(), time.Time{})
	require.NoError(t, err)
	b, err := model.NewLenderPanel("b", Default().Lenders()[:2], time.Time{})
	require.NoError(t, err)

	s := NewStore(a)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p, err := s.Current()
				if !assert.NoError(t, err) {
					return
				}
				switch p.Version() {
				case "a":
					assert.Equal(t, 5, p.Len())
				case "b":
					assert.Equal(t, 2, p.Len())
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			s.Swap(b)
		} else {
			s.Swap(a)
		}
	}
	wg.Wait()
}
