package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/panel"
	pkgpostgres "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/postgres"
)

// ErrNoLenders is returned when the lender_profiles table is empty.
var ErrNoLenders = errors.New("no lender profiles stored")

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pkgpostgres.Querier
	pkgpostgres.TxBeginner
}

// LenderPanelRepo stores the lender panel in PostgreSQL, one row per lender
// with the definition held as JSONB. It implements port.PanelSource.
type LenderPanelRepo struct {
	db  DB
	now func() time.Time
}

// NewLenderPanelRepo creates a new repository backed by PostgreSQL.
func NewLenderPanelRepo(db DB) *LenderPanelRepo {
	return &LenderPanelRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Load implements port.PanelSource.
func (r *LenderPanelRepo) Load(ctx context.Context) (*model.LenderPanel, error) {
	return r.LoadAll(ctx)
}

// LoadAll reads every stored lender in position order and builds a panel.
func (r *LenderPanelRepo) LoadAll(ctx context.Context) (*model.LenderPanel, error) {
	query := `
		SELECT panel_version, definition
		FROM lender_profiles
		ORDER BY position
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query lender profiles: %w", err)
	}
	defer rows.Close()

	var doc panel.Document
	for rows.Next() {
		var (
			version string
			raw     []byte
		)
		if err := rows.Scan(&version, &raw); err != nil {
			return nil, fmt.Errorf("scan lender profile: %w", err)
		}

		var l panel.LenderDocument
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("decode lender profile: %w", err)
		}
		if doc.Version == "" {
			doc.Version = version
		}
		doc.Lenders = append(doc.Lenders, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lender profiles: %w", err)
	}
	if len(doc.Lenders) == 0 {
		return nil, ErrNoLenders
	}

	p, err := panel.Build(doc, r.now())
	if err != nil {
		return nil, fmt.Errorf("build panel from database: %w", err)
	}
	return p, nil
}

// Replace swaps the stored panel for p in a single transaction.
func (r *LenderPanelRepo) Replace(ctx context.Context, p *model.LenderPanel) error {
	doc := panel.FromPanel(p)
	updatedAt := r.now()

	return pkgpostgres.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM lender_profiles`); err != nil {
			return fmt.Errorf("clear lender profiles: %w", err)
		}

		insert := `
			INSERT INTO lender_profiles (id, position, panel_version, definition, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		batch := &pgx.Batch{}
		for i, l := range doc.Lenders {
			raw, err := json.Marshal(l)
			if err != nil {
				return fmt.Errorf("encode lender %s: %w", l.ID, err)
			}
			batch.Queue(insert, l.ID, i, doc.Version, raw, updatedAt)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert lender profiles: %w", err)
		}
		return nil
	})
}
