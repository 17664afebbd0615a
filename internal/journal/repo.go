package journal

import (
	"context"
	_ "embed"
	"errors"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, schema)
	return err
}

// Append stores env once; replays of the same event id are ignored.
func (r *Repo) Append(ctx context.Context, env orders.Envelope) (inserted bool, err error) {
	ct, err := r.DB.Exec(ctx, `
		INSERT INTO workflow_events(event_id, event_type, event_version, occurred_at, producer, correlation_id, trace_id, payload)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (event_id) DO NOTHING`,
		env.EventID, env.EventType, env.EventVersion, env.OccurredAt, env.Producer,
		env.CorrelationID, env.TraceID, []byte(env.Payload),
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

// AdvanceStage locks the item's row and moves it to `to` if that is a legal
// forward step. Unknown items are created at `to`. Returns false when the
// move was refused; nothing changes then.
func (r *Repo) AdvanceStage(ctx context.Context, itemID int64, to orders.Stage) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur int
	err = tx.QueryRow(ctx, `SELECT stage FROM order_item_stages WHERE order_item_id=$1 FOR UPDATE`, itemID).Scan(&cur)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_item_stages(order_item_id, stage, stage_name)
			VALUES ($1,$2,$3)
			ON CONFLICT (order_item_id) DO NOTHING`, itemID, int(to), to.String()); err != nil {
			return false, err
		}
	case err != nil:
		return false, err
	default:
		from := orders.Stage(cur)
		if from == to || !orders.Reachable(from, to) {
			return false, nil
		}
		if _, err := tx.Exec(ctx, `
			UPDATE order_item_stages SET stage=$2, stage_name=$3, updated_at=now()
			WHERE order_item_id=$1`, itemID, int(to), to.String()); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Stage reads the projected stage of one item.
func (r *Repo) Stage(ctx context.Context, itemID int64) (orders.Stage, error) {
	var s int
	if err := r.DB.QueryRow(ctx, `SELECT stage FROM order_item_stages WHERE order_item_id=$1`, itemID).Scan(&s); err != nil {
		return orders.StageBrowsing, err
	}
	return orders.Stage(s), nil
}
