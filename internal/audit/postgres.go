package audit

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

type PostgresRecorder struct {
	db *sql.DB
}

func NewPostgresRecorder(dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresRecorder{db: db}, nil
}

func (p *PostgresRecorder) Record(ctx context.Context, e Entry) error {
	_, err := p.db.ExecContext(ctx, `INSERT INTO audit_log(id, order_id, action, from_status, to_status, rider_id, rider_name, actor, at) VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, e.OrderID, e.Action, e.From, e.To, e.RiderID, e.RiderName, e.Actor, e.At)
	return err
}

func (p *PostgresRecorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.db.QueryContext(ctx, `SELECT id, order_id, action, from_status, to_status, rider_id, rider_name, actor, at FROM audit_log ORDER BY at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Action, &e.From, &e.To, &e.RiderID, &e.RiderName, &e.Actor, &e.At); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
