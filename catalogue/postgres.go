package catalogue

import (
	"context"
	dbsql "database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/sql"
)

const (
	ECode070101 = e.Code0701 + "01"
	ECode070102 = e.Code0701 + "02"
	ECode070103 = e.Code0701 + "03"
)

// PostgresStore reads the catalogue from the platform's Postgres database
type PostgresStore struct {
	db    *sql.Connection
	table string
}

// NewPostgresStore returns a store reading from the table (DefaultTable if
// empty)
func NewPostgresStore(db *sql.Connection, table string) *PostgresStore {
	if table == "" {
		table = DefaultTable
	}

	return &PostgresStore{db: db, table: table}
}

// GetByID returns the entry with the id
func (ps *PostgresStore) GetByID(ctx context.Context, id int) (*Entry, error) {
	ce, err := ps.get(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, e.W(err, ECode070101, fmt.Sprintf("id: %d", id))
	}

	return ce, nil
}

// GetByTaskID returns the task entry of the platform task
func (ps *PostgresStore) GetByTaskID(ctx context.Context, taskID int) (*Entry, error) {
	ce, err := ps.get(ctx, sq.Eq{"task_id": taskID})
	if err != nil {
		return nil, e.W(err, ECode070102, fmt.Sprintf("taskId: %d", taskID))
	}

	return ce, nil
}

func (ps *PostgresStore) get(ctx context.Context, where sq.Eq) (ce *Entry, err error) {
	sb := ps.db.Select("id", "coalesce(task_id, 0)", "name",
		"coalesce(parent_id, 0)", "type").
		From(ps.table).
		Where(where).
		Limit(1)

	row, err := ps.db.ToSQLAndQueryRow(ctx, sb)
	if err != nil {
		return nil, err
	}

	var typ dbsql.NullString
	ce = &Entry{}
	if err := row.Scan(&ce.ID, &ce.TaskID, &ce.Name, &ce.ParentID, &typ); err != nil {
		if e.IsNoRowsPQError(err) {
			return nil, nil
		}
		if e.IsPQError(err, e.PQErr42P01) {
			return nil, e.WK(err, e.ErrConfiguration, ECode070103,
				e.MsgCatalogueTableNotExists)
		}
		return nil, err
	}
	ce.Type = typ.String

	return ce, nil
}
