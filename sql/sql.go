package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/Skyrin/go-dsbridge/e"

	// Including postgres library for SQL connections
	_ "github.com/lib/pq"
)

const (
	ECode020101 = e.Code0201 + "01"
	ECode020102 = e.Code0201 + "02"
	ECode020103 = e.Code0201 + "03"
	ECode020104 = e.Code0201 + "04"
)

// Connection wrapper of the *sql.DB. Only read access is exposed, the
// catalogue is owned by the platform
type Connection struct {
	DB *sql.DB
}

// ConnParam connection parameters used to initialize a connection
type ConnParam struct {
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SearchPath string
}

// GetConnectionStr returns a connection string
func GetConnectionStr(cp *ConnParam) (connStr string) {
	var csb strings.Builder

	_, _ = csb.WriteString("host=")
	_, _ = csb.WriteString(cp.Host)
	_, _ = csb.WriteString(" port=")
	_, _ = csb.WriteString(cp.Port)
	_, _ = csb.WriteString(" user=")
	_, _ = csb.WriteString(cp.User)
	_, _ = csb.WriteString(" password=")
	_, _ = csb.WriteString(cp.Password)
	_, _ = csb.WriteString(" dbname=")
	_, _ = csb.WriteString(cp.DBName)

	_, _ = csb.WriteString(" sslmode=")
	if cp.SSLMode != "" {
		_, _ = csb.WriteString(cp.SSLMode)
	} else {
		_, _ = csb.WriteString("require")
	}

	if cp.SearchPath != "" {
		_, _ = csb.WriteString(" search_path=")
		_, _ = csb.WriteString(cp.SearchPath)
	}

	return csb.String()
}

// NewPostgresConn initializes a new Postgres connection
func NewPostgresConn(ctx context.Context, cp *ConnParam) (conn *Connection, err error) {
	if cp == nil {
		return nil, e.N(ECode020101, "no connection parameters")
	}

	sqlConn, err := sql.Open("postgres", GetConnectionStr(cp))
	if err != nil {
		return nil, e.WK(err, e.ErrTransport, ECode020102, "Failed to connect to DB")
	}
	if err := sqlConn.PingContext(ctx); err != nil {
		_ = sqlConn.Close()
		return nil, e.WK(err, e.ErrTransport, ECode020103, "Failed to ping DB")
	}

	return NewConnection(sqlConn), nil
}

// NewConnection wraps an already opened *sql.DB
func NewConnection(db *sql.DB) *Connection {
	return &Connection{DB: db}
}

// Close closes the underlying DB
func (c *Connection) Close() error {
	return c.DB.Close()
}

// QueryRow wrapper for sql.QueryRowContext
func (c *Connection) QueryRow(ctx context.Context, query string, args ...interface{}) (row *Row) {
	return &Row{
		row:   c.DB.QueryRowContext(ctx, query, args...),
		query: query,
	}
}

// Select wrapper for github.com/Masterminds/squirrel.Select
func (c *Connection) Select(columns ...string) sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select(columns...)
}

// ToSQLAndQueryRow converts the select builder to a SQL statement and bind parameters,
// then attempts to execute the query, returning a single row
func (c *Connection) ToSQLAndQueryRow(ctx context.Context, sb sq.SelectBuilder) (row *Row, err error) {
	stmt, bindList, err := sb.ToSql()
	if err != nil {
		return nil, e.W(err, ECode020104, fmt.Sprintf("stmt: %s\n", stmt))
	}

	return c.QueryRow(ctx, stmt, bindList...), nil
}
