package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store keeps every table's rows as JSON documents in one SQL table.
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
	search map[string][]string
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithSearchFields sets the fields the search query parameter matches per
// table.
func WithSearchFields(fields map[string][]string) StoreOption {
	return func(s *Store) { s.search = fields }
}

// OpenStore opens the database for driver and creates the schema.
func OpenStore(ctx context.Context, driver, dsn string, opts ...StoreOption) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		if dsn == "" {
			dsn = "elvira.db"
		}
		db, err = sql.Open("sqlite", dsn)
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	case DriverPostgres, "pgx":
		driver = DriverPostgres
		db, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	s := &Store{db: db, driver: driver, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Driver returns the normalised driver name.
func (s *Store) Driver() string { return s.driver }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			tbl        TEXT NOT NULL,
			id         TEXT NOT NULL,
			hotel_id   TEXT NOT NULL DEFAULT '',
			payload    TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (tbl, id)
		)`,
		`CREATE INDEX IF NOT EXISTS records_hotel ON records (tbl, hotel_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// --- Queries ---

// List returns the table's rows in creation order. hotelID and search
// narrow the result when set.
func (s *Store) List(ctx context.Context, table, hotelID, search string) ([]crud.Record, error) {
	query := `SELECT payload FROM records WHERE tbl = ?`
	args := []any{table}
	if hotelID != "" {
		query += ` AND hotel_id = ?`
		args = append(args, hotelID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	out := []crud.Record{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		rec, err := decodeRecord(payload)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	if fields := s.search[table]; search != "" && len(fields) > 0 {
		out = crud.FilterBySearch(out, search, fields)
	}
	return out, nil
}

// Get returns one row or crud.ErrNotFound.
func (s *Store) Get(ctx context.Context, table, id string) (crud.Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT payload FROM records WHERE tbl = ? AND id = ?`), table, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", table, id, crud.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", table, id, err)
	}
	return decodeRecord(payload)
}

// Insert stores a new row. A missing id is filled with a UUID and the
// timestamps are set by the store.
func (s *Store) Insert(ctx context.Context, table string, fields crud.Patch) (crud.Record, error) {
	rec := crud.Record{}
	for k, v := range fields {
		rec[k] = v
	}
	id := crud.FormatID(rec["id"])
	if id != "" {
		if _, err := s.Get(ctx, table, id); err == nil {
			return nil, fmt.Errorf("%s %s: %w", table, id, crud.ErrDuplicateID)
		}
	} else {
		id = uuid.NewString()
		if v7, err := uuid.NewV7(); err == nil {
			id = v7.String()
		}
	}
	stamp := s.stamp()
	rec["id"] = id
	rec["created_at"] = stamp
	rec["updated_at"] = stamp

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", table, err)
	}
	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO records (tbl, id, hotel_id, payload, created_at) VALUES (?, ?, ?, ?, ?)`),
		table, id, crud.Stringify(rec["hotel_id"]), string(payload), stamp)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	return decodeRecord(string(payload))
}

// Update merges fields into an existing row. id and created_at cannot be
// changed.
func (s *Store) Update(ctx context.Context, table, id string, fields crud.Patch) (crud.Record, error) {
	rec, err := s.Get(ctx, table, id)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		if k == "id" || k == "created_at" {
			continue
		}
		rec[k] = v
	}
	rec["updated_at"] = s.stamp()

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", table, err)
	}
	res, err := s.db.ExecContext(ctx,
		s.rebind(`UPDATE records SET payload = ?, hotel_id = ? WHERE tbl = ? AND id = ?`),
		string(payload), crud.Stringify(rec["hotel_id"]), table, id)
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", table, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%s %s: %w", table, id, crud.ErrNotFound)
	}
	return rec, nil
}

// Delete removes a row or returns crud.ErrNotFound.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM records WHERE tbl = ? AND id = ?`), table, id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, crud.ErrNotFound)
	}
	return nil
}

// stampLayout keeps a fixed width so timestamps sort as text.
const stampLayout = "2006-01-02T15:04:05.000000Z07:00"

func (s *Store) stamp() string {
	return s.now().UTC().Format(stampLayout)
}

func decodeRecord(payload string) (crud.Record, error) {
	var rec crud.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}
