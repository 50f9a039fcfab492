/*
Package sqlite provides the durable implementation of the rewards stores.

PURPOSE:
  Implements every store interface plus the UnitOfWork on SQLite. The
  same patterns apply to PostgreSQL - only SQL dialect differences.

UNIT OF WORK:
  WithTx opens an immediate transaction, so the write lock is taken up
  front and the whole load -> mutate -> persist span is serialized
  against other writers. Returning an error rolls back; nothing partial
  is ever visible.

SCHEMA-LEVEL INVARIANTS:
  Beyond application checks, the schema itself enforces:
  - users:  email and employee_id unique; 0 <= locked_points <= total_points
  - products: points_cost > 0; stock NULL or >= 0
  - redemption_requests: partial unique index allows at most one pending
    request per (user, product)
  - ledger_entries: points > 0; exactly one causing reference matching
    the entry type

  Constraint violations surface as domain ConflictError, never raw
  sqlite errors.

OPTIMISTIC LOCKING:
  users and products carry a version column. Update runs a
  compare-and-swap (WHERE version = ?); zero rows affected on an
  existing row is a ConflictError.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block, one
  writer at a time, better crash recovery.

SEE ALSO:
  - rewards/store.go: Interface contracts
  - store/memory:     In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/warp/rewards-engine/rewards"
)

// Store implements rewards.UnitOfWork backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases coherent and matches
	// sqlite's one-writer model.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		employee_id   TEXT NOT NULL UNIQUE,
		active        INTEGER NOT NULL,
		total_points  INTEGER NOT NULL,
		locked_points INTEGER NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		version       INTEGER NOT NULL,
		CHECK (locked_points >= 0 AND locked_points <= total_points)
	);

	CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		image_url   TEXT,
		points_cost INTEGER NOT NULL CHECK (points_cost > 0),
		stock       INTEGER CHECK (stock IS NULL OR stock >= 0),
		active      INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		version     INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS redemption_requests (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		product_id   TEXT NOT NULL,
		status       TEXT NOT NULL,
		requested_at TEXT NOT NULL,
		approved_at  TEXT,
		delivered_at TEXT
	);

	-- CRITICAL: at most one pending request per (user, product)
	CREATE UNIQUE INDEX IF NOT EXISTS idx_requests_pending_pair
		ON redemption_requests(user_id, product_id)
		WHERE status = 'pending';

	CREATE INDEX IF NOT EXISTS idx_requests_user
		ON redemption_requests(user_id);
	CREATE INDEX IF NOT EXISTS idx_requests_product_status
		ON redemption_requests(product_id, status);

	-- Append-only ledger: no UPDATE, no DELETE statements exist for it
	CREATE TABLE IF NOT EXISTS ledger_entries (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		entry_type TEXT NOT NULL,
		points     INTEGER NOT NULL CHECK (points > 0),
		ts         TEXT NOT NULL,
		event_id   TEXT,
		request_id TEXT,
		CHECK (
			(entry_type = 'earn'   AND event_id IS NOT NULL AND request_id IS NULL) OR
			(entry_type = 'redeem' AND request_id IS NOT NULL AND event_id IS NULL)
		)
	);

	-- History pagination (hot path): recency, then id as stable tiebreak
	CREATE INDEX IF NOT EXISTS idx_ledger_user_ts
		ON ledger_entries(user_id, ts DESC, id DESC);

	CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		occurs_at  TEXT NOT NULL,
		active     INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// UNIT OF WORK
// =============================================================================

func (s *Store) WithTx(ctx context.Context, fn func(rewards.Stores) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}
	st := rewards.Stores{
		Users:    &userStore{q: tx},
		Products: &productStore{q: tx},
		Requests: &requestStore{q: tx},
		Ledger:   &ledgerStore{q: tx},
		Events:   &eventStore{q: tx},
	}
	if err := fn(st); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapErr(err)
	}
	return nil
}

// querier is satisfied by *sql.Tx and *sql.DB.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mapErr converts sqlite constraint failures into domain conflicts.
func mapErr(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) {
		if se.Code == sqlite3.ErrConstraint {
			return &rewards.ConflictError{Kind: "row", ID: "", Message: se.Error()}
		}
	}
	return err
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// =============================================================================
// USERS
// =============================================================================

type userStore struct{ q querier }

const userColumns = `id, name, email, employee_id, active, total_points, locked_points, created_at, updated_at, version`

func (us *userStore) Get(ctx context.Context, id rewards.UserID) (*rewards.User, error) {
	return us.one(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, string(id))
}

// GetForUpdate relies on the immediate transaction already holding the
// write lock; sqlite has no row-level SELECT FOR UPDATE.
func (us *userStore) GetForUpdate(ctx context.Context, id rewards.UserID) (*rewards.User, error) {
	return us.Get(ctx, id)
}

func (us *userStore) GetByEmail(ctx context.Context, email string) (*rewards.User, error) {
	return us.one(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (us *userStore) GetByEmployeeID(ctx context.Context, employeeID string) (*rewards.User, error) {
	return us.one(ctx, `SELECT `+userColumns+` FROM users WHERE employee_id = ?`, employeeID)
}

func (us *userStore) one(ctx context.Context, query, arg string) (*rewards.User, error) {
	row := us.q.QueryRowContext(ctx, query, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &rewards.NotFoundError{Kind: "user", ID: arg}
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (us *userStore) List(ctx context.Context) ([]*rewards.User, error) {
	rows, err := us.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var users []*rewards.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (us *userStore) Add(ctx context.Context, u *rewards.User) error {
	_, err := us.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(u.ID), u.Name, u.Email, u.EmployeeID, boolToInt(u.Active),
		u.TotalPoints, u.LockedPoints,
		formatTime(u.CreatedAt), formatTime(u.UpdatedAt), int64(u.Version))
	return mapErr(err)
}

func (us *userStore) Update(ctx context.Context, u *rewards.User) error {
	res, err := us.q.ExecContext(ctx,
		`UPDATE users
		 SET name = ?, email = ?, employee_id = ?, active = ?,
		     total_points = ?, locked_points = ?, updated_at = ?,
		     version = version + 1
		 WHERE id = ? AND version = ?`,
		u.Name, u.Email, u.EmployeeID, boolToInt(u.Active),
		u.TotalPoints, u.LockedPoints, formatTime(u.UpdatedAt),
		string(u.ID), int64(u.Version))
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := us.Get(ctx, u.ID); err != nil {
			return err
		}
		return &rewards.ConflictError{Kind: "user", ID: string(u.ID), Message: "version mismatch"}
	}
	u.Version++
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(r rowScanner) (*rewards.User, error) {
	var (
		u                    rewards.User
		active               int
		createdAt, updatedAt string
		version              int64
	)
	if err := r.Scan(&u.ID, &u.Name, &u.Email, &u.EmployeeID, &active,
		&u.TotalPoints, &u.LockedPoints, &createdAt, &updatedAt, &version); err != nil {
		return nil, err
	}
	u.Active = active != 0
	u.Version = rewards.Version(version)
	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// =============================================================================
// PRODUCTS
// =============================================================================

type productStore struct{ q querier }

const productColumns = `id, name, description, image_url, points_cost, stock, active, created_at, updated_at, version`

func (ps *productStore) Get(ctx context.Context, id rewards.ProductID) (*rewards.Product, error) {
	row := ps.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, string(id))
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &rewards.NotFoundError{Kind: "product", ID: string(id)}
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (ps *productStore) GetForUpdate(ctx context.Context, id rewards.ProductID) (*rewards.Product, error) {
	return ps.Get(ctx, id)
}

func (ps *productStore) List(ctx context.Context) ([]*rewards.Product, error) {
	rows, err := ps.q.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var products []*rewards.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (ps *productStore) Add(ctx context.Context, p *rewards.Product) error {
	_, err := ps.q.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(p.ID), p.Name, nullableString(p.Description), nullableString(p.ImageURL),
		p.PointsCost, nullableInt(p.Stock), boolToInt(p.Active),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt), int64(p.Version))
	return mapErr(err)
}

func (ps *productStore) Update(ctx context.Context, p *rewards.Product) error {
	res, err := ps.q.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, description = ?, image_url = ?, points_cost = ?,
		     stock = ?, active = ?, updated_at = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		p.Name, nullableString(p.Description), nullableString(p.ImageURL), p.PointsCost,
		nullableInt(p.Stock), boolToInt(p.Active), formatTime(p.UpdatedAt),
		string(p.ID), int64(p.Version))
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := ps.Get(ctx, p.ID); err != nil {
			return err
		}
		return &rewards.ConflictError{Kind: "product", ID: string(p.ID), Message: "version mismatch"}
	}
	p.Version++
	return nil
}

func (ps *productStore) Delete(ctx context.Context, id rewards.ProductID) error {
	res, err := ps.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, string(id))
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &rewards.NotFoundError{Kind: "product", ID: string(id)}
	}
	return nil
}

func scanProduct(r rowScanner) (*rewards.Product, error) {
	var (
		p                    rewards.Product
		description, image   sql.NullString
		stock                sql.NullInt64
		active               int
		createdAt, updatedAt string
		version              int64
	)
	if err := r.Scan(&p.ID, &p.Name, &description, &image, &p.PointsCost,
		&stock, &active, &createdAt, &updatedAt, &version); err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if image.Valid {
		p.ImageURL = &image.String
	}
	if stock.Valid {
		v := stock.Int64
		p.Stock = &v
	}
	p.Active = active != 0
	p.Version = rewards.Version(version)
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// =============================================================================
// REDEMPTION REQUESTS
// =============================================================================

type requestStore struct{ q querier }

const requestColumns = `id, user_id, product_id, status, requested_at, approved_at, delivered_at`

func (rs *requestStore) Get(ctx context.Context, id rewards.RequestID) (*rewards.RedemptionRequest, error) {
	row := rs.q.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM redemption_requests WHERE id = ?`, string(id))
	r, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &rewards.NotFoundError{Kind: "redemption request", ID: string(id)}
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return r, nil
}

func (rs *requestStore) GetForUpdate(ctx context.Context, id rewards.RequestID) (*rewards.RedemptionRequest, error) {
	return rs.Get(ctx, id)
}

func (rs *requestStore) ListByUser(ctx context.Context, userID rewards.UserID) ([]*rewards.RedemptionRequest, error) {
	rows, err := rs.q.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM redemption_requests
		 WHERE user_id = ? ORDER BY requested_at DESC, id DESC`, string(userID))
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var reqs []*rewards.RedemptionRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

func (rs *requestStore) HasPendingForUserProduct(ctx context.Context, userID rewards.UserID, productID rewards.ProductID) (bool, error) {
	var n int
	err := rs.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM redemption_requests
		 WHERE user_id = ? AND product_id = ? AND status = 'pending'`,
		string(userID), string(productID)).Scan(&n)
	if err != nil {
		return false, mapErr(err)
	}
	return n > 0, nil
}

func (rs *requestStore) HasPendingForProduct(ctx context.Context, productID rewards.ProductID) (bool, error) {
	var n int
	err := rs.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM redemption_requests
		 WHERE product_id = ? AND status = 'pending'`, string(productID)).Scan(&n)
	if err != nil {
		return false, mapErr(err)
	}
	return n > 0, nil
}

func (rs *requestStore) Add(ctx context.Context, r *rewards.RedemptionRequest) error {
	_, err := rs.q.ExecContext(ctx,
		`INSERT INTO redemption_requests (`+requestColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(r.ID), string(r.UserID), string(r.ProductID), string(r.Status),
		formatTime(r.RequestedAt), nullableTime(r.ApprovedAt), nullableTime(r.DeliveredAt))
	return mapErr(err)
}

func (rs *requestStore) Update(ctx context.Context, r *rewards.RedemptionRequest) error {
	res, err := rs.q.ExecContext(ctx,
		`UPDATE redemption_requests
		 SET status = ?, approved_at = ?, delivered_at = ?
		 WHERE id = ?`,
		string(r.Status), nullableTime(r.ApprovedAt), nullableTime(r.DeliveredAt), string(r.ID))
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &rewards.NotFoundError{Kind: "redemption request", ID: string(r.ID)}
	}
	return nil
}

func scanRequest(r rowScanner) (*rewards.RedemptionRequest, error) {
	var (
		req                     rewards.RedemptionRequest
		requestedAt             string
		approvedAt, deliveredAt sql.NullString
	)
	if err := r.Scan(&req.ID, &req.UserID, &req.ProductID, &req.Status,
		&requestedAt, &approvedAt, &deliveredAt); err != nil {
		return nil, err
	}
	var err error
	if req.RequestedAt, err = parseTime(requestedAt); err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		t, err := parseTime(approvedAt.String)
		if err != nil {
			return nil, err
		}
		req.ApprovedAt = &t
	}
	if deliveredAt.Valid {
		t, err := parseTime(deliveredAt.String)
		if err != nil {
			return nil, err
		}
		req.DeliveredAt = &t
	}
	return &req, nil
}

// =============================================================================
// LEDGER
// =============================================================================

type ledgerStore struct{ q querier }

func (ls *ledgerStore) Add(ctx context.Context, e rewards.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	var eventID, requestID any
	if e.EventID != nil {
		eventID = string(*e.EventID)
	}
	if e.RequestID != nil {
		requestID = string(*e.RequestID)
	}
	_, err := ls.q.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, user_id, entry_type, points, ts, event_id, request_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(e.ID), string(e.UserID), string(e.Type), e.Points,
		formatTime(e.Timestamp), eventID, requestID)
	return mapErr(err)
}

func (ls *ledgerStore) ListByUser(ctx context.Context, userID rewards.UserID, offset, limit int) ([]rewards.LedgerEntry, error) {
	rows, err := ls.q.QueryContext(ctx,
		`SELECT id, user_id, entry_type, points, ts, event_id, request_id
		 FROM ledger_entries
		 WHERE user_id = ?
		 ORDER BY ts DESC, id DESC
		 LIMIT ? OFFSET ?`, string(userID), limit, offset)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var entries []rewards.LedgerEntry
	for rows.Next() {
		var (
			e                  rewards.LedgerEntry
			ts                 string
			eventID, requestID sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Points, &ts, &eventID, &requestID); err != nil {
			return nil, err
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		if eventID.Valid {
			v := rewards.EventID(eventID.String)
			e.EventID = &v
		}
		if requestID.Valid {
			v := rewards.RequestID(requestID.String)
			e.RequestID = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (ls *ledgerStore) CountByUser(ctx context.Context, userID rewards.UserID) (int64, error) {
	var n int64
	err := ls.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM ledger_entries WHERE user_id = ?`, string(userID)).Scan(&n)
	if err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

// =============================================================================
// EVENTS
// =============================================================================

type eventStore struct{ q querier }

const eventColumns = `id, name, occurs_at, active, created_at, updated_at`

func (es *eventStore) Get(ctx context.Context, id rewards.EventID) (*rewards.Event, error) {
	row := es.q.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, string(id))
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &rewards.NotFoundError{Kind: "event", ID: string(id)}
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (es *eventStore) List(ctx context.Context) ([]*rewards.Event, error) {
	rows, err := es.q.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var events []*rewards.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (es *eventStore) Add(ctx context.Context, e *rewards.Event) error {
	_, err := es.q.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		string(e.ID), e.Name, formatTime(e.OccursAt), boolToInt(e.Active),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	return mapErr(err)
}

func (es *eventStore) Update(ctx context.Context, e *rewards.Event) error {
	res, err := es.q.ExecContext(ctx,
		`UPDATE events SET name = ?, occurs_at = ?, active = ?, updated_at = ? WHERE id = ?`,
		e.Name, formatTime(e.OccursAt), boolToInt(e.Active), formatTime(e.UpdatedAt), string(e.ID))
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &rewards.NotFoundError{Kind: "event", ID: string(e.ID)}
	}
	return nil
}

func scanEvent(r rowScanner) (*rewards.Event, error) {
	var (
		e                              rewards.Event
		occursAt, createdAt, updatedAt string
		active                         int
	)
	if err := r.Scan(&e.ID, &e.Name, &occursAt, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.Active = active != 0
	var err error
	if e.OccursAt, err = parseTime(occursAt); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
