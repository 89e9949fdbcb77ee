package docstore

import (
	"context"      // Context for queries
	"database/sql" // Database handle

	"money_tracker/internal/domain" // Importing domain models

	"github.com/Masterminds/squirrel" // SQL builder
	"github.com/google/uuid"          // Record ids
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar) // $n placeholders for pgx

// PostgresStore keeps both collections in PostgreSQL. The db is opened with
// the pgx stdlib driver and migrated by db.MigratePostgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) insertProfile(uid, email string) squirrel.InsertBuilder {
	return psql.Insert(ProfilesCollection).
		Columns("uid", "email", "created_at", "total_money").
		Values(uid, email, squirrel.Expr("now()"), 0)
}

func (s *PostgresStore) CreateProfile(ctx context.Context, uid, email string) error {
	query, args, err := s.insertProfile(uid, email).
		Suffix("ON CONFLICT (uid) DO UPDATE SET email = EXCLUDED.email, created_at = EXCLUDED.created_at, total_money = EXCLUDED.total_money").
		ToSql()
	if err != nil {
		return storeErr("createProfile", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return storeErr("createProfile", err)
}

func (s *PostgresStore) EnsureProfile(ctx context.Context, uid, email string) error {
	query, args, err := s.insertProfile(uid, email).
		Suffix("ON CONFLICT (uid) DO NOTHING").
		ToSql()
	if err != nil {
		return storeErr("ensureProfile", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return storeErr("ensureProfile", err)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]domain.TrackerRecord, error) {
	query, args, err := psql.Select("id", "name", "all_money", "email", "created_at").
		From(TrackerCollection).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, storeErr("listAll", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...) // Execute the query
	if err != nil {
		return nil, storeErr("listAll", err)
	}
	defer rows.Close() // Ensure rows are closed after processing

	var records []domain.TrackerRecord
	for rows.Next() {
		var rec domain.TrackerRecord // Row being scanned
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.AllMoney, &rec.Email, &rec.CreatedAt); err != nil {
			return nil, storeErr("listAll", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("listAll", err)
	}

	return records, nil
}

func (s *PostgresStore) Add(ctx context.Context, record domain.TrackerRecord) (string, error) {
	id := uuid.NewString() // Ids are assigned here, never by the caller

	query, args, err := psql.Insert(TrackerCollection).
		Columns("id", "name", "all_money", "email", "created_at").
		Values(id, record.Name, record.AllMoney, record.Email, squirrel.Expr("now()")).
		ToSql()
	if err != nil {
		return "", storeErr("add", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", storeErr("add", err)
	}
	return id, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil // Not an id this store ever handed out
	}

	query, args, err := psql.Delete(TrackerCollection).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return storeErr("delete", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return storeErr("delete", err)
}
