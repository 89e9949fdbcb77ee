package docstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"money_tracker/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_CreateProfile(t *testing.T) {
	store, mock := newPostgresStore(t)

	q := regexp.QuoteMeta("INSERT INTO profiles (uid,email,created_at,total_money) VALUES ($1,$2,now(),$3) ON CONFLICT (uid) DO UPDATE SET")
	mock.ExpectExec(q).
		WithArgs("uid-1", "a@x.com", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.CreateProfile(context.Background(), "uid-1", "a@x.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureProfile(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectExec(`INSERT INTO profiles .* ON CONFLICT \(uid\) DO NOTHING`).
		WithArgs("uid-1", "a@x.com", 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureProfile(context.Background(), "uid-1", "a@x.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAll(t *testing.T) {
	store, mock := newPostgresStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, all_money, email, created_at FROM tracker_users ORDER BY created_at")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "all_money", "email", "created_at"}).
			AddRow("11111111-1111-1111-1111-111111111111", "alice", `"42.5"`, "a@x.com", now))

	records, err := store.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Name)
	assert.Equal(t, domain.MoneyText("42.5"), records[0].AllMoney)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAllFailure(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectQuery("SELECT .* FROM tracker_users").WillReturnError(errors.New("db is down"))

	_, err := store.ListAll(context.Background())

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "listAll", se.Op)
}

func TestPostgresStore_Add(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tracker_users (id,name,all_money,email,created_at) VALUES ($1,$2,$3,$4,now())")).
		WithArgs(sqlmock.AnyArg(), "bob", `12`, "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.Add(context.Background(), domain.TrackerRecord{Name: "bob", AllMoney: domain.MoneyNumber("12")})

	require.NoError(t, err)
	assert.Len(t, id, 36)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	store, mock := newPostgresStore(t)
	id := "11111111-1111-1111-1111-111111111111"

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tracker_users WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteForeignIDSkipsQuery(t *testing.T) {
	store, mock := newPostgresStore(t)

	require.NoError(t, store.Delete(context.Background(), "not-a-uuid"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
