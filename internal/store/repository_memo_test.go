package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/models"
	"github.com/jackc/pgerrcode"
)

func newTestMemoRepo(t *testing.T) (*memoRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &memoRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateMemo_Success(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(memoColumns).
		AddRow(7, 42, "groceries", "milk, eggs", now, now)

	mock.ExpectQuery("INSERT INTO memos").
		WithArgs(int64(42), "groceries", "milk, eggs").
		WillReturnRows(rows)

	created, err := repo.CreateMemo(ctx, models.Memo{UserID: 42, Title: "groceries", Content: "milk, eggs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.MemoID != 7 {
		t.Errorf("expected MemoID=7, got %d", created.MemoID)
	}
	if created.UserID != 42 {
		t.Errorf("expected UserID=42, got %d", created.UserID)
	}
}

func TestCreateMemo_OwnerVanished(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO memos").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateMemo(ctx, models.Memo{UserID: 42, Title: "orphan"})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestListMemos_Success(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(memoColumns).
		AddRow(1, 42, "first", "a", now, now).
		AddRow(2, 42, "second", "b", now, now)

	// squirrel renders LIMIT/OFFSET inline, so user_id is the only argument
	mock.ExpectQuery("SELECT memo_id, user_id, title, content, created_at, updated_at FROM memos").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	listed, err := repo.ListMemos(ctx, 42, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 memos, got %d", len(listed))
	}
	if listed[0].MemoID != 1 || listed[1].MemoID != 2 {
		t.Errorf("expected creation order, got %d then %d", listed[0].MemoID, listed[1].MemoID)
	}
}

func TestListMemos_EmptyWindow(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT memo_id").
		WillReturnRows(sqlmock.NewRows(memoColumns))

	listed, err := repo.ListMemos(ctx, 42, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected empty result, got %d memos", len(listed))
	}
}

func TestListMemos_QueryError(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT memo_id").
		WillReturnError(errors.New("db network error"))

	_, err := repo.ListMemos(ctx, 42, 0, 10)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestUpdateMemo_Success(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	title := "renamed"

	rows := sqlmock.
		NewRows(memoColumns).
		AddRow(7, 42, title, "unchanged content", now, now)

	mock.ExpectQuery("UPDATE memos").
		WithArgs(title, int64(7), int64(42)).
		WillReturnRows(rows)

	updated, err := repo.UpdateMemo(ctx, models.MemoUpdate{MemoID: 7, UserID: 42, Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != title {
		t.Errorf("expected title %q, got %q", title, updated.Title)
	}
	if updated.Content != "unchanged content" {
		t.Errorf("omitted field must keep its stored value, got %q", updated.Content)
	}
}

func TestUpdateMemo_NotFoundOrForeignOwner(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()
	title := "renamed"

	mock.ExpectQuery("UPDATE memos").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateMemo(ctx, models.MemoUpdate{MemoID: 777, UserID: 42, Title: &title})
	if !errors.Is(err, ErrMemoNotFound) {
		t.Fatalf("expected ErrMemoNotFound, got %v", err)
	}
}

func TestDeleteMemo_Success(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM memos").
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteMemo(ctx, 42, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteMemo_NotFoundOrForeignOwner(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()

	// zero affected rows: the memo is absent or belongs to someone else,
	// and the two cases must be indistinguishable
	mock.ExpectExec("DELETE FROM memos").
		WithArgs(int64(42), int64(777)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteMemo(ctx, 42, 777)
	if !errors.Is(err, ErrMemoNotFound) {
		t.Fatalf("expected ErrMemoNotFound, got %v", err)
	}
}

func TestDeleteMemo_ExecError(t *testing.T) {
	repo, mock, db := newTestMemoRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM memos").
		WillReturnError(errors.New("db network error"))

	err := repo.DeleteMemo(ctx, 42, 7)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}
