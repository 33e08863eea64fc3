package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/models"
	"github.com/jackc/pgerrcode"
)

// memoRepository is the PostgreSQL-backed implementation of [MemoRepository].
// It executes all memo CRUD operations against the "memos" table using the
// embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, memo_id).
type memoRepository struct {
	*DB
	logger *logger.Logger
}

// NewMemoRepository constructs a [MemoRepository] backed by the provided
// database connection and logger.
func NewMemoRepository(db *DB, logger *logger.Logger) MemoRepository {
	logger.Debug().Msg("creating memo repository")
	return &memoRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateMemo inserts a new memo row owned by memo.UserID and returns the
// stored record with server-assigned fields (MemoID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) on user_id →
//     [ErrNoUserWasFound]: the owning account vanished between the guard
//     check and the insert.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (m *memoRepository) CreateMemo(ctx context.Context, memo models.Memo) (models.Memo, error) {
	log := logger.FromContext(ctx)

	row := m.DB.QueryRowContext(ctx, createMemo, memo.UserID, memo.Title, memo.Content)

	if err := row.Scan(&memo.MemoID, &memo.UserID, &memo.Title, &memo.Content, &memo.CreatedAt, &memo.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "*memoRepository.CreateMemo").
			Int64("user_id", memo.UserID).
			Stringer("retryability", m.errorClassificator.Classify(err)).
			Msg("failed to insert memo")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Memo{}, ErrNoUserWasFound
		default:
			return models.Memo{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return memo, nil
}

// ListMemos retrieves the owner's memos in creation order, paginated with
// offset/limit. The query is always filtered by userID; no path exists to
// list another user's rows.
//
// Returns an empty slice when the owner has no memos in the requested window.
func (m *memoRepository) ListMemos(ctx context.Context, userID int64, offset, limit uint64) ([]models.Memo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListMemosQuery(userID, offset, limit)
	if err != nil {
		log.Err(err).
			Str("func", "*memoRepository.ListMemos").
			Int64("user_id", userID).
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*memoRepository.ListMemos").
			Int64("user_id", userID).
			Stringer("retryability", m.errorClassificator.Classify(err)).
			Msg("failed to execute query for listing memos")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	memos := make([]models.Memo, 0, limit)

	for rows.Next() {
		var memo models.Memo

		scanErr := rows.Scan(
			&memo.MemoID,
			&memo.UserID,
			&memo.Title,
			&memo.Content,
			&memo.CreatedAt,
			&memo.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*memoRepository.ListMemos").
				Int64("user_id", userID).
				Msg("failed to scan memo row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		memos = append(memos, memo)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*memoRepository.ListMemos").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return memos, nil
}

// UpdateMemo applies a partial update built by [buildUpdateMemoQuery] and
// returns the resulting row.
//
// The single UPDATE ... RETURNING statement both serializes concurrent edits
// of the same memo at the row level and detects the not-found case: when the
// memo is absent or owned by someone else (including a concurrent delete
// winning the race), the statement matches no row and [ErrMemoNotFound] is
// returned.
func (m *memoRepository) UpdateMemo(ctx context.Context, update models.MemoUpdate) (models.Memo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateMemoQuery(update)
	if err != nil {
		log.Err(err).
			Str("func", "*memoRepository.UpdateMemo").
			Int64("user_id", update.UserID).
			Int64("memo_id", update.MemoID).
			Msg("failed to build update query")
		return models.Memo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var memo models.Memo
	row := m.DB.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&memo.MemoID, &memo.UserID, &memo.Title, &memo.Content, &memo.CreatedAt, &memo.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Memo{}, ErrMemoNotFound
		}

		log.Err(err).
			Str("func", "*memoRepository.UpdateMemo").
			Int64("user_id", update.UserID).
			Int64("memo_id", update.MemoID).
			Stringer("retryability", m.errorClassificator.Classify(err)).
			Msg("failed to execute update statement")
		return models.Memo{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return memo, nil
}

// DeleteMemo removes the memo identified by memoID under userID.
//
// A DELETE affecting zero rows means the memo does not exist under this
// owner — whether it never existed, was already deleted, or belongs to a
// different user — and yields [ErrMemoNotFound].
func (m *memoRepository) DeleteMemo(ctx context.Context, userID, memoID int64) error {
	log := logger.FromContext(ctx)

	result, err := m.DB.ExecContext(ctx, deleteMemo, userID, memoID)
	if err != nil {
		log.Err(err).
			Str("func", "*memoRepository.DeleteMemo").
			Int64("user_id", userID).
			Int64("memo_id", memoID).
			Stringer("retryability", m.errorClassificator.Classify(err)).
			Msg("failed to execute delete statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "*memoRepository.DeleteMemo").
			Int64("user_id", userID).
			Int64("memo_id", memoID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrMemoNotFound
	}

	return nil
}
