package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/store"
	"github.com/avdeyev/memo-keeper/models"
)

const (
	// maxTitleLength is the title length limit in Unicode code points.
	maxTitleLength = 100
	// maxContentLength is the content length limit in Unicode code points.
	maxContentLength = 1000

	// defaultListLimit is the page size used when a caller asks for zero.
	defaultListLimit = 10
)

// memoService is the concrete implementation of MemoService. Every operation
// carries the owner's user id down to the repository so a memo is only ever
// visible to the account that created it.
type memoService struct {
	memoRepository store.MemoRepository
	logger         *logger.Logger
}

// NewMemoService constructs a MemoService on top of the given MemoRepository.
func NewMemoService(memoRepository store.MemoRepository, logger *logger.Logger) MemoService {
	return &memoService{
		memoRepository: memoRepository,
		logger:         logger,
	}
}

// CreateMemo validates the payload and stores a new memo owned by userID.
//
// Length limits are counted in runes, not bytes, so multi-byte text gets the
// same budget as ASCII. Returns ErrValidationTitleTooLong or
// ErrValidationContentTooLong on violation.
func (m *memoService) CreateMemo(ctx context.Context, userID int64, title, content string) (models.Memo, error) {
	log := logger.FromContext(ctx)

	if err := validateMemoText(title, content); err != nil {
		log.Debug().Int64("user_id", userID).Err(err).Msg("memo validation failed")
		return models.Memo{}, err
	}

	createdMemo, err := m.memoRepository.CreateMemo(ctx, models.Memo{
		UserID:  userID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("memo creation ended with error")
		return models.Memo{}, fmt.Errorf("memo creation ended with error: %w", err)
	}

	return createdMemo, nil
}

// ListMemos returns a stable page of the owner's memos ordered by id.
// A zero limit falls back to defaultListLimit. An empty page is a valid
// result, not an error.
func (m *memoService) ListMemos(ctx context.Context, userID int64, offset, limit uint64) ([]models.Memo, error) {
	log := logger.FromContext(ctx)

	if limit == 0 {
		limit = defaultListLimit
	}

	memos, err := m.memoRepository.ListMemos(ctx, userID, offset, limit)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("memo listing ended with error")
		return nil, fmt.Errorf("memo listing ended with error: %w", err)
	}

	return memos, nil
}

// UpdateMemo applies a partial update to a memo the caller owns. Fields left
// nil in the update are preserved. Storage sentinels (store.ErrMemoNotFound)
// pass through wrapped; a memo belonging to another user looks exactly like
// one that does not exist.
func (m *memoService) UpdateMemo(ctx context.Context, update models.MemoUpdate) (models.Memo, error) {
	log := logger.FromContext(ctx)

	var title, content string
	if update.Title != nil {
		title = *update.Title
	}
	if update.Content != nil {
		content = *update.Content
	}
	if err := validateMemoText(title, content); err != nil {
		log.Debug().Int64("user_id", update.UserID).Err(err).Msg("memo validation failed")
		return models.Memo{}, err
	}

	updatedMemo, err := m.memoRepository.UpdateMemo(ctx, update)
	if err != nil {
		log.Err(err).
			Int64("user_id", update.UserID).
			Int64("memo_id", update.MemoID).
			Msg("memo update ended with error")
		return models.Memo{}, fmt.Errorf("memo update ended with error: %w", err)
	}

	return updatedMemo, nil
}

// DeleteMemo removes a memo the caller owns. Storage sentinels
// (store.ErrMemoNotFound) pass through wrapped.
func (m *memoService) DeleteMemo(ctx context.Context, userID, memoID int64) error {
	log := logger.FromContext(ctx)

	if err := m.memoRepository.DeleteMemo(ctx, userID, memoID); err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Int64("memo_id", memoID).
			Msg("memo deletion ended with error")
		return fmt.Errorf("memo deletion ended with error: %w", err)
	}

	return nil
}

func validateMemoText(title, content string) error {
	if utf8.RuneCountInString(title) > maxTitleLength {
		return ErrValidationTitleTooLong
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return ErrValidationContentTooLong
	}

	return nil
}
