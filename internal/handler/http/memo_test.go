package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/service"
	"github.com/avdeyev/memo-keeper/internal/store"
	"github.com/avdeyev/memo-keeper/internal/utils"
	"github.com/avdeyev/memo-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock MemoService
// ─────────────────────────────────────────────

type mockMemoService struct {
	createMemoFn func(ctx context.Context, userID int64, title, content string) (models.Memo, error)
	listMemosFn  func(ctx context.Context, userID int64, offset, limit uint64) ([]models.Memo, error)
	updateMemoFn func(ctx context.Context, update models.MemoUpdate) (models.Memo, error)
	deleteMemoFn func(ctx context.Context, userID, memoID int64) error
}

func (m *mockMemoService) CreateMemo(ctx context.Context, userID int64, title, content string) (models.Memo, error) {
	return m.createMemoFn(ctx, userID, title, content)
}

func (m *mockMemoService) ListMemos(ctx context.Context, userID int64, offset, limit uint64) ([]models.Memo, error) {
	return m.listMemosFn(ctx, userID, offset, limit)
}

func (m *mockMemoService) UpdateMemo(ctx context.Context, update models.MemoUpdate) (models.Memo, error) {
	return m.updateMemoFn(ctx, update)
}

func (m *mockMemoService) DeleteMemo(ctx context.Context, userID, memoID int64) error {
	return m.deleteMemoFn(ctx, userID, memoID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newHandlerWithMemos(t *testing.T, memos service.MemoService) *Handler {
	t.Helper()
	svcs := &service.Services{
		MemoService: memos,
	}
	return NewHandler(svcs, logger.Nop())
}

// authedRequest builds a request that already passed the access guard:
// the resolved user id sits in the context, and chi URL params are wired
// when an id is supplied.
func authedRequest(method, target, body string, userID int64, memoID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	if memoID != "" {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", memoID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}

// ─────────────────────────────────────────────
// createMemo
// ─────────────────────────────────────────────

func TestCreateMemo_Success(t *testing.T) {
	memos := &mockMemoService{
		createMemoFn: func(_ context.Context, userID int64, title, content string) (models.Memo, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, "groceries", title)
			return models.Memo{MemoID: 7, UserID: userID, Title: title, Content: content}, nil
		},
	}

	h := newHandlerWithMemos(t, memos)
	req := authedRequest(http.MethodPost, "/api/memos", `{"title":"groceries","content":"milk"}`, 42, "")
	rec := httptest.NewRecorder()

	h.createMemo(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Memo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(7), created.MemoID)
}

func TestCreateMemo_ValidationError(t *testing.T) {
	memos := &mockMemoService{
		createMemoFn: func(_ context.Context, _ int64, _, _ string) (models.Memo, error) {
			return models.Memo{}, service.ErrValidationTitleTooLong
		},
	}

	h := newHandlerWithMemos(t, memos)
	req := authedRequest(http.MethodPost, "/api/memos", `{"title":"way too long"}`, 42, "")
	rec := httptest.NewRecorder()

	h.createMemo(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMemo_InvalidJSON(t *testing.T) {
	h := newHandlerWithMemos(t, &mockMemoService{})
	req := authedRequest(http.MethodPost, "/api/memos", "{broken", 42, "")
	rec := httptest.NewRecorder()

	h.createMemo(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMemo_NoUserInContext(t *testing.T) {
	h := newHandlerWithMemos(t, &mockMemoService{})
	req := httptest.NewRequest(http.MethodPost, "/api/memos", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()

	h.createMemo(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// listMemos
// ─────────────────────────────────────────────

func TestListMemos_PassesPaginationParams(t *testing.T) {
	memos := &mockMemoService{
		listMemosFn: func(_ context.Context, userID int64, offset, limit uint64) ([]models.Memo, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, uint64(20), offset)
			assert.Equal(t, uint64(5), limit)
			return []models.Memo{{MemoID: 21, UserID: 42}}, nil
		},
	}

	h := newHandlerWithMemos(t, memos)
	req := authedRequest(http.MethodGet, "/api/memos?offset=20&limit=5", "", 42, "")
	rec := httptest.NewRecorder()

	h.listMemos(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Memo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, int64(21), listed[0].MemoID)
}

func TestListMemos_EmptyPageSerializesAsArray(t *testing.T) {
	memos := &mockMemoService{
		listMemosFn: func(_ context.Context, _ int64, _, _ uint64) ([]models.Memo, error) {
			return nil, nil
		},
	}

	h := newHandlerWithMemos(t, memos)
	req := authedRequest(http.MethodGet, "/api/memos", "", 42, "")
	rec := httptest.NewRecorder()

	h.listMemos(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

// TestListMemos_ExplicitZeroLimit verifies that limit=0 is honored as a
// zero-sized page and never falls back to the default page size the way an
// absent limit does.
func TestListMemos_ExplicitZeroLimit(t *testing.T) {
	memos := &mockMemoService{
		listMemosFn: func(_ context.Context, _ int64, _, _ uint64) ([]models.Memo, error) {
			t.Fatal("service must not be called for a zero-sized page")
			return nil, nil
		},
	}

	h := newHandlerWithMemos(t, memos)
	req := authedRequest(http.MethodGet, "/api/memos?limit=0", "", 42, "")
	rec := httptest.NewRecorder()

	h.listMemos(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestListMemos_RejectsMalformedParams(t *testing.T) {
	h := newHandlerWithMemos(t, &mockMemoService{})

	for _, target := range []string{
		"/api/memos?offset=abc",
		"/api/memos?limit=-1",
	} {
		req := authedRequest(http.MethodGet, target, "", 42, "")
		rec := httptest.NewRecorder()

		h.listMemos(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

// ─────────────────────────────────────────────
// updateMemo
// ─────────────────────────────────────────────

func TestUpdateMemo_OwnerAndIDComeFromGuardAndURL(t *testing.T) {
	memos := &mockMemoService{
		updateMemoFn: func(_ context.Context, update models.MemoUpdate) (models.Memo, error) {
			assert.Equal(t, int64(7), update.MemoID)
			assert.Equal(t, int64(42), update.UserID)
			require.NotNil(t, update.Title)
			assert.Equal(t, "renamed", *update.Title)
			assert.Nil(t, update.Content)
			return models.Memo{MemoID: 7, UserID: 42, Title: "renamed"}, nil
		},
	}

	h := newHandlerWithMemos(t, memos)
	// body smuggles foreign ids: they must be overwritten
	req := authedRequest(http.MethodPut, "/api/memos/7",
		`{"memo_id":999,"user_id":1,"title":"renamed"}`, 42, "7")
	rec := httptest.NewRecorder()

	h.updateMemo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Memo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "renamed", updated.Title)
}

func TestUpdateMemo_NotFound(t *testing.T) {
	memos := &mockMemoService{
		updateMemoFn: func(_ context.Context, _ models.MemoUpdate) (models.Memo, error) {
			return models.Memo{}, store.ErrMemoNotFound
		},
	}

	h := newHandlerWithMemos(t, memos)
	req := authedRequest(http.MethodPut, "/api/memos/777", `{"title":"x"}`, 42, "777")
	rec := httptest.NewRecorder()

	h.updateMemo(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateMemo_InvalidID(t *testing.T) {
	h := newHandlerWithMemos(t, &mockMemoService{})
	req := authedRequest(http.MethodPut, "/api/memos/abc", `{"title":"x"}`, 42, "abc")
	rec := httptest.NewRecorder()

	h.updateMemo(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// deleteMemo
// ─────────────────────────────────────────────

func TestDeleteMemo_Success(t *testing.T) {
	var gotUserID, gotMemoID int64
	memos := &mockMemoService{
		deleteMemoFn: func(_ context.Context, userID, memoID int64) error {
			gotUserID, gotMemoID = userID, memoID
			return nil
		},
	}

	h := newHandlerWithMemos(t, memos)
	req := authedRequest(http.MethodDelete, "/api/memos/7", "", 42, "7")
	rec := httptest.NewRecorder()

	h.deleteMemo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, int64(7), gotMemoID)
}

func TestDeleteMemo_NotFound(t *testing.T) {
	memos := &mockMemoService{
		deleteMemoFn: func(_ context.Context, _, _ int64) error {
			return store.ErrMemoNotFound
		},
	}

	h := newHandlerWithMemos(t, memos)
	req := authedRequest(http.MethodDelete, "/api/memos/777", "", 42, "777")
	rec := httptest.NewRecorder()

	h.deleteMemo(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
