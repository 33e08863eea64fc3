package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/utils"
	"github.com/avdeyev/memo-keeper/models"
	"github.com/go-chi/chi/v5"
)

type memoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) createMemo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var memoFromBody memoRequest
	if err := json.NewDecoder(r.Body).Decode(&memoFromBody); err != nil {
		log.Err(err).Str("func", "*Handler.createMemo").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdMemo, err := h.services.MemoService.CreateMemo(r.Context(), userID, memoFromBody.Title, memoFromBody.Content)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createMemo").Msg("error creating memo")
		http.Error(w, "error creating memo", statusFromError(err))
		return
	}

	utils.WriteJSON(w, createdMemo, http.StatusCreated)
}

func (h *Handler) listMemos(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	offset, err := paginationParam(r, "offset")
	if err != nil {
		log.Err(err).Str("func", "*Handler.listMemos").Msg("invalid offset param")
		http.Error(w, "invalid offset param", http.StatusBadRequest)
		return
	}
	limit, err := paginationParam(r, "limit")
	if err != nil {
		log.Err(err).Str("func", "*Handler.listMemos").Msg("invalid limit param")
		http.Error(w, "invalid limit param", http.StatusBadRequest)
		return
	}

	// an explicit limit=0 asks for a zero-sized page; only an absent limit
	// falls back to the default page size
	if limit == 0 && r.URL.Query().Has("limit") {
		utils.WriteJSON(w, []models.Memo{}, http.StatusOK)
		return
	}

	memos, err := h.services.MemoService.ListMemos(r.Context(), userID, offset, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listMemos").Msg("error listing memos")
		http.Error(w, "error listing memos", statusFromError(err))
		return
	}

	// an empty page serializes as [], not null
	if memos == nil {
		memos = []models.Memo{}
	}

	utils.WriteJSON(w, memos, http.StatusOK)
}

func (h *Handler) updateMemo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	memoID, err := memoIDParam(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateMemo").Msg("invalid memo id")
		http.Error(w, "invalid memo id", http.StatusBadRequest)
		return
	}

	var update models.MemoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateMemo").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	// the owner and target come from the guard and the URL, never the body
	update.MemoID = memoID
	update.UserID = userID

	updatedMemo, err := h.services.MemoService.UpdateMemo(r.Context(), update)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateMemo").Msg("error updating memo")
		http.Error(w, "error updating memo", statusFromError(err))
		return
	}

	utils.WriteJSON(w, updatedMemo, http.StatusOK)
}

func (h *Handler) deleteMemo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	memoID, err := memoIDParam(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteMemo").Msg("invalid memo id")
		http.Error(w, "invalid memo id", http.StatusBadRequest)
		return
	}

	if err := h.services.MemoService.DeleteMemo(r.Context(), userID, memoID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteMemo").Msg("error deleting memo")
		http.Error(w, "error deleting memo", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// memoIDParam parses the {id} URL segment into a positive memo identifier.
func memoIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// paginationParam reads an optional non-negative query parameter; an absent
// parameter is zero.
func paginationParam(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}
