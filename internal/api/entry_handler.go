package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/api/shared"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/platform/logger"
	"github.com/phrazzld/finances-api/internal/service"
	"github.com/phrazzld/finances-api/internal/store"
)

const entryHandlerComponent = "entry_handler"

// EntryHandler serves the /entries routes.
type EntryHandler struct {
	entries service.EntryService
	users   service.UserService
	logger  *slog.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(
	entries service.EntryService,
	users service.UserService,
	logger *slog.Logger,
) *EntryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EntryHandler")
	}

	return &EntryHandler{
		entries: entries,
		users:   users,
		logger:  logger.With(slog.String("component", entryHandlerComponent)),
	}
}

// CreateEntry handles POST /entries.
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.ForComponent(r.Context(), h.logger, entryHandlerComponent)

	var req EntryRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entry, ok := h.entryFromRequest(w, r, &req)
	if !ok {
		return
	}

	created, err := h.entries.Create(r.Context(), entry)
	if err != nil {
		HandleAPIError(w, r, err, "failed to create entry")
		return
	}

	log.Debug("entry created",
		slog.String("entry_id", created.ID.String()),
		slog.String("user_id", created.UserID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, entryToResponse(created))
}

// GetEntry handles GET /entries/{id}.
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entry, found, err := h.entries.FindByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "failed to get entry")
		return
	}
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, MsgEntryNotFound)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(entry))
}

// UpdateEntry handles PUT /entries/{id}. A missing entry is reported as
// 400, not 404.
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.ForComponent(r.Context(), h.logger, entryHandlerComponent)

	existing, ok := h.loadEntry(w, r)
	if !ok {
		return
	}

	var req EntryRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entry, ok := h.entryFromRequest(w, r, &req)
	if !ok {
		return
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	if entry.Status == "" {
		entry.Status = existing.Status
	}

	updated, err := h.entries.Update(r.Context(), entry)
	if err != nil {
		handleEntryWriteError(w, r, err, "failed to update entry")
		return
	}

	log.Debug("entry updated", slog.String("entry_id", updated.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(updated))
}

// DeleteEntry handles DELETE /entries/{id}.
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.ForComponent(r.Context(), h.logger, entryHandlerComponent)

	existing, ok := h.loadEntry(w, r)
	if !ok {
		return
	}

	if err := h.entries.Delete(r.Context(), existing); err != nil {
		handleEntryWriteError(w, r, err, "failed to delete entry")
		return
	}

	log.Debug("entry deleted", slog.String("entry_id", existing.ID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// SearchEntries handles GET /entries. The owning user is mandatory; the
// description, month and year criteria are optional. Portuguese parameter
// names are accepted alongside the English ones.
func (h *EntryHandler) SearchEntries(w http.ResponseWriter, r *http.Request) {
	log := logger.ForComponent(r.Context(), h.logger, entryHandlerComponent)

	userID, err := queryUUID(r, "user", "usuario", "user")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if userID == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgSearchUserRequired)
		return
	}

	if _, found, err := h.users.FindByID(r.Context(), *userID); err != nil {
		HandleAPIError(w, r, err, "failed to search entries")
		return
	} else if !found {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgSearchUserNotFound)
		return
	}

	filter := store.EntryFilter{UserID: userID}
	if desc, ok := queryValue(r, "descricao", "description"); ok {
		filter.Description = &desc
	}
	if filter.Month, err = queryInt(r, "month", "mes", "month"); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if filter.Year, err = queryInt(r, "year", "ano", "year"); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.entries.Search(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "failed to search entries")
		return
	}

	log.Debug("entries searched",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(entries)))
	shared.RespondWithJSON(w, r, http.StatusOK, entriesToResponse(entries))
}

// ChangeStatus handles PUT /entries/{id}/status.
func (h *EntryHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.ForComponent(r.Context(), h.logger, entryHandlerComponent)

	existing, ok := h.loadEntry(w, r)
	if !ok {
		return
	}

	var req StatusRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status, err := domain.ParseEntryStatus(req.Status)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	updated, err := h.entries.ChangeStatus(r.Context(), existing, status)
	if err != nil {
		handleEntryWriteError(w, r, err, "failed to change entry status")
		return
	}

	log.Debug("entry status changed",
		slog.String("entry_id", updated.ID.String()),
		slog.String("status", string(updated.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(updated))
}

// loadEntry resolves the {id} path parameter for the write routes. It
// writes the error response itself and reports whether the caller may go on.
func (h *EntryHandler) loadEntry(w http.ResponseWriter, r *http.Request) (*domain.FinancialEntry, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	entry, found, err := h.entries.FindByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "failed to get entry")
		return nil, false
	}
	if !found {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgEntryNotFound)
		return nil, false
	}

	return entry, true
}

// handleEntryWriteError answers a write on an entry the store no longer
// holds the same way loadEntry answers an unknown id.
func handleEntryWriteError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	if errors.Is(err, store.ErrEntryNotFound) {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgEntryNotFound)
		return
	}
	HandleAPIError(w, r, err, defaultMsg)
}

// entryFromRequest converts req into an unsaved entry. The referenced user
// must exist; type and status, when given, must name known variants.
func (h *EntryHandler) entryFromRequest(
	w http.ResponseWriter,
	r *http.Request,
	req *EntryRequest,
) (*domain.FinancialEntry, bool) {
	entry := &domain.FinancialEntry{
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
		Value:       req.Value,
		UserID:      req.UserID,
	}

	if req.UserID != uuid.Nil {
		_, found, err := h.users.FindByID(r.Context(), req.UserID)
		if err != nil {
			HandleAPIError(w, r, err, "failed to look up user")
			return nil, false
		}
		if !found {
			shared.RespondWithError(w, r, http.StatusBadRequest, MsgUserNotFoundForID)
			return nil, false
		}
	}

	if req.Type != "" {
		t, err := domain.ParseEntryType(req.Type)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return nil, false
		}
		entry.Type = t
	}

	if req.Status != "" {
		s, err := domain.ParseEntryStatus(req.Status)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return nil, false
		}
		entry.Status = s
	}

	return entry, true
}
