package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dysobo/niuzi-assistant/internal/domain"
	"github.com/dysobo/niuzi-assistant/internal/service"
)

// RecordHandler handles the record lifecycle endpoints.
type RecordHandler struct {
	records *service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(records *service.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// HandleStart opens a new record for the user.
// POST /api/records/start
// Response: 201 record, 409 when a record is already open
func (h *RecordHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	record, err := h.records.Start(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrActiveRecord) {
			writeError(w, http.StatusConflict, "A record is already in progress.")
			return
		}
		slog.Error("start record", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, toRecordDTO(record))
}

// HandleEnd closes one of the user's open records.
// POST /api/records/{id}/end
func (h *RecordHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}

	record, err := h.records.End(r.Context(), user.ID, id)
	if err != nil {
		handleRecordError(w, "end record", err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordDTO(record))
}

// HandleCurrent returns the user's open record.
// GET /api/records/current
// Response: {"record": {...}} or {"record": null}
func (h *RecordHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	record, err := h.records.Current(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"record": nil})
			return
		}
		slog.Error("get current record", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"record": toRecordDTO(record)})
}

// HandleList returns the user's records, newest first.
// GET /api/records
func (h *RecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	records, err := h.records.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list records", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toRecordDTOs(records))
}

// HandleDelete removes one of the user's records.
// DELETE /api/records/{id}
// Response: {"message": "..."}
func (h *RecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}

	if err := h.records.Delete(r.Context(), user.ID, id); err != nil {
		handleRecordError(w, "delete record", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted."})
}

func parseRecordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid record ID.")
		return 0, false
	}
	return id, true
}

func handleRecordError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Record not found.")
		return
	}
	slog.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}
