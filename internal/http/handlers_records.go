package http

import (
	"errors"
	"net/http"

	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
	"smartbudget/internal/storage"
)

// Shared handlers for the two plain record kinds. The income and expense
// routes differ only in the kind they bind.

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request, kind core.RecordKind) {
	ctx := r.Context()
	records, err := s.records.ListRecords(ctx, kind, userIDFrom(ctx))
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "List records failed",
			applog.FieldRecordKind, string(kind), applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	views := make([]recordView, 0, len(records))
	for _, rec := range records {
		views = append(views, buildRecordView(rec))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request, kind core.RecordKind) {
	ctx := r.Context()
	rec, err := parseRecordRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec.UserID = userIDFrom(ctx)

	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.records.CreateRecord(ctx, kind, rec)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Create record failed",
			applog.FieldRecordKind, string(kind), applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) updateRecord(w http.ResponseWriter, r *http.Request, kind core.RecordKind) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := parseRecordRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec.ID = id
	rec.UserID = userIDFrom(ctx)

	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.records.UpdateRecord(ctx, kind, rec); err != nil {
		s.respondMutationError(w, r, kind, err)
		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request, kind core.RecordKind) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.records.DeleteRecord(ctx, kind, id, userIDFrom(ctx)); err != nil {
		s.respondMutationError(w, r, kind, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondMutationError(w http.ResponseWriter, r *http.Request, kind core.RecordKind, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	ctx := r.Context()
	applog.FromContext(ctx).ErrorContext(ctx, "Record mutation failed",
		applog.FieldRecordKind, string(kind), applog.FieldError, err)
	writeError(w, http.StatusInternalServerError, "failed to save record")
}
