package http

import (
	"net/http"

	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
)

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	investments, err := s.records.ListInvestments(ctx, userIDFrom(ctx))
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "List investments failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load investments")
		return
	}

	views := make([]investmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, buildInvestmentView(inv))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inv, err := parseInvestmentRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	inv.UserID = userIDFrom(ctx)

	if err := inv.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.records.CreateInvestment(ctx, inv)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Create investment failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to save investment")
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := parseInvestmentRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	inv.ID = id
	inv.UserID = userIDFrom(ctx)

	if err := inv.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.records.UpdateInvestment(ctx, inv); err != nil {
		s.respondMutationError(w, r, core.KindInvestment, err)
		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.records.DeleteInvestment(ctx, id, userIDFrom(ctx)); err != nil {
		s.respondMutationError(w, r, core.KindInvestment, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
