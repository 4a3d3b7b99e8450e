package http

import (
	"net/http"

	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
)

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subs, err := s.records.ListSubscriptions(ctx, userIDFrom(ctx))
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "List subscriptions failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load subscriptions")
		return
	}

	views := make([]subscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, buildSubscriptionView(sub))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, err := parseSubscriptionRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sub.UserID = userIDFrom(ctx)

	if err := sub.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.records.CreateSubscription(ctx, sub)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Create subscription failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to save subscription")
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := parseSubscriptionRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sub.ID = id
	sub.UserID = userIDFrom(ctx)

	if err := sub.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.records.UpdateSubscription(ctx, sub); err != nil {
		s.respondMutationError(w, r, core.KindSubscription, err)
		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.records.DeleteSubscription(ctx, id, userIDFrom(ctx)); err != nil {
		s.respondMutationError(w, r, core.KindSubscription, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
