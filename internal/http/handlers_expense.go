package http

import (
	"net/http"

	"smartbudget/internal/core"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	s.listRecords(w, r, core.KindExpense)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	s.createRecord(w, r, core.KindExpense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	s.updateRecord(w, r, core.KindExpense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, core.KindExpense)
}
