package http

import (
	"net/http"

	"smartbudget/internal/core"
)

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	s.listRecords(w, r, core.KindIncome)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	s.createRecord(w, r, core.KindIncome)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	s.updateRecord(w, r, core.KindIncome)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, core.KindIncome)
}
