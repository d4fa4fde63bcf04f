package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
)

// table resolves the {table} URL parameter, writing a 404 for unknown
// tables.
func (s *Server) table(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "table")
	if !hotel.IsTable(name) {
		writeError(w, http.StatusNotFound, "UNKNOWN_TABLE", "unknown table: "+name)
		return "", false
	}
	return name, true
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	rows, err := s.store.List(r.Context(), table, q.Get("hotel_id"), q.Get("search"))
	if err != nil {
		storeErrorToHTTP(w, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Get(r.Context(), table, chi.URLParam(r, "id"))
	if err != nil {
		storeErrorToHTTP(w, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}
	var fields crud.Patch
	if err := decodeJSON(r, &fields); err != nil || fields == nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be a JSON object")
		return
	}
	if _, set := fields["hotel_id"]; !set {
		if hotelID := r.URL.Query().Get("hotel_id"); hotelID != "" {
			fields["hotel_id"] = hotelID
		}
	}
	rec, err := s.store.Insert(r.Context(), table, fields)
	if err != nil {
		storeErrorToHTTP(w, s.logger, err)
		return
	}
	s.committed(table, api.OpCreate, rec)
	writeData(w, http.StatusCreated, rec)
}

func (s *Server) updateRecord(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}
	var fields crud.Patch
	if err := decodeJSON(r, &fields); err != nil || fields == nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be a JSON object")
		return
	}
	rec, err := s.store.Update(r.Context(), table, chi.URLParam(r, "id"), fields)
	if err != nil {
		storeErrorToHTTP(w, s.logger, err)
		return
	}
	s.committed(table, api.OpUpdate, rec)
	writeData(w, http.StatusOK, rec)
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), table, id)
	if err != nil {
		storeErrorToHTTP(w, s.logger, err)
		return
	}
	if err := s.store.Delete(r.Context(), table, id); err != nil {
		storeErrorToHTTP(w, s.logger, err)
		return
	}
	s.committed(table, api.OpDelete, rec)
	writeData(w, http.StatusOK, api.Deleted{ID: id})
}

func (s *Server) committed(table, op string, rec crud.Record) {
	s.metrics.observeMutation(table, op)
	s.hub.Publish(api.Change{
		Table:   table,
		Op:      op,
		ID:      rec.EntityID(),
		HotelID: crud.Stringify(rec["hotel_id"]),
	})
}
