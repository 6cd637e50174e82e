package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/semantic-retrieval/std/v1/datastore"
)

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "documents must not be empty")
		return
	}

	ids, err := s.service.Upsert(r.Context(), req.Documents)
	if err != nil {
		s.log.ErrorWithContext(r.Context(), "upsert failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal service error")
		return
	}
	writeJSON(w, http.StatusOK, UpsertResponse{IDs: ids})
}

// maxUploadBytes bounds the multipart body accepted on /upsert-file.
const maxUploadBytes = 16 << 20

func (s *Server) handleUpsertFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart body with a file part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}

	var meta datastore.DocumentMetadata
	if raw := r.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			writeError(w, http.StatusBadRequest, "invalid metadata JSON")
			return
		}
	}

	doc, err := documentFromFile(header.Filename, header.Header.Get("Content-Type"), data, meta)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ids, err := s.service.Upsert(r.Context(), []datastore.Document{doc})
	if err != nil {
		s.log.ErrorWithContext(r.Context(), "file upsert failed",
			zap.String("filename", header.Filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal service error")
		return
	}
	writeJSON(w, http.StatusOK, UpsertResponse{IDs: ids})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Queries) == 0 {
		writeError(w, http.StatusBadRequest, "queries must not be empty")
		return
	}

	results, err := s.service.Query(r.Context(), req.Queries)
	if err != nil {
		s.log.ErrorWithContext(r.Context(), "query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal service error")
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{Results: results})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ok, err := s.service.Delete(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNoSelector) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.ErrorWithContext(r.Context(), "delete failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal service error")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Success: ok})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
