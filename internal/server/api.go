package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/search"
)

type stemRequest struct {
	Words []string `json:"words"`
}

type stemResponse struct {
	Stems []models.StemPair `json:"stems"`
}

type searchResponse struct {
	Query   string          `json:"query"`
	Total   int             `json:"total"`
	Results []search.Result `json:"results"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
}

func stemAll(words []string) stemResponse {
	resp := stemResponse{Stems: make([]models.StemPair, 0, len(words))}
	for _, w := range words {
		resp.Stems = append(resp.Stems, models.StemPair{Word: w, Stem: search.StemCached(strings.ToLower(w))})
	}
	return resp
}

func (s *Server) handleStemQuery(w http.ResponseWriter, r *http.Request) {
	words := r.URL.Query()["word"]
	if len(words) == 0 {
		writeError(w, http.StatusBadRequest, "missing word parameter")
		return
	}
	writeJSON(w, http.StatusOK, stemAll(words))
}

func (s *Server) handleStemBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req stemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Words) == 0 {
		writeError(w, http.StatusBadRequest, "words must not be empty")
		return
	}
	writeJSON(w, http.StatusOK, stemAll(req.Words))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	index := s.Index()
	if index == nil {
		writeError(w, http.StatusServiceUnavailable, "index not loaded")
		return
	}

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	opts := s.opts
	if limit, ok, err := parseLimit(r.URL.Query().Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		opts.Limit = limit
	}

	results := search.PerformSearch(index, query, opts)
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Total: len(results), Results: results})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if index := s.Index(); index != nil {
		resp.Documents = index.TotalDocs
	}
	writeJSON(w, http.StatusOK, resp)
}
