package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/company-research/internal/formatting"
	"github.com/jonathan/company-research/internal/rendering"
	"github.com/jonathan/company-research/internal/research"
	"github.com/jonathan/company-research/internal/types"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// HealthResponse is the response for /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// handleIndex serves the landing page with the research form
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := rendering.Index(&buf); err != nil {
		log.Printf("Error rendering index: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.htmlResponse(w, http.StatusOK, buf.Bytes())
}

// handleResearch researches a company and returns the full result
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req types.ResearchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.researcher.Research(r.Context(), req, nil)
	if err != nil {
		s.researchError(w, req, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleResearchStream researches a company and streams progress via SSE
func (s *Server) handleResearchStream(w http.ResponseWriter, r *http.Request) {
	var req types.ResearchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Reject bad requests before switching to an event stream
	if err := checkRequest(&req); err != nil {
		s.errorResponse(w, HTTPStatus(err), ErrorMessage(err))
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.verbose {
		log.Printf("[SERVER] Starting streaming research for %s", req.CompanyName)
	}

	resp, err := s.researcher.Research(r.Context(), req, func(p research.Progress) {
		if err := sse.WriteEvent("progress", p); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})
	if err != nil {
		log.Printf("Streaming research for %s failed: %v", req.CompanyName, err)
		sse.WriteError(HTTPStatus(err), ErrorMessage(err))
		return
	}

	sse.WriteComplete(resp)
}

// handleReport researches a company and renders the HTML report
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	req := types.ResearchRequest{
		CompanyName: r.URL.Query().Get("company"),
		JobRole:     r.URL.Query().Get("role"),
	}

	resp, err := s.researcher.Research(r.Context(), req, nil)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Research for %s failed: %v", req.CompanyName, err)
		}
		http.Error(w, ErrorMessage(err), status)
		return
	}

	var buf bytes.Buffer
	if err := rendering.Report(&buf, resp); err != nil {
		log.Printf("Error rendering report: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.htmlResponse(w, http.StatusOK, buf.Bytes())
}

// handleFormat turns narrative text into blocks and their HTML rendering
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req types.FormatRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, ErrorMessage(err))
		return
	}

	blocks := formatting.Format(req.Text)
	html, err := rendering.HTML(blocks)
	if err != nil {
		log.Printf("Error rendering blocks: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.FormatResponse{Blocks: blocks, HTML: html})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) researchError(w http.ResponseWriter, req types.ResearchRequest, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Research for %s failed: %v", req.CompanyName, err)
	}
	s.errorResponse(w, status, ErrorMessage(err))
}

// checkRequest applies the same checks the research service does.
func checkRequest(req *types.ResearchRequest) error {
	req.Normalize()
	if req.CompanyName == "" {
		return &ErrValidation{Field: "company_name", Message: "Company name is required"}
	}
	return req.Validate()
}

// decodeJSON decodes a bounded JSON body and rejects trailing data.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
