package handler

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/anirbansen/credit-insight/internal/service"
)

// Handler exposes the service over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// UploadReport ingests a raw bureau XML report for a subject.
func (h *Handler) UploadReport(w http.ResponseWriter, r *http.Request) {
	subjectID := mux.Vars(r)["id"]
	raw, err := io.ReadAll(r.Body)
	if err != nil || len(raw) == 0 {
		http.Error(w, "Report body is required", http.StatusBadRequest)
		return
	}

	report, err := h.svc.IngestReport(r.Context(), subjectID, raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"subject_id": subjectID,
		"bureau":     report.Bureau,
		"tradelines": len(report.Tradelines),
		"has_score":  report.Score != nil,
	})
}

// Analyze runs a fresh analysis for a subject and returns the result.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	subjectID := mux.Vars(r)["id"]
	result, err := h.svc.AnalyzeSubject(r.Context(), subjectID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetAnalysis returns the most recent stored analysis for a subject.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	subjectID := mux.Vars(r)["id"]
	result, err := h.svc.GetLatestAnalysis(r.Context(), subjectID)
	if err == sql.ErrNoRows {
		http.Error(w, "No analysis for subject", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
