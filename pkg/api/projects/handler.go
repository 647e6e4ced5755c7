package projects

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/ingest"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/store"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// Handler serves project persistence endpoints. All of them require a
// configured database and answer 503 without one.
type Handler struct {
	Repo *store.ProjectRepo
}

func NewHandler(repo *store.ProjectRepo) *Handler {
	return &Handler{Repo: repo}
}

type SaveRequest struct {
	ID      string             `json:"id"`
	Project models.ProjectData `json:"project"`
}

type SaveResponse struct {
	ID string `json:"id"`
}

type LoadResponse struct {
	ID      string             `json:"id"`
	Project models.ProjectData `json:"project"`
}

type ListResponse struct {
	Projects []store.ProjectSummary `json:"projects"`
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if store.GetPool() == nil {
		http.Error(w, "Database not configured", http.StatusServiceUnavailable)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ingest.NormalizeProject(&req.Project)

	id, err := h.Repo.Save(r.Context(), req.ID, req.Project)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[PROJECTS] Saved %q as %s\n", req.Project.Name, id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SaveResponse{ID: id})
}

func (h *Handler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if store.GetPool() == nil {
		http.Error(w, "Database not configured", http.StatusServiceUnavailable)
		return
	}

	data, err := h.Repo.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoadResponse{ID: id, Project: data})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if store.GetPool() == nil {
		http.Error(w, "Database not configured", http.StatusServiceUnavailable)
		return
	}

	summaries, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Projects: summaries})
}
