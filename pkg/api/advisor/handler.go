package advisor

import (
	"encoding/json"
	"net/http"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/api/monitor"
	coreAdvisor "github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/advisor"
	coreAppraisal "github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/ingest"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// Handler serves model-written commentary on an appraisal. The advisor
// degrades to a template when no backend is configured, so this
// endpoint always answers.
type Handler struct {
	Advisor *coreAdvisor.Advisor
}

func NewHandler(a *coreAdvisor.Advisor) *Handler {
	return &Handler{Advisor: a}
}

type CommentaryRequest struct {
	Project          models.ProjectData `json:"project"`
	VariationPercent float64            `json:"variation_percent"`
}

type CommentaryResponse struct {
	Commentary string `json:"commentary"`
	// Generated is false when the static template served.
	Generated bool `json:"generated"`
}

func (h *Handler) HandleCommentary(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req CommentaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ingest.NormalizeProject(&req.Project)

	result := coreAppraisal.Appraise(req.Project, coreAppraisal.Options{VariationPercent: req.VariationPercent})
	text, generated := h.Advisor.Commentary(r.Context(), result)

	outcome := "fallback"
	if generated {
		outcome = "generated"
	}
	monitor.AdvisorRequests.WithLabelValues(outcome).Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CommentaryResponse{Commentary: text, Generated: generated})
}
