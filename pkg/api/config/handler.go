package config

import (
	"encoding/json"
	"fmt"
	"net/http"

	coreAdvisor "github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/advisor"
	appConfig "github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/config"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/store"
)

type Response struct {
	DefaultVariationPercent float64 `json:"default_variation_percent"`
	AdvisorEnabled          bool    `json:"advisor_enabled"`
	AdvisorModel            string  `json:"advisor_model"`
	DatabaseConfigured      bool    `json:"database_configured"`
}

type AdvisorSwitchRequest struct {
	Model string `json:"model"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Cfg     appConfig.Config
	Advisor *coreAdvisor.Advisor
}

// NewHandler creates a new config handler
func NewHandler(cfg appConfig.Config, advisor *coreAdvisor.Advisor) *Handler {
	return &Handler{
		Cfg:     cfg,
		Advisor: advisor,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	resp := Response{
		DefaultVariationPercent: h.Cfg.Appraisal.DefaultVariationPercent,
		AdvisorEnabled:          h.Advisor.Enabled(),
		AdvisorModel:            h.Advisor.Model(),
		DatabaseConfigured:      store.GetPool() != nil,
	}
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) HandleAdvisorSwitch(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req AdvisorSwitchRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Model == "" {
		http.Error(w, "Missing model", http.StatusBadRequest)
		return
	}

	h.Advisor.SetModel(req.Model)

	fmt.Fprintf(w, "Success: Advisor model set to %s", req.Model)
}
