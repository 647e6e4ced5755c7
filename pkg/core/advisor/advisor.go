package advisor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/appraisal"
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/core/utils"
)

const commentarySystemPrompt = `You are an investment analyst reviewing a capital budgeting study.
Write a short management commentary in Markdown: two or three paragraphs
covering the verdict, the main value drivers and the biggest risk lever.
Do not repeat the full numbers table, reference only the figures that
matter for the decision.`

// Advisor writes management commentary for an appraisal. Without an API
// key it stays disabled and serves a deterministic template, so the
// analysis flow never depends on model availability.
type Advisor struct {
	mu       sync.RWMutex
	provider Provider
	enabled  bool
}

// New wires the Gemini backend when GEMINI_API_KEY is present and falls
// back to template commentary otherwise.
func New() *Advisor {
	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Println("[ADVISOR] GEMINI_API_KEY not set, commentary uses fallback template")
		return &Advisor{}
	}
	return &Advisor{provider: &GeminiProvider{}, enabled: true}
}

// NewWithProvider builds an advisor on a specific backend. A nil
// provider disables generation.
func NewWithProvider(p Provider) *Advisor {
	return &Advisor{provider: p, enabled: p != nil}
}

// Enabled reports whether a model backend is configured.
func (a *Advisor) Enabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Model reports the Gemini model in use, or "" when no Gemini backend
// is wired.
func (a *Advisor) Model() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if gp, ok := a.provider.(*GeminiProvider); ok {
		if gp.Model != "" {
			return gp.Model
		}
		return defaultGeminiModel
	}
	return ""
}

// SetModel switches the Gemini model for subsequent commentary calls.
func (a *Advisor) SetModel(model string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gp, ok := a.provider.(*GeminiProvider); ok {
		gp.Model = model
		return
	}
	a.provider = &GeminiProvider{Model: model}
	a.enabled = true
}

// Commentary produces Markdown commentary for one appraisal. Any
// backend failure degrades to the template so callers always get text.
// The second return is true when the model backend produced the text,
// false when the template served.
func (a *Advisor) Commentary(ctx context.Context, result appraisal.Result) (string, bool) {
	a.mu.RLock()
	provider := a.provider
	enabled := a.enabled
	a.mu.RUnlock()

	if !enabled || provider == nil {
		return fallbackCommentary(result), false
	}

	raw, err := provider.GenerateResponse(ctx, buildPrompt(result), commentarySystemPrompt, nil)
	if err != nil {
		fmt.Printf("[ADVISOR] generation failed, using fallback: %v\n", err)
		return fallbackCommentary(result), false
	}

	cleaned := utils.CleanMarkdown(raw)
	if cleaned == "" || !utils.ValidateMarkdown(cleaned) {
		return fallbackCommentary(result), false
	}
	return cleaned, true
}

func buildPrompt(result appraisal.Result) string {
	var b strings.Builder

	name := result.Project.Name
	if name == "" {
		name = "the project"
	}

	verdict := "fails"
	if result.Feasibility.Feasible {
		verdict = "passes"
	}

	fmt.Fprintf(&b, "Project: %s\n", name)
	fmt.Fprintf(&b, "Horizon: %d years, discount rate %.2f%%\n", result.Project.ProjectYears, result.Project.DiscountRate)
	fmt.Fprintf(&b, "NPV: %.2f\n", result.Metrics.NPV)
	fmt.Fprintf(&b, "IRR: %.2f%%\n", result.Metrics.IRR*100)
	fmt.Fprintf(&b, "Payback: %.2f years\n", result.Metrics.PaybackPeriod)
	fmt.Fprintf(&b, "Verdict: %s the acceptance checks\n", verdict)

	b.WriteString("Sensitivity ranking (widest NPV swing first):\n")
	for _, r := range result.Sensitivity {
		fmt.Fprintf(&b, "- %s: NPV %.2f to %.2f (range %.2f)\n", r.Variable, r.NPVLow, r.NPVHigh, r.Range)
	}

	return b.String()
}

func fallbackCommentary(result appraisal.Result) string {
	verdict := "does not meet"
	if result.Feasibility.Feasible {
		verdict = "meets"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Commentary\n\n")
	fmt.Fprintf(&b, "The project %s the standard acceptance criteria. ", verdict)
	fmt.Fprintf(&b, "NPV comes to %.2f with an IRR of %.2f%% and a payback of %.2f years against a %d-year horizon.",
		result.Metrics.NPV, result.Metrics.IRR*100, result.Metrics.PaybackPeriod, result.Project.ProjectYears)

	if len(result.Sensitivity) > 0 {
		top := result.Sensitivity[0]
		fmt.Fprintf(&b, "\n\nNPV reacts most strongly to %s, swinging from %.2f to %.2f under the tested variation. Plans should secure this variable first.",
			top.Variable, top.NPVLow, top.NPVHigh)
	}

	return b.String()
}
