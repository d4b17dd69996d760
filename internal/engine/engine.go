// Package engine orchestrates claim processing: classification, the
// escalation gate, and the per-type workflow, persisting every transition.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoreau/claimroute/internal/common"
	"github.com/jmoreau/claimroute/internal/escalation"
	"github.com/jmoreau/claimroute/internal/fraud"
	"github.com/jmoreau/claimroute/internal/loss"
	"github.com/jmoreau/claimroute/internal/match"
	"github.com/jmoreau/claimroute/internal/model"
	"github.com/jmoreau/claimroute/internal/router"
	"github.com/jmoreau/claimroute/internal/service"
)

// maxDetailLen caps status detail and summary text persisted with a claim.
const maxDetailLen = 500

// Options wires the engine's collaborators and tuning.
type Options struct {
	Storage       service.Storage
	Classifier    service.Classifier
	Valuer        service.Valuer
	Policies      service.PolicyLookup
	FraudConfig   fraud.Config
	LossConfig    loss.Config
	EscalationCfg escalation.Config
	Retry         service.RetryOptions
}

// Result is the outcome of one workflow run.
type Result struct {
	ClaimID           string            `json:"claim_id"`
	ClaimType         model.ClaimType   `json:"claim_type"`
	Status            model.ClaimStatus `json:"status"`
	RouterOutput      string            `json:"router_output"`
	WorkflowOutput    string            `json:"workflow_output"`
	Summary           string            `json:"summary"`
	NeedsReview       bool              `json:"needs_review"`
	EscalationReasons []string          `json:"escalation_reasons,omitempty"`
	Priority          string            `json:"priority,omitempty"`
	RecommendedAction string            `json:"recommended_action,omitempty"`
	FraudIndicators   []string          `json:"fraud_indicators,omitempty"`
}

type workflowFunc func(ctx context.Context, wc *workflowContext) (string, *float64, error)

// Engine runs claims through classification, escalation, and workflows.
type Engine struct {
	storage    service.Storage
	classifier service.Classifier
	policies   service.PolicyLookup
	matcher    *match.Matcher
	loss       *loss.Classifier
	escalation *escalation.Engine
	workflows  map[model.ClaimType]workflowFunc
	fraudCfg   fraud.Config
	retry      service.RetryOptions
}

// NewEngine builds an engine with an explicit workflow registry, one handler
// per claim type.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		storage:    opts.Storage,
		classifier: opts.Classifier,
		policies:   opts.Policies,
		matcher:    match.NewMatcher(opts.Storage),
		loss:       loss.NewClassifier(opts.Valuer, opts.LossConfig),
		escalation: escalation.NewEngine(opts.EscalationCfg, opts.FraudConfig),
		fraudCfg:   opts.FraudConfig,
		retry:      opts.Retry,
	}
	e.workflows = map[model.ClaimType]workflowFunc{
		model.TypeNew:         e.runNewClaim,
		model.TypeDuplicate:   e.runDuplicate,
		model.TypeTotalLoss:   e.runTotalLoss,
		model.TypeFraud:       e.runFraud,
		model.TypePartialLoss: e.runPartialLoss,
	}
	return e
}

// Process creates a claim from input and runs the full workflow.
func (e *Engine) Process(ctx context.Context, input model.ClaimInput) (*Result, error) {
	claimID, err := e.storage.CreateClaim(ctx, input)
	if err != nil {
		return nil, err
	}
	slog.Info("Created new claim",
		"claim_id", claimID,
		"policy_number", input.PolicyNumber,
		"vin", input.VIN)

	claim := model.FromInput(input)
	claim.ID = claimID
	return e.run(ctx, claim)
}

// Reprocess re-runs the workflow for an existing claim, preserving prior
// workflow runs and audit history.
func (e *Engine) Reprocess(ctx context.Context, claimID string) (*Result, error) {
	claim, err := e.storage.GetClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	slog.Info("Reprocessing existing claim", "claim_id", claimID)
	return e.run(ctx, *claim)
}

// run executes one workflow attempt. Any failure after the claim enters
// processing moves it to failed with truncated details before the error
// propagates.
func (e *Engine) run(ctx context.Context, claim model.Claim) (*Result, error) {
	if err := e.storage.UpdateClaimStatus(ctx, claim.ID, service.StatusUpdate{
		Status: model.StatusProcessing,
	}); err != nil {
		return nil, err
	}
	slog.Info("Workflow started", "claim_id", claim.ID, "status", model.StatusProcessing)

	result, err := e.runWorkflow(ctx, claim)
	if err != nil {
		e.markFailed(ctx, claim.ID, err)
		return nil, err
	}
	return result, nil
}

func (e *Engine) runWorkflow(ctx context.Context, claim model.Claim) (*Result, error) {
	wc, err := e.enrich(ctx, claim)
	if err != nil {
		return nil, err
	}

	// Step 1: classify.
	var rawOutput string
	classifyErr := common.WithRetry(ctx, func() error {
		out, err := e.classifier.Classify(ctx, wc.request())
		if err != nil {
			return err
		}
		rawOutput = out
		return nil
	}, e.retry)
	if classifyErr != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrClassificationFailed, classifyErr)
	}
	claimType := router.ParseClaimType(rawOutput)
	slog.Info("Router completed", "claim_id", claim.ID, "claim_type", claimType)

	// Step 2: escalation gate. Skipped for fraud so the fraud workflow runs
	// its own assessment.
	if claimType != model.TypeFraud {
		gate := e.escalation.Evaluate(escalation.Input{
			Claim:        claim,
			RouterOutput: rawOutput,
			PriorClaims:  wc.vinHistory,
			VehicleValue: wc.lossResult.VehicleValue,
		})
		if gate.NeedsReview {
			return e.escalate(ctx, claim, claimType, rawOutput, gate)
		}
	}

	// Step 3: run the workflow registered for the routed type.
	output, payout, err := e.workflows[claimType](ctx, wc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s workflow: %v", common.ErrWorkflowFailed, claimType, err)
	}

	finalStatus := finalStatusFor(claimType)
	if err := e.storage.SaveWorkflowRun(ctx, model.WorkflowRun{
		ClaimID:        claim.ID,
		ClaimType:      claimType,
		RouterOutput:   rawOutput,
		WorkflowOutput: output,
	}); err != nil {
		return nil, err
	}
	if err := e.storage.UpdateClaimStatus(ctx, claim.ID, service.StatusUpdate{
		Status:       finalStatus,
		ClaimType:    &claimType,
		PayoutAmount: payout,
		Details:      truncate(output),
	}); err != nil {
		return nil, err
	}
	slog.Info("Workflow completed", "claim_id", claim.ID, "status", finalStatus)

	return &Result{
		ClaimID:        claim.ID,
		ClaimType:      claimType,
		Status:         finalStatus,
		RouterOutput:   rawOutput,
		WorkflowOutput: output,
		Summary:        truncate(output),
	}, nil
}

// escalate persists a needs-review outcome and returns the escalation result.
func (e *Engine) escalate(ctx context.Context, claim model.Claim, claimType model.ClaimType,
	rawOutput string, gate escalation.Result) (*Result, error) {

	details, err := json.Marshal(map[string]any{
		"escalation_reasons": gate.Reasons,
		"priority":           gate.Priority,
		"recommended_action": gate.RecommendedAction,
		"fraud_indicators":   gate.FraudIndicators,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding escalation details: %w", err)
	}

	if err := e.storage.SaveWorkflowRun(ctx, model.WorkflowRun{
		ClaimID:        claim.ID,
		ClaimType:      claimType,
		RouterOutput:   rawOutput,
		WorkflowOutput: string(details),
	}); err != nil {
		return nil, err
	}
	if err := e.storage.UpdateClaimStatus(ctx, claim.ID, service.StatusUpdate{
		Status:    model.StatusNeedsReview,
		ClaimType: &claimType,
		Details:   truncate(string(details)),
	}); err != nil {
		return nil, err
	}
	slog.Info("Claim escalated",
		"claim_id", claim.ID,
		"reasons", gate.Reasons,
		"priority", gate.Priority)

	return &Result{
		ClaimID:           claim.ID,
		ClaimType:         claimType,
		Status:            model.StatusNeedsReview,
		RouterOutput:      rawOutput,
		WorkflowOutput:    string(details),
		Summary:           "Escalated for review: " + strings.Join(gate.Reasons, ", "),
		NeedsReview:       true,
		EscalationReasons: gate.Reasons,
		Priority:          gate.Priority,
		RecommendedAction: gate.RecommendedAction,
		FraudIndicators:   gate.FraudIndicators,
	}, nil
}

// markFailed records the failure on the claim before the error propagates.
// The status write itself is best-effort; its failure is logged, not returned.
func (e *Engine) markFailed(ctx context.Context, claimID string, cause error) {
	details := truncate(cause.Error())
	if err := e.storage.UpdateClaimStatus(ctx, claimID, service.StatusUpdate{
		Status:  model.StatusFailed,
		Details: details,
	}); err != nil {
		slog.Error("Failed to record claim failure",
			"claim_id", claimID,
			"error", err,
			"cause", details)
		return
	}
	slog.Error("Workflow failed", "claim_id", claimID, "error", details)
}

func finalStatusFor(claimType model.ClaimType) model.ClaimStatus {
	switch claimType {
	case model.TypeNew:
		return model.StatusOpen
	case model.TypeDuplicate:
		return model.StatusDuplicate
	case model.TypeFraud:
		return model.StatusFraudSuspected
	case model.TypePartialLoss:
		return model.StatusPartialLoss
	default:
		return model.StatusClosed
	}
}

func truncate(s string) string {
	if len(s) > maxDetailLen {
		return s[:maxDetailLen] + "..."
	}
	return s
}
