// Package analysis turns transcripts, code submissions and prior analyses into
// structured assessments by prompting an LLM provider.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/llm"
	"github.com/darshan4295/interview-app/internal/metrics"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/prompts"
)

// Oracle scores interviews and code, and composes final reports.
// Failures are returned as upstream errors and are never replaced by a default result.
type Oracle interface {
	AnalyzeTranscript(ctx context.Context, transcript string, kind models.InterviewType) (*models.TranscriptAnalysis, error)
	AnalyzeCode(ctx context.Context, code, requirements string) (*models.CodeAnalysis, error)
	ComposeReport(ctx context.Context, in models.ReportInputs) (*models.ReportDraft, error)
}

const (
	opTranscript = "transcript"
	opCode       = "code"
	opReport     = "final_report"
)

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

var errNoJSON = errors.New("no JSON object in model output")

// LLMOracle is the Oracle backed by an llm.Provider.
type LLMOracle struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	timeout  time.Duration
	logger   *zap.Logger
}

func NewLLMOracle(provider llm.Provider, pm prompts.PromptProvider, timeout time.Duration, logger *zap.Logger) *LLMOracle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMOracle{provider: provider, prompts: pm, timeout: timeout, logger: logger}
}

func (o *LLMOracle) AnalyzeTranscript(ctx context.Context, transcript string, kind models.InterviewType) (*models.TranscriptAnalysis, error) {
	prompt, err := o.prompts.BuildPrompt(prompts.Transcript, string(kind), map[string]string{
		"InterviewType": strings.ToLower(string(kind)),
		"Transcript":    transcript,
	})
	if err != nil {
		return nil, models.InternalError(err)
	}

	var out models.TranscriptAnalysis
	if err := o.generate(ctx, opTranscript, prompt, &out); err != nil {
		return nil, err
	}
	if !out.Recommendation.IsValid() {
		return nil, o.invalid(opTranscript, fmt.Errorf("recommendation %q", out.Recommendation))
	}
	return &out, nil
}

func (o *LLMOracle) AnalyzeCode(ctx context.Context, code, requirements string) (*models.CodeAnalysis, error) {
	prompt, err := o.prompts.BuildPrompt(prompts.Coding, prompts.DefaultVariant, map[string]string{
		"Requirements": requirements,
		"Code":         code,
	})
	if err != nil {
		return nil, models.InternalError(err)
	}

	var out models.CodeAnalysis
	if err := o.generate(ctx, opCode, prompt, &out); err != nil {
		return nil, err
	}
	if !out.Recommendation.IsValid() {
		return nil, o.invalid(opCode, fmt.Errorf("recommendation %q", out.Recommendation))
	}
	return &out, nil
}

func (o *LLMOracle) ComposeReport(ctx context.Context, in models.ReportInputs) (*models.ReportDraft, error) {
	prompt, err := o.prompts.BuildPrompt(prompts.FinalReport, prompts.DefaultVariant, map[string]string{
		"TechnicalAnalysis":  string(in.TechnicalInterview),
		"CodingAnalysis":     string(in.CodingAssessment),
		"ManagerialAnalysis": string(in.ManagerialInterview),
	})
	if err != nil {
		return nil, models.InternalError(err)
	}

	var out models.ReportDraft
	if err := o.generate(ctx, opReport, prompt, &out); err != nil {
		return nil, err
	}
	if !out.Recommendation.IsValid() {
		return nil, o.invalid(opReport, fmt.Errorf("recommendation %q", out.Recommendation))
	}
	return &out, nil
}

// generate runs one bounded provider call and decodes the first JSON object of the reply into out.
func (o *LLMOracle) generate(ctx context.Context, operation, prompt string, out any) error {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	start := time.Now()
	resp, err := o.provider.GenerateContent(ctx, prompt, requestID)
	if err != nil {
		outcome := "error"
		if llm.CodeOf(err) == llm.ErrCodeTimeout || errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
		metrics.RecordOracle(operation, outcome, time.Since(start))
		o.logger.Warn("analysis request failed",
			zap.String("operation", operation),
			zap.String("request_id", requestID),
			zap.String("provider", o.provider.GetProviderName()),
			zap.Error(err))
		if outcome == "timeout" {
			return models.UpstreamError("Analysis service timed out", err)
		}
		return models.UpstreamError("Analysis service unavailable", err)
	}

	if err := decodeJSON(resp.Content, out); err != nil {
		metrics.RecordOracle(operation, "invalid", time.Since(start))
		return o.invalid(operation, err)
	}

	metrics.RecordOracle(operation, "ok", time.Since(start))
	o.logger.Info("analysis completed",
		zap.String("operation", operation),
		zap.String("request_id", requestID),
		zap.String("model", resp.Model),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (o *LLMOracle) invalid(operation string, err error) error {
	o.logger.Warn("analysis output rejected", zap.String("operation", operation), zap.Error(err))
	return models.UpstreamError("Analysis service returned an invalid result", err)
}

func decodeJSON(content string, out any) error {
	match := jsonObject.FindString(content)
	if match == "" {
		return errNoJSON
	}
	return json.Unmarshal([]byte(match), out)
}
