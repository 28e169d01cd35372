package models

import "encoding/json"

// Recommendation is the hiring verdict used by interview analyses and final reports.
type Recommendation string

const (
	RecommendStrongHire Recommendation = "STRONG_HIRE"
	RecommendHire       Recommendation = "HIRE"
	RecommendConsider   Recommendation = "CONSIDER"
	RecommendReject     Recommendation = "REJECT"
)

func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendStrongHire, RecommendHire, RecommendConsider, RecommendReject:
		return true
	}
	return false
}

// CodeVerdict is the pass/fail scale of a code analysis.
type CodeVerdict string

const (
	VerdictStrongPass CodeVerdict = "STRONG_PASS"
	VerdictPass       CodeVerdict = "PASS"
	VerdictBorderline CodeVerdict = "BORDERLINE"
	VerdictFail       CodeVerdict = "FAIL"
)

func (v CodeVerdict) IsValid() bool {
	switch v {
	case VerdictStrongPass, VerdictPass, VerdictBorderline, VerdictFail:
		return true
	}
	return false
}

type QuestionAnalysis struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// TranscriptAnalysis is the oracle's assessment of an interview transcript.
type TranscriptAnalysis struct {
	OverallScore     float64            `json:"overallScore"`
	Strengths        []string           `json:"strengths"`
	Weaknesses       []string           `json:"weaknesses"`
	QuestionAnalysis []QuestionAnalysis `json:"questionAnalysis"`
	Summary          string             `json:"summary"`
	Recommendation   Recommendation     `json:"recommendation"`
}

// CodeAnalysis is the oracle's assessment of a code submission against its requirements.
type CodeAnalysis struct {
	OverallScore          float64     `json:"overallScore"`
	CodeQuality           float64     `json:"codeQuality"`
	Functionality         float64     `json:"functionality"`
	Efficiency            float64     `json:"efficiency"`
	Readability           float64     `json:"readability"`
	BestPractices         float64     `json:"bestPractices"`
	Strengths             []string    `json:"strengths"`
	Weaknesses            []string    `json:"weaknesses"`
	SuggestedImprovements []string    `json:"suggestedImprovements"`
	Summary               string      `json:"summary"`
	Recommendation        CodeVerdict `json:"recommendation"`
}

// ReportDraft is the oracle's synthesis of the three analyses.
// TechnicalScore maps onto FinalReport.InterviewScore.
type ReportDraft struct {
	OverallRating     float64        `json:"overallRating"`
	TechnicalScore    float64        `json:"technicalScore"`
	CodingScore       float64        `json:"codingScore"`
	ManagerialScore   float64        `json:"managerialScore"`
	Strengths         []string       `json:"strengths"`
	Weaknesses        []string       `json:"weaknesses"`
	Summary           string         `json:"summary"`
	TechnicalSummary  string         `json:"technicalSummary"`
	CodingSummary     string         `json:"codingSummary"`
	ManagerialSummary string         `json:"managerialSummary"`
	Recommendation    Recommendation `json:"recommendation"`
	SuggestedHike     *float64       `json:"suggestedHike"`
	SuggestedRole     string         `json:"suggestedRole"`
}

// ReportInputs carries the three analyses a final report is composed from.
type ReportInputs struct {
	TechnicalInterview  json.RawMessage `json:"technicalInterview,omitempty"`
	CodingAssessment    json.RawMessage `json:"codingAssessment,omitempty"`
	ManagerialInterview json.RawMessage `json:"managerialInterview,omitempty"`
}

// Missing lists the json names of analyses that are absent or null.
func (in ReportInputs) Missing() []string {
	var missing []string
	if isAbsent(in.TechnicalInterview) {
		missing = append(missing, "technicalInterview")
	}
	if isAbsent(in.CodingAssessment) {
		missing = append(missing, "codingAssessment")
	}
	if isAbsent(in.ManagerialInterview) {
		missing = append(missing, "managerialInterview")
	}
	return missing
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
