// Package lifecycle holds the status transition tables for interviews and coding
// assessments, and the reviewer assignment rule for assessments.
package lifecycle

import (
	"github.com/darshan4295/interview-app/internal/models"
)

// Table is an allowed-transitions map for one entity.
type Table[S ~string] struct {
	entity  string
	allowed map[S]map[S]bool
}

func NewTable[S ~string](entity string, edges map[S][]S) *Table[S] {
	allowed := make(map[S]map[S]bool, len(edges))
	for from, targets := range edges {
		allowed[from] = make(map[S]bool, len(targets))
		for _, to := range targets {
			allowed[from][to] = true
		}
	}
	return &Table[S]{entity: entity, allowed: allowed}
}

func (t *Table[S]) Entity() string { return t.entity }

// Allows reports whether from -> to is a legal edge.
func (t *Table[S]) Allows(from, to S) bool {
	return t.allowed[from][to]
}

// IsTerminal reports whether no edge leaves s, other than a self loop.
func (t *Table[S]) IsTerminal(s S) bool {
	for to := range t.allowed[s] {
		if to != s {
			return false
		}
	}
	return true
}

// Check returns a state conflict carrying message when from -> to is illegal.
func (t *Table[S]) Check(from, to S, message string) error {
	if t.Allows(from, to) {
		return nil
	}
	return models.ConflictError(message)
}

// Interviews: SCHEDULED is the only state with outgoing edges.
var Interviews = NewTable("interview", map[models.InterviewStatus][]models.InterviewStatus{
	models.InterviewScheduled: {models.InterviewCompleted, models.InterviewCancelled},
})

// Assessments move forward only. REVIEWED -> REVIEWED is a re-review.
var Assessments = NewTable("assessment", map[models.AssessmentStatus][]models.AssessmentStatus{
	models.AssessmentPending:   {models.AssessmentSubmitted},
	models.AssessmentSubmitted: {models.AssessmentReviewed},
	models.AssessmentReviewed:  {models.AssessmentReviewed},
})
