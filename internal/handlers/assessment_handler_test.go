package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/darshan4295/interview-app/internal/models"
)

func TestAssessmentHandler_Flow(t *testing.T) {
	env := newHandlerEnv(t)

	body := fmt.Sprintf(`{"title":"Two sum","description":"Find pairs","requirements":"O(n)","candidateId":%q}`, env.candidateP.ID)
	rec := serve(validated[*models.CreateAssessmentRequest](env.assessment.CreateHandler), http.MethodPost, "/assessments", body, env.interviewerP, nil)
	expectStatus(t, rec, http.StatusCreated)
	id := decodeResponse(t, rec)["id"].(string)
	params := map[string]string{"id": id}

	submit := validated[*models.SubmitAssessmentRequest](env.assessment.SubmitHandler)
	review := validated[*models.ReviewAssessmentRequest](env.assessment.ReviewHandler)

	rec = serve(review, http.MethodPost, "/assessments/x/review", `{"score":80,"feedback":"ok"}`, env.interviewerP, params)
	expectStatus(t, rec, http.StatusBadRequest)
	if decodeResponse(t, rec)["message"] != "Assessment has not been submitted yet" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = serve(submit, http.MethodPost, "/assessments/x/submit", `{"code":"print(1)"}`, env.strangerP, params)
	expectStatus(t, rec, http.StatusForbidden)

	rec = serve(submit, http.MethodPost, "/assessments/x/submit", `{"code":"print(1)"}`, env.candidateP, params)
	expectStatus(t, rec, http.StatusOK)

	rec = serve(review, http.MethodPost, "/assessments/x/review", `{"score":101,"feedback":"ok"}`, env.interviewerP, params)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = serve(review, http.MethodPost, "/assessments/x/review", `{"score":85,"feedback":"clean"}`, env.interviewerP, params)
	expectStatus(t, rec, http.StatusOK)
	if decodeResponse(t, rec)["status"] != string(models.AssessmentReviewed) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = serve(http.HandlerFunc(env.assessment.GetHandler), http.MethodGet, "/assessments/x", "", env.candidateP, params)
	expectStatus(t, rec, http.StatusOK)
	if _, ok := decodeResponse(t, rec)["aiAnalysis"]; !ok {
		t.Fatalf("reviewed assessment should expose its analysis to the candidate")
	}
}

func TestAssessmentHandler_ListHandler(t *testing.T) {
	env := newHandlerEnv(t)
	list := http.HandlerFunc(env.assessment.ListHandler)

	rec := serve(list, http.MethodGet, "/assessments?status=LOST", "", env.candidateP, nil)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = serve(list, http.MethodGet, "/assessments?status=PENDING", "", env.candidateP, nil)
	expectStatus(t, rec, http.StatusOK)
}
