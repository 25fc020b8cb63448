package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/onboarding"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type stubProfileWriter struct {
	err       error
	calls     int
	lastInput repository.UserOnboardingInput
}

func (s *stubProfileWriter) CompleteOnboarding(_ context.Context, userID int64, req repository.UserOnboardingInput) (*models.UserProfile, error) {
	s.calls++
	s.lastInput = req
	if s.err != nil {
		return nil, s.err
	}
	completedAt := req.CompletedAt
	return &models.UserProfile{UserID: userID, FullName: &req.FullName, OnboardedAt: &completedAt}, nil
}

type onboardingResponse struct {
	State              onboarding.State `json:"state"`
	Error              string           `json:"error"`
	OnboardingComplete bool             `json:"onboarding_complete"`
}

func newOnboardingTestApp(store *onboarding.Store, writer *stubProfileWriter) *fiber.App {
	handler := NewOnboardingHandler(store, writer)

	app := fiber.New()
	group := app.Group("/api/v1/onboarding", withIdentity(&models.Identity{UserID: 9, Email: "ana@example.com", SessionID: "sess-1"}))
	group.Post("/", handler.Start)
	group.Get("/", handler.GetState)
	group.Patch("/", handler.Update)
	group.Post("/next", handler.Next)
	group.Post("/previous", handler.Previous)
	group.Post("/confirm", handler.Confirm)
	group.Post("/complete", handler.Complete)
	group.Delete("/", handler.Abandon)
	return app
}

func sendOnboarding(t *testing.T, app *fiber.App, method, path, body string) (int, onboardingResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var payload onboardingResponse
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode, payload
}

func TestOnboardingRequiresStart(t *testing.T) {
	app := newOnboardingTestApp(onboarding.NewStore(), &stubProfileWriter{})

	status, payload := sendOnboarding(t, app, http.MethodGet, "/api/v1/onboarding", "")
	if status != http.StatusNotFound || payload.Error != "Onboarding not started" {
		t.Fatalf("expected 404, got %d %+v", status, payload)
	}
}

func TestOnboardingStartResumesExistingWizard(t *testing.T) {
	store := onboarding.NewStore()
	app := newOnboardingTestApp(store, &stubProfileWriter{})

	status, payload := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding", "")
	if status != http.StatusCreated || payload.State.Step != "personal_info" {
		t.Fatalf("expected fresh wizard, got %d %+v", status, payload.State)
	}

	sendOnboarding(t, app, http.MethodPatch, "/api/v1/onboarding", `{"nome_completo":"Ana Souza"}`)

	status, payload = sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding", "")
	if status != http.StatusOK {
		t.Fatalf("expected resume with 200, got %d", status)
	}
	if payload.State.Draft.FullName != "Ana Souza" {
		t.Fatalf("expected draft to survive resume, got %+v", payload.State.Draft)
	}
}

func TestOnboardingNextBlocksIncompleteStep(t *testing.T) {
	app := newOnboardingTestApp(onboarding.NewStore(), &stubProfileWriter{})
	sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding", "")
	sendOnboarding(t, app, http.MethodPatch, "/api/v1/onboarding", `{"nome_completo":"Ana Souza"}`)

	status, payload := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/next", "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if payload.State.Step != "personal_info" || payload.State.CanAdvance {
		t.Fatalf("expected to stay on personal_info, got %+v", payload.State)
	}
}

func TestOnboardingRejectsInvalidPatch(t *testing.T) {
	app := newOnboardingTestApp(onboarding.NewStore(), &stubProfileWriter{})
	sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding", "")

	status, payload := sendOnboarding(t, app, http.MethodPatch, "/api/v1/onboarding", `{"sexo":"other"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if payload.State.Draft.Sex != "" {
		t.Fatalf("expected invalid patch to change nothing, got %+v", payload.State.Draft)
	}
}

func walkToSummary(t *testing.T, app *fiber.App) {
	t.Helper()
	sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding", "")
	steps := []string{
		`{"nome_completo":"Ana Souza","sexo":"feminino","data_nascimento":"1990-05-20"}`,
		`{"objetivo":"weight_loss"}`,
		`{"nivel_experiencia":"beginner"}`,
		`{"frequencia_treino":"4-5"}`,
		`{"local_treino":"home"}`,
		`{"alternar_equipamento":"dumbbells"}`,
		`{"restricoes":"joelho"}`,
	}
	for i, patch := range steps {
		if status, payload := sendOnboarding(t, app, http.MethodPatch, "/api/v1/onboarding", patch); status != http.StatusOK {
			t.Fatalf("patch %d: expected 200, got %d %s", i, status, payload.Error)
		}
		status, payload := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/next", "")
		if status != http.StatusOK {
			t.Fatalf("next %d: expected 200, got %d %s", i, status, payload.Error)
		}
		if payload.State.StepIndex != i+1 {
			t.Fatalf("next %d: expected step index %d, got %d", i, i+1, payload.State.StepIndex)
		}
	}
}

func TestOnboardingWalkThroughAndConfirm(t *testing.T) {
	store := onboarding.NewStore()
	writer := &stubProfileWriter{}
	app := newOnboardingTestApp(store, writer)
	walkToSummary(t, app)

	status, payload := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/confirm", "")
	if status != http.StatusOK || !payload.OnboardingComplete {
		t.Fatalf("expected confirmation, got %d %+v", status, payload)
	}
	if writer.calls != 1 {
		t.Fatalf("expected one write, got %d", writer.calls)
	}
	if writer.lastInput.AvailableTime != "45" || writer.lastInput.TrainingPreference != "Halteres" {
		t.Fatalf("unexpected derived fields %+v", writer.lastInput)
	}
	if _, ok := store.Get(9); ok {
		t.Fatal("expected wizard to be discarded after confirmation")
	}
}

func TestOnboardingConfirmOutsideSummary(t *testing.T) {
	writer := &stubProfileWriter{}
	app := newOnboardingTestApp(onboarding.NewStore(), writer)
	sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding", "")

	status, _ := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/confirm", "")
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if writer.calls != 0 {
		t.Fatal("expected no write outside the summary step")
	}
}

func TestOnboardingPreviousKeepsDraft(t *testing.T) {
	app := newOnboardingTestApp(onboarding.NewStore(), &stubProfileWriter{})
	sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding", "")
	sendOnboarding(t, app, http.MethodPatch, "/api/v1/onboarding", `{"nome_completo":"Ana Souza","sexo":"feminino","data_nascimento":"1990-05-20"}`)
	sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/next", "")

	status, payload := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/previous", "")
	if status != http.StatusOK || payload.State.Step != "personal_info" {
		t.Fatalf("expected to be back on personal_info, got %d %+v", status, payload.State)
	}
	if payload.State.Draft.FullName != "Ana Souza" {
		t.Fatalf("expected draft to be kept, got %+v", payload.State.Draft)
	}
}

func TestOnboardingAbandonDiscardsWizard(t *testing.T) {
	store := onboarding.NewStore()
	app := newOnboardingTestApp(store, &stubProfileWriter{})
	sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding", "")

	status, _ := sendOnboarding(t, app, http.MethodDelete, "/api/v1/onboarding", "")
	if status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", status)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d wizards", store.Len())
	}
}

func TestOnboardingCompleteOneShot(t *testing.T) {
	writer := &stubProfileWriter{}
	app := newOnboardingTestApp(onboarding.NewStore(), writer)

	body := `{"nome_completo":"Ana Souza","sexo":"feminino","data_nascimento":"1990-05-20","objetivo":"health","nivel_experiencia":"advanced","frequencia_treino":"6-7","local_treino":"gym","equipamentos":[]}`
	status, payload := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/complete", body)
	if status != http.StatusOK || !payload.OnboardingComplete {
		t.Fatalf("expected completion, got %d %+v", status, payload)
	}
	if writer.lastInput.AvailableTime != "30" || writer.lastInput.TrainingPreference != "Nenhum equipamento" {
		t.Fatalf("unexpected derived fields %+v", writer.lastInput)
	}
}

func TestOnboardingCompleteRejectsIncompleteDraft(t *testing.T) {
	writer := &stubProfileWriter{}
	app := newOnboardingTestApp(onboarding.NewStore(), writer)

	status, payload := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/complete", `{"nome_completo":"Ana Souza"}`)
	if status != http.StatusBadRequest || payload.Error == "" {
		t.Fatalf("expected 400 with error, got %d %+v", status, payload)
	}
	if writer.calls != 0 {
		t.Fatal("expected no write for an incomplete draft")
	}
}

func TestOnboardingConfirmWriteFailureKeepsWizard(t *testing.T) {
	store := onboarding.NewStore()
	writer := &stubProfileWriter{err: errors.New("db down")}
	app := newOnboardingTestApp(store, writer)
	walkToSummary(t, app)

	status, payload := sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/confirm", "")
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if payload.State.Step != "summary" || payload.State.Draft.FullName != "Ana Souza" {
		t.Fatalf("expected draft to be kept for retry, got %+v", payload.State)
	}
	if _, ok := store.Get(9); !ok {
		t.Fatal("expected wizard to stay in the store")
	}

	writer.err = nil
	status, payload = sendOnboarding(t, app, http.MethodPost, "/api/v1/onboarding/confirm", "")
	if status != http.StatusOK || !payload.OnboardingComplete {
		t.Fatalf("expected retry to succeed, got %d %+v", status, payload)
	}
}
