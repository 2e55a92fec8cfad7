package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/internal/app/server"
	"lms/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type leaveRequestJSON struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	Type            string `json:"type"`
	RejectionReason string `json:"rejectionReason"`
	AdvisorDecision *bool  `json:"advisorDecision"`
	HODDecision     *bool  `json:"hodDecision"`
}

func testConfig() config.Config {
	return config.Config{
		Addr:               ":0",
		JWTSecret:          "test-secret",
		Environment:        "test",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		NoticeTTL:          time.Minute,
	}
}

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()
	app, err := server.New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts
}

func TestLeaveApprovalJourney(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()

	signup(t, client, ts.URL, map[string]any{
		"name": "Asha", "email": "asha@example.edu", "password": "pass1234",
		"department": "CSE", "role": "student", "section": "A",
	})
	signup(t, client, ts.URL, map[string]any{
		"name": "Ravi", "email": "ravi@example.edu", "password": "pass1234",
		"department": "CSE", "role": "advisor", "section": "A",
	})
	signup(t, client, ts.URL, map[string]any{
		"name": "Meera", "email": "meera@example.edu", "password": "pass1234",
		"department": "CSE", "role": "hod",
	})

	studentToken := login(t, client, ts.URL, "asha@example.edu", "pass1234")
	advisorToken := login(t, client, ts.URL, "ravi@example.edu", "pass1234")
	hodToken := login(t, client, ts.URL, "meera@example.edu", "pass1234")

	// Advisor schedules an event; a later personal leave over these days
	// must be auto-rejected.
	status, _ := request(t, client, http.MethodPost, ts.URL+"/api/v1/events", advisorToken, map[string]any{
		"name": "Midterm Exams", "fromDate": "2026-09-10", "toDate": "2026-09-12",
	})
	if status != http.StatusCreated {
		t.Fatalf("event create: expected 201, got %d", status)
	}

	status, body := request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests", studentToken, map[string]any{
		"type": "personal", "fromDate": "2026-09-11", "toDate": "2026-09-13", "reason": "cousin's wedding",
	})
	if status != http.StatusCreated {
		t.Fatalf("conflicting submit: expected 201, got %d: %s", status, body)
	}
	rejected := decodeRequest(t, body)
	if rejected.Status != "rejected" {
		t.Fatalf("expected auto-rejection, got %s", rejected.Status)
	}
	if rejected.RejectionReason != "Academic event scheduled during this period" {
		t.Fatalf("unexpected rejection reason: %q", rejected.RejectionReason)
	}

	// Sick leave over the same days goes through.
	status, body = request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests", studentToken, map[string]any{
		"type": "sick", "fromDate": "2026-09-11", "toDate": "2026-09-12", "reason": "fever",
	})
	if status != http.StatusCreated {
		t.Fatalf("sick submit: expected 201, got %d: %s", status, body)
	}
	sick := decodeRequest(t, body)
	if sick.Status != "pending" {
		t.Fatalf("expected pending, got %s", sick.Status)
	}

	// The advisor's queue holds the pending request only; the
	// auto-rejected one never reaches review.
	status, body = request(t, client, http.MethodGet, ts.URL+"/api/v1/leave/requests", advisorToken, nil)
	if status != http.StatusOK {
		t.Fatalf("advisor list: expected 200, got %d", status)
	}
	advisorQueue := decodeRequestList(t, body)
	if len(advisorQueue) != 1 || advisorQueue[0].ID != sick.ID {
		t.Fatalf("expected advisor to see only the pending request, got %+v", advisorQueue)
	}

	status, body = request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+sick.ID+"/advisor-decision", advisorToken, map[string]any{"approve": true})
	if status != http.StatusOK {
		t.Fatalf("advisor decision: expected 200, got %d: %s", status, body)
	}
	if forwarded := decodeRequest(t, body); forwarded.Status != "forwarded_to_hod" {
		t.Fatalf("expected forwarded_to_hod, got %s", forwarded.Status)
	}

	status, body = request(t, client, http.MethodGet, ts.URL+"/api/v1/leave/requests", hodToken, nil)
	if status != http.StatusOK {
		t.Fatalf("hod list: expected 200, got %d", status)
	}
	hodQueue := decodeRequestList(t, body)
	if len(hodQueue) != 1 || hodQueue[0].ID != sick.ID {
		t.Fatalf("expected hod to see the forwarded request, got %+v", hodQueue)
	}

	status, body = request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+sick.ID+"/hod-decision", hodToken, map[string]any{"approve": true})
	if status != http.StatusOK {
		t.Fatalf("hod decision: expected 200, got %d: %s", status, body)
	}
	if approved := decodeRequest(t, body); approved.Status != "approved" {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	// Student's latest is the approved request; the auto-rejected one
	// moved to history.
	status, body = request(t, client, http.MethodGet, ts.URL+"/api/v1/leave/requests/latest", studentToken, nil)
	if status != http.StatusOK {
		t.Fatalf("latest: expected 200, got %d", status)
	}
	latest := decodeRequest(t, body)
	if latest.ID != sick.ID || latest.Status != "approved" {
		t.Fatalf("expected approved latest, got %+v", latest)
	}

	status, body = request(t, client, http.MethodGet, ts.URL+"/api/v1/leave/requests/history", studentToken, nil)
	if status != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", status)
	}
	history := decodeRequestList(t, body)
	if len(history) != 1 || history[0].ID != rejected.ID {
		t.Fatalf("expected the auto-rejected request in history, got %+v", history)
	}

	// The last mutating action left a notice on the bus.
	status, body = request(t, client, http.MethodGet, ts.URL+"/api/v1/notices/active", studentToken, nil)
	if status != http.StatusOK {
		t.Fatalf("notices: expected 200, got %d", status)
	}
	var notice struct {
		Message string `json:"message"`
		Kind    string `json:"kind"`
	}
	decodeData(t, body, &notice)
	if notice.Message != "Leave approved" || notice.Kind != "success" {
		t.Fatalf("unexpected notice: %+v", notice)
	}

	status, _ = request(t, client, http.MethodDelete, ts.URL+"/api/v1/notices/active", studentToken, nil)
	if status != http.StatusOK {
		t.Fatalf("dismiss: expected 200, got %d", status)
	}
}

func TestRoleGatesOnDecisionRoutes(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()

	signup(t, client, ts.URL, map[string]any{
		"name": "Asha", "email": "asha@example.edu", "password": "pass1234",
		"department": "CSE", "role": "student", "section": "A",
	})
	studentToken := login(t, client, ts.URL, "asha@example.edu", "pass1234")

	status, body := request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests", studentToken, map[string]any{
		"type": "sick", "fromDate": "2026-09-01", "toDate": "2026-09-02", "reason": "fever",
	})
	if status != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d", status)
	}
	created := decodeRequest(t, body)

	status, _ = request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+created.ID+"/advisor-decision", studentToken, map[string]any{"approve": true})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for student on advisor route, got %d", status)
	}

	status, _ = request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+created.ID+"/advisor-decision", "", map[string]any{"approve": true})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, _ = request(t, client, http.MethodPost, ts.URL+"/api/v1/events", studentToken, map[string]any{
		"name": "Fest", "fromDate": "2026-09-01", "toDate": "2026-09-02",
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for student creating events, got %d", status)
	}
}

func TestAdvisorDecisionConflictsAndMisses(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()

	signup(t, client, ts.URL, map[string]any{
		"name": "Asha", "email": "asha@example.edu", "password": "pass1234",
		"department": "CSE", "role": "student", "section": "A",
	})
	signup(t, client, ts.URL, map[string]any{
		"name": "Ravi", "email": "ravi@example.edu", "password": "pass1234",
		"department": "CSE", "role": "advisor", "section": "A",
	})
	studentToken := login(t, client, ts.URL, "asha@example.edu", "pass1234")
	advisorToken := login(t, client, ts.URL, "ravi@example.edu", "pass1234")

	status, _ := request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/nope/advisor-decision", advisorToken, map[string]any{"approve": true})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown request, got %d", status)
	}

	status, body := request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests", studentToken, map[string]any{
		"type": "sick", "fromDate": "2026-09-01", "toDate": "2026-09-02", "reason": "fever",
	})
	if status != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d", status)
	}
	created := decodeRequest(t, body)

	status, _ = request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+created.ID+"/advisor-decision", advisorToken, map[string]any{"approve": false})
	if status != http.StatusOK {
		t.Fatalf("reject: expected 200, got %d", status)
	}

	status, _ = request(t, client, http.MethodPost, ts.URL+"/api/v1/leave/requests/"+created.ID+"/advisor-decision", advisorToken, map[string]any{"approve": true})
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for decided request, got %d", status)
	}
}

func TestSignupValidationAndDuplicates(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()

	status, body := request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/signup", "", map[string]any{
		"name": "Asha", "email": "asha@example.edu", "password": "pass1234",
		"department": "ART", "role": "student", "section": "A",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("unknown department: expected 400, got %d: %s", status, body)
	}

	status, _ = request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/signup", "", map[string]any{
		"name": "Asha", "email": "asha@example.edu", "password": "pass1234",
		"department": "CSE", "role": "student",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("student without section: expected 400, got %d", status)
	}

	signup(t, client, ts.URL, map[string]any{
		"name": "Asha", "email": "asha@example.edu", "password": "pass1234",
		"department": "CSE", "role": "student", "section": "A",
	})
	status, _ = request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/signup", "", map[string]any{
		"name": "Imposter", "email": "asha@example.edu", "password": "pass1234",
		"department": "CSE", "role": "student", "section": "B",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", status)
	}

	status, _ = request(t, client, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]any{
		"email": "asha@example.edu", "password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", status)
	}
}

func TestSummaryPDFRequiresHOD(t *testing.T) {
	ts := newTestApp(t)
	client := ts.Client()

	signup(t, client, ts.URL, map[string]any{
		"name": "Meera", "email": "meera@example.edu", "password": "pass1234",
		"department": "CSE", "role": "hod",
	})
	signup(t, client, ts.URL, map[string]any{
		"name": "Asha", "email": "asha@example.edu", "password": "pass1234",
		"department": "CSE", "role": "student", "section": "A",
	})
	hodToken := login(t, client, ts.URL, "meera@example.edu", "pass1234")
	studentToken := login(t, client, ts.URL, "asha@example.edu", "pass1234")

	status, _ := request(t, client, http.MethodGet, ts.URL+"/api/v1/leave/reports/summary.pdf", studentToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", status)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/leave/reports/summary.pdf", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+hodToken)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(pdf) == 0 || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a PDF document body")
	}
}

func signup(t *testing.T, client *http.Client, baseURL string, payload map[string]any) {
	t.Helper()
	status, body := request(t, client, http.MethodPost, baseURL+"/api/v1/auth/signup", "", payload)
	if status != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", status, body)
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	status, body := request(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", status, body)
	}
	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, body, &data)
	if data.Token == "" {
		t.Fatal("expected a token")
	}
	return data.Token
}

func request(t *testing.T, client *http.Client, method, url, token string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func decodeData(t *testing.T, body []byte, out any) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v: %s", err, body)
	}
	if len(env.Data) == 0 {
		t.Fatalf("expected data in envelope: %s", body)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v: %s", err, env.Data)
	}
}

func decodeRequest(t *testing.T, body []byte) leaveRequestJSON {
	t.Helper()
	var out leaveRequestJSON
	decodeData(t, body, &out)
	if out.ID == "" {
		t.Fatalf("expected a leave request id in %s", body)
	}
	return out
}

func decodeRequestList(t *testing.T, body []byte) []leaveRequestJSON {
	t.Helper()
	var out []leaveRequestJSON
	decodeData(t, body, &out)
	return out
}
