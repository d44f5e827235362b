package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilderWrite(t *testing.T) {
	rr := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerRecordCreated(7).
		TriggerFormReset().
		TriggerSuccessNotification("salvo").
		BodyHTML(`<div class="success">salvo</div>`).
		Write(rr)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	raw := rr.Header().Get("HX-Trigger")
	if raw == "" {
		t.Fatal("HX-Trigger header missing")
	}
	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	for _, name := range []string{"record:created", "form:reset", "show-notification"} {
		if _, ok := triggers[name]; !ok {
			t.Errorf("HX-Trigger missing %q: %s", name, raw)
		}
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(triggers["record:created"], &created); err != nil || created.ID != 7 {
		t.Errorf("record:created payload = %s, want id 7", triggers["record:created"])
	}
}

func TestHTMXResponseBuilderNoTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().BodyString("ok").Write(rr)

	if rr.Header().Get("HX-Trigger") != "" {
		t.Error("HX-Trigger header should be absent when no triggers set")
	}
	if rr.Body.String() != "ok" {
		t.Errorf("body = %q, want %q", rr.Body.String(), "ok")
	}
}

func TestErrorResponseEscapesHTML(t *testing.T) {
	rr := httptest.NewRecorder()
	BadRequestError(`<script>alert("x")</script>`).Write(rr)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("body contains unescaped HTML: %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("body missing escaped message: %s", body)
	}
}

func TestErrorResponseStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *HTMXResponseBuilder
		wantCode int
	}{
		{"bad request", func() *HTMXResponseBuilder { return BadRequestError("x") }, 400},
		{"unprocessable", func() *HTMXResponseBuilder { return UnprocessableEntityError("x") }, 422},
		{"not found", func() *HTMXResponseBuilder { return NotFoundError("x") }, 404},
		{"internal", func() *HTMXResponseBuilder { return InternalServerError("x") }, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.build().Write(rr)
			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowedError("POST, DELETE").Write(rr)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "POST, DELETE" {
		t.Errorf("Allow = %q, want %q", allow, "POST, DELETE")
	}
}
