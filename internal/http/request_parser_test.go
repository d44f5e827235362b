package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"grana/internal/core"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  core.Filter
	}{
		{
			name:  "empty query leaves everything unconstrained",
			query: url.Values{},
			want:  core.Filter{},
		},
		{
			name: "all criteria set",
			query: url.Values{
				"q":        {"mercado"},
				"kind":     {"expense"},
				"owner":    {"Maria"},
				"category": {"Alimentação"},
			},
			want: core.Filter{Query: "mercado", Kind: "expense", Owner: "Maria", Category: "Alimentação"},
		},
		{
			name:  "values are trimmed",
			query: url.Values{"q": {"  mercado  "}, "owner": {" Maria "}},
			want:  core.Filter{Query: "mercado", Owner: "Maria"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilter(tt.query)
			if got.Query != tt.want.Query || got.Kind != tt.want.Kind ||
				got.Owner != tt.want.Owner || got.Category != tt.want.Category {
				t.Errorf("ParseFilter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFilterDateBounds(t *testing.T) {
	query := url.Values{"from": {"2024-06-01"}, "to": {"2024-06-30"}}
	f := ParseFilter(query)

	if f.From.IsZero() || f.From.Format("2006-01-02") != "2024-06-01" {
		t.Errorf("From = %v, want 2024-06-01", f.From)
	}
	if f.To.IsZero() || f.To.Format("2006-01-02") != "2024-06-30" {
		t.Errorf("To = %v, want 2024-06-30", f.To)
	}

	// Malformed dates leave the bound unconstrained.
	f = ParseFilter(url.Values{"from": {"junho"}, "to": {"2024-13-99"}})
	if !f.From.IsZero() || !f.To.IsZero() {
		t.Errorf("malformed dates should be ignored, got From=%v To=%v", f.From, f.To)
	}
}

func TestRecordFormToRecord(t *testing.T) {
	valid := RecordForm{
		Date:        "2024-06-10",
		Owner:       "Maria",
		Category:    "Alimentação",
		Kind:        "expense",
		Amount:      "150,50",
		Description: "Supermercado",
	}

	rec, errResp := valid.ToRecord()
	if errResp != nil {
		rr := httptest.NewRecorder()
		errResp.Write(rr)
		t.Fatalf("ToRecord() unexpected error response: %d %s", rr.Code, rr.Body.String())
	}
	if rec.Amount.Cents != 15050 {
		t.Errorf("Amount.Cents = %d, want 15050", rec.Amount.Cents)
	}
	if rec.Kind != core.Expense {
		t.Errorf("Kind = %q, want expense", rec.Kind)
	}
	if rec.Date.Year() != 2024 || rec.Date.Month() != 6 || rec.Date.Day() != 10 {
		t.Errorf("Date = %v, want 2024-06-10", rec.Date)
	}

	tests := []struct {
		name     string
		mutate   func(f *RecordForm)
		wantCode int
	}{
		{"invalid date", func(f *RecordForm) { f.Date = "10/06/2024" }, http.StatusUnprocessableEntity},
		{"invalid amount", func(f *RecordForm) { f.Amount = "abc" }, http.StatusUnprocessableEntity},
		{"zero amount", func(f *RecordForm) { f.Amount = "0" }, http.StatusUnprocessableEntity},
		{"invalid kind", func(f *RecordForm) { f.Kind = "transfer" }, http.StatusUnprocessableEntity},
		{"missing owner", func(f *RecordForm) { f.Owner = "" }, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			_, errResp := form.ToRecord()
			if errResp == nil {
				t.Fatal("ToRecord() expected error response, got nil")
			}
			rr := httptest.NewRecorder()
			errResp.Write(rr)
			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantID  int64
		wantErr bool
	}{
		{"valid id", url.Values{"id": {"42"}}, 42, false},
		{"missing id", url.Values{}, 0, true},
		{"zero id", url.Values{"id": {"0"}}, 0, true},
		{"negative id", url.Values{"id": {"-3"}}, 0, true},
		{"non-numeric id", url.Values{"id": {"abc"}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, errResp := ParseID(tt.form, "id")
			if tt.wantErr {
				if errResp == nil {
					t.Fatal("ParseID() expected error response, got nil")
				}
				return
			}
			if errResp != nil {
				t.Fatal("ParseID() unexpected error response")
			}
			if id != tt.wantID {
				t.Errorf("id = %d, want %d", id, tt.wantID)
			}
		})
	}
}

func TestRequireMethod(t *testing.T) {
	post := httptest.NewRequest(http.MethodPost, "/records", nil)
	if resp := RequirePOST(post); resp != nil {
		t.Error("RequirePOST should accept POST")
	}

	get := httptest.NewRequest(http.MethodGet, "/records", nil)
	resp := RequirePOST(get)
	if resp == nil {
		t.Fatal("RequirePOST should reject GET")
	}
	rr := httptest.NewRecorder()
	resp.Write(rr)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}

	del := httptest.NewRequest(http.MethodDelete, "/records/delete", nil)
	if resp := RequireDeleteOrPOST(del); resp != nil {
		t.Error("RequireDeleteOrPOST should accept DELETE")
	}
	if resp := RequireDeleteOrPOST(get); resp == nil {
		t.Error("RequireDeleteOrPOST should reject GET")
	}
}
