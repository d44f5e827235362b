// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating request
// data: filter criteria from query strings and record fields from
// HTMX form posts.

package http

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"grana/internal/core"
)

// ParseFilter extracts search criteria from query parameters. Absent
// parameters leave the corresponding criterion unconstrained.
func ParseFilter(query url.Values) core.Filter {
	f := core.Filter{
		Query:    sanitizeInput(query.Get("q")),
		Kind:     sanitizeInput(query.Get("kind")),
		Owner:    sanitizeInput(query.Get("owner")),
		Category: sanitizeInput(query.Get("category")),
	}

	if v := strings.TrimSpace(query.Get("from")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.From = t
		}
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.To = t
		}
	}

	return f
}

// RecordForm holds the raw record fields posted by the UI forms.
type RecordForm struct {
	Date        string
	Owner       string
	Category    string
	Kind        string
	Amount      string
	Description string
}

// ParseRecordForm extracts record fields from form values.
func ParseRecordForm(form url.Values) RecordForm {
	return RecordForm{
		Date:        strings.TrimSpace(form.Get("date")),
		Owner:       sanitizeInput(form.Get("owner")),
		Category:    sanitizeInput(form.Get("category")),
		Kind:        strings.TrimSpace(form.Get("kind")),
		Amount:      strings.TrimSpace(form.Get("amount")),
		Description: sanitizeInput(form.Get("description")),
	}
}

// ToRecord converts the form into a validated record.
func (f RecordForm) ToRecord() (core.Record, *HTMXResponseBuilder) {
	date, err := parseDate(f.Date)
	if err != nil {
		return core.Record{}, UnprocessableEntityError("Data inválida")
	}

	cents, err := core.ParseDecimalToCents(f.Amount)
	if err != nil {
		return core.Record{}, UnprocessableEntityError("Valor inválido")
	}

	rec := core.Record{
		Date:        date,
		Owner:       f.Owner,
		Category:    f.Category,
		Kind:        core.Kind(f.Kind),
		Amount:      core.Money{Cents: cents},
		Description: f.Description,
	}
	if err := rec.Validate(); err != nil {
		return core.Record{}, UnprocessableEntityError("Dados inválidos: " + err.Error())
	}

	return rec, nil
}

// ParseID extracts a positive record ID from the given form field.
func ParseID(form url.Values, field string) (int64, *HTMXResponseBuilder) {
	raw := strings.TrimSpace(form.Get(field))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, BadRequestError("Identificador inválido")
	}
	return id, nil
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireDeleteOrPOST is a convenience function for DELETE/POST handlers.
func RequireDeleteOrPOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodDelete, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Formato de requisição inválido")
	}
	return nil
}

// ParseDeleteForm extracts form values for delete endpoints. ParseForm
// only reads request bodies for POST/PUT/PATCH, so DELETE bodies are
// decoded by hand; an empty body falls back to the query string.
func ParseDeleteForm(r *http.Request) (url.Values, *HTMXResponseBuilder) {
	if r.Method != http.MethodDelete {
		if resp := ParseFormOrFail(r); resp != nil {
			return nil, resp
		}
		return r.Form, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, BadRequestError("Formato de requisição inválido")
	}
	if len(body) == 0 {
		return r.URL.Query(), nil
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, BadRequestError("Formato de requisição inválido")
	}
	return values, nil
}
