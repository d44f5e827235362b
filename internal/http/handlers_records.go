package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"grana/internal/core"
	"grana/internal/store"
)

type recordRow struct {
	ID          int64
	Date        string
	Owner       string
	Category    string
	Kind        string
	Amount      string
	Description string
}

// handleListRecords renders the filtered record list partial.
// Criteria arrive as query parameters and are ANDed together.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := ParseFilter(r.URL.Query())

	records, err := s.lister.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records error", "error", err)
		_, _ = w.Write([]byte(`<section id="records" class="records"><div class="placeholder">Erro ao carregar os lançamentos</div></section>`))
		return
	}

	matched := filter.Apply(records)

	data := struct {
		Rows  []recordRow
		Count int
	}{Count: len(matched)}
	for _, rec := range matched {
		data.Rows = append(data.Rows, recordRow{
			ID:          rec.ID,
			Date:        rec.Date.Format("02/01/2006"),
			Owner:       rec.Owner,
			Category:    rec.Category,
			Kind:        string(rec.Kind),
			Amount:      formatReais(rec.Amount.Cents),
			Description: rec.Description,
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="records" class="records"><div class="placeholder">Lançamentos: ` + strconv.Itoa(data.Count) + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "records.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "records.html")
		_, _ = w.Write([]byte(`<section id="records" class="records"><div class="placeholder">Erro ao renderizar os lançamentos</div></section>`))
	}
}

// handleCreateRecord persists a new record from the entry form.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	form := ParseRecordForm(r.Form)
	rec, errResp := form.ToRecord()
	if errResp != nil {
		recordWrites.WithLabelValues("create", "rejected").Inc()
		errResp.Write(w)
		return
	}

	created, err := s.creator.Create(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Record create error", "error", err,
			"owner", rec.Owner, "amount_cents", rec.Amount.Cents)
		recordWrites.WithLabelValues("create", "error").Inc()
		InternalServerError("Erro ao salvar o lançamento").Write(w)
		return
	}

	recordWrites.WithLabelValues("create", "ok").Inc()
	s.flushDashboard()

	NewHTMXResponse().
		TriggerRecordCreated(created.ID).
		TriggerFormReset().
		TriggerSuccessNotification("Lançamento registrado: " + created.Description).
		BodyHTML(`<div class="success">Lançamento registrado: ` +
			template.HTMLEscapeString(created.Owner) + ` — ` +
			template.HTMLEscapeString(formatReais(created.Amount.Cents)) + `</div>`).
		Write(w)
}

// handleUpdateRecord applies a partial update to an existing record.
// Empty form fields leave the stored value unchanged.
func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id, errResp := ParseID(r.Form, "id")
	if errResp != nil {
		errResp.Write(w)
		return
	}

	patch, errResp := patchFromForm(ParseRecordForm(r.Form))
	if errResp != nil {
		recordWrites.WithLabelValues("update", "rejected").Inc()
		errResp.Write(w)
		return
	}
	if patch.Empty() {
		recordWrites.WithLabelValues("update", "rejected").Inc()
		UnprocessableEntityError("Nenhuma alteração informada").Write(w)
		return
	}

	updated, err := s.updater.Update(r.Context(), id, patch)
	if err != nil {
		if isNotFound(err) {
			NotFoundError("Lançamento não encontrado").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Record update error", "error", err, "id", id)
		recordWrites.WithLabelValues("update", "error").Inc()
		UnprocessableEntityError("Dados inválidos: " + err.Error()).Write(w)
		return
	}

	recordWrites.WithLabelValues("update", "ok").Inc()
	s.flushDashboard()

	NewHTMXResponse().
		TriggerRecordUpdated(updated.ID).
		TriggerSuccessNotification("Lançamento atualizado").
		BodyHTML(`<div class="success">Lançamento atualizado</div>`).
		Write(w)
}

// handleDeleteRecord removes a record. Accepts DELETE and POST since
// HTML forms cannot issue DELETE.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	form, errResp := ParseDeleteForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	id, errResp := ParseID(form, "id")
	if errResp != nil {
		errResp.Write(w)
		return
	}

	if err := s.deleter.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			NotFoundError("Lançamento não encontrado").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Record delete error", "error", err, "id", id)
		recordWrites.WithLabelValues("delete", "error").Inc()
		InternalServerError("Erro ao excluir o lançamento").Write(w)
		return
	}

	recordWrites.WithLabelValues("delete", "ok").Inc()
	s.flushDashboard()

	NewHTMXResponse().
		TriggerRecordDeleted(id).
		TriggerSuccessNotification("Lançamento excluído").
		BodyHTML(`<div class="success">Lançamento excluído</div>`).
		Write(w)
}

// patchFromForm builds a partial update from the posted fields; empty
// fields are omitted from the patch.
func patchFromForm(form RecordForm) (store.RecordPatch, *HTMXResponseBuilder) {
	var patch store.RecordPatch

	if form.Date != "" {
		date, err := parseDate(form.Date)
		if err != nil {
			return store.RecordPatch{}, UnprocessableEntityError("Data inválida")
		}
		t := date.Time
		patch.Date = &t
	}
	if form.Owner != "" {
		patch.Owner = &form.Owner
	}
	if form.Category != "" {
		patch.Category = &form.Category
	}
	if form.Kind != "" {
		kind := core.Kind(form.Kind)
		if !kind.Valid() {
			return store.RecordPatch{}, UnprocessableEntityError("Tipo inválido")
		}
		patch.Kind = &kind
	}
	if form.Amount != "" {
		cents, err := core.ParseDecimalToCents(form.Amount)
		if err != nil {
			return store.RecordPatch{}, UnprocessableEntityError("Valor inválido")
		}
		patch.Amount = &cents
	}
	if form.Description != "" {
		patch.Description = &form.Description
	}

	return patch, nil
}

// isNotFound matches the shared not-found sentinel, unwrapping the
// service layer's context prefixes.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
