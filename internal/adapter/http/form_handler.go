package http

import (
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/YelzhanWeb/pizzaform/internal/adapter/logger"
	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

const maxBodyBytes = 64 << 10

// FormHandler serves the order form as an HTML page and as a JSON event API.
type FormHandler struct {
	sessions *SessionStore
	logger   logger.Logger
	policy   *bluemonday.Policy
}

func NewFormHandler(sessions *SessionStore, logger logger.Logger) *FormHandler {
	return &FormHandler{
		sessions: sessions,
		logger:   logger,
		policy:   bluemonday.StrictPolicy(),
	}
}

// Register mounts the form routes on mux.
func (h *FormHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.ShowForm)
	mux.HandleFunc("POST /{$}", h.PostForm)

	mux.HandleFunc("GET /api/form", h.GetForm)
	mux.HandleFunc("POST /api/form/full-name", h.UpdateFullName)
	mux.HandleFunc("POST /api/form/size", h.UpdateSize)
	mux.HandleFunc("POST /api/form/toppings/{id}/toggle", h.ToggleTopping)
	mux.HandleFunc("POST /api/form/submit", h.Submit)
}

type FieldRequest struct {
	Value string `json:"value"`
}

type FormResponse struct {
	Form  interfaces.FormView `json:"form"`
	Error *ErrorPayload       `json:"error,omitempty"`
}

func (h *FormHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	_, form := h.sessions.Resolve(w, r)
	h.renderPage(w, r, http.StatusOK, form.View())
}

// PostForm applies a whole-form post: changed fields are updated one by one
// so each change re-validates, topping differences are toggled, and
// intent=submit submits. Posted topping ids are checked against the catalog
// before anything is applied.
func (h *FormHandler) PostForm(w http.ResponseWriter, r *http.Request) {
	_, form := h.sessions.Resolve(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	view := form.View()

	want := make(map[string]bool, len(r.PostForm["toppings"]))
	for _, id := range r.PostForm["toppings"] {
		want[id] = true
	}
	for id := range want {
		if !hasTopping(view, id) {
			h.logger.Debug("unknown_topping", "Form posted an unknown topping", RequestID(r.Context()), map[string]interface{}{
				"topping_id": id,
			})
			h.renderPage(w, r, http.StatusBadRequest, view)
			return
		}
	}

	var err error
	if values, ok := r.PostForm["fullName"]; ok && len(values) > 0 {
		if name := h.sanitize(values[0]); name != view.FullName {
			if view, err = form.UpdateFullName(name); err != nil {
				h.renderPage(w, r, httpStatus(err), view)
				return
			}
		}
	}
	if values, ok := r.PostForm["size"]; ok && len(values) > 0 {
		if size := domain.ParseSize(values[0]); size != view.Size {
			if view, err = form.UpdateSize(values[0]); err != nil {
				h.renderPage(w, r, httpStatus(err), view)
				return
			}
		}
	}
	for _, t := range view.Toppings {
		if want[t.ID] == t.Selected {
			continue
		}
		if view, err = form.ToggleTopping(t.ID); err != nil {
			h.renderPage(w, r, httpStatus(err), view)
			return
		}
	}

	status := http.StatusOK
	if r.PostForm.Get("intent") == "submit" {
		view, err = form.Submit(r.Context())
		status = httpStatus(err)
		h.logSubmit(r, err)
	}

	h.renderPage(w, r, status, view)
}

func hasTopping(view interfaces.FormView, id string) bool {
	for _, t := range view.Toppings {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	_, form := h.sessions.Resolve(w, r)
	h.respond(w, form.View(), nil)
}

func (h *FormHandler) UpdateFullName(w http.ResponseWriter, r *http.Request) {
	_, form := h.sessions.Resolve(w, r)

	req, ok := h.decodeField(w, r, form)
	if !ok {
		return
	}
	view, err := form.UpdateFullName(h.sanitize(req.Value))
	h.respond(w, view, err)
}

func (h *FormHandler) UpdateSize(w http.ResponseWriter, r *http.Request) {
	_, form := h.sessions.Resolve(w, r)

	req, ok := h.decodeField(w, r, form)
	if !ok {
		return
	}
	view, err := form.UpdateSize(req.Value)
	h.respond(w, view, err)
}

func (h *FormHandler) ToggleTopping(w http.ResponseWriter, r *http.Request) {
	_, form := h.sessions.Resolve(w, r)

	view, err := form.ToggleTopping(r.PathValue("id"))
	h.respond(w, view, err)
}

func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	_, form := h.sessions.Resolve(w, r)

	view, err := form.Submit(r.Context())
	h.logSubmit(r, err)
	h.respond(w, view, err)
}

func (h *FormHandler) decodeField(w http.ResponseWriter, r *http.Request, form interfaces.OrderFormService) (FieldRequest, bool) {
	var req FieldRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, FormResponse{
			Form:  form.View(),
			Error: &ErrorPayload{Kind: "bad_request", Message: "invalid JSON"},
		})
		return req, false
	}
	return req, true
}

// sanitizePasses bounds how many layers of entity encoding are peeled off.
const sanitizePasses = 4

// sanitize strips markup from free text while keeping plain characters such
// as '&' and apostrophes intact. Decoding can expose markup that was entity
// encoded, so passes repeat until the value is stable.
func (h *FormHandler) sanitize(value string) string {
	for i := 0; i < sanitizePasses; i++ {
		next := html.UnescapeString(h.policy.Sanitize(value))
		if next == value {
			return strings.TrimSpace(value)
		}
		value = next
	}
	// still unstable: keep the escaped text, never decoded markup
	return strings.TrimSpace(h.policy.Sanitize(value))
}

func (h *FormHandler) logSubmit(r *http.Request, err error) {
	requestID := RequestID(r.Context())
	switch {
	case err == nil:
		h.logger.Info("form_submitted", "Order form submitted", requestID, nil)
	case errors.Is(err, domain.ErrValidationFailed), errors.Is(err, domain.ErrSubmitInFlight):
		h.logger.Debug("form_submit_refused", "Order form not submitted", requestID, map[string]interface{}{
			"kind": errorKind(err),
		})
	default:
		h.logger.Error("form_submit_failed", "Order form submission failed", requestID, nil, err)
	}
}

func (h *FormHandler) respond(w http.ResponseWriter, view interfaces.FormView, err error) {
	writeJSON(w, httpStatus(err), FormResponse{Form: view, Error: errorPayload(err)})
}

func (h *FormHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, view interfaces.FormView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formTemplate.Execute(w, newFormPage(view)); err != nil {
		h.logger.Error("render_failed", "Failed to render form", RequestID(r.Context()), nil, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
