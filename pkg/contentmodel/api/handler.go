package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/content-model/pkg/contentmodel"
)

// AttributeResponse describes a declared attribute
type AttributeResponse struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Type       string `json:"type,omitempty"`
	Default    any    `json:"default,omitempty"`
	HasDefault bool   `json:"has_default"`
}

// TypeResponse is the response body for a content type
type TypeResponse struct {
	ID            string              `json:"id"`
	Attributes    []AttributeResponse `json:"attributes"`
	Actions       []string            `json:"actions"`
	LiveInstances []string            `json:"live_instances"`
}

// InstanceResponse is the response body for a content instance
type InstanceResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	ParentID string         `json:"parent_id,omitempty"`
	Removed  bool           `json:"removed"`
	Attrs    map[string]any `json:"attrs"`
}

// CreateInstanceRequest is the request body for creating an instance
type CreateInstanceRequest struct {
	Props    map[string]any `json:"props"`
	ParentID string         `json:"parent_id,omitempty"`
}

// SetAttributeRequest is the request body for assigning an attribute
type SetAttributeRequest struct {
	Value any `json:"value"`
}

// CallActionRequest is the request body for calling an action
type CallActionRequest struct {
	Args []any `json:"args"`
}

// Handler exposes a registry over HTTP. The engine is single-threaded, so
// every request runs under one mutex.
type Handler struct {
	mu        sync.Mutex
	registry  *contentmodel.Registry
	instances map[uuid.UUID]*contentmodel.Instance
	watched   map[*contentmodel.Type]bool
}

// NewHandler creates a handler over reg. Instances created through the
// registry's types after this call, by any caller, become addressable by id.
func NewHandler(reg *contentmodel.Registry) *Handler {
	h := &Handler{
		registry:  reg,
		instances: make(map[uuid.UUID]*contentmodel.Instance),
		watched:   make(map[*contentmodel.Type]bool),
	}

	for _, t := range reg.Types() {
		h.watch(t)
		for _, inst := range t.Instances() {
			h.instances[inst.ID()] = inst
		}
	}
	reg.On(contentmodel.EventDefine, func(args ...any) {
		if t, ok := args[0].(*contentmodel.Type); ok {
			h.watch(t)
		}
	})

	return h
}

// watch indexes instances created from t. Callers hold h.mu or run before
// the handler is shared.
func (h *Handler) watch(t *contentmodel.Type) {
	if h.watched[t] {
		return
	}
	h.watched[t] = true
	t.On(contentmodel.EventInit, func(args ...any) {
		if inst, ok := args[0].(*contentmodel.Instance); ok {
			h.instances[inst.ID()] = inst
		}
	})
}

// Routes returns the routes for types and instances
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})

	r.Route("/types", func(r chi.Router) {
		r.Get("/", h.ListTypes)
		r.Get("/{id}", h.GetType)
		r.Put("/{id}", h.DefineType)
		r.Post("/{id}/instances", h.CreateInstance)
		r.Post("/{id}/changed/{attr}", h.Changed)
	})

	r.Route("/instances", func(r chi.Router) {
		r.Get("/{iid}", h.GetInstance)
		r.Delete("/{iid}", h.RemoveInstance)
		r.Get("/{iid}/attrs/{path}", h.GetAttribute)
		r.Put("/{iid}/attrs/{name}", h.SetAttribute)
		r.Post("/{iid}/actions/{name}", h.CallAction)
	})

	return r
}

// ListTypes lists every registered type
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	types := h.registry.Types()
	resp := make([]TypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, typeResponse(t))
	}
	render.JSON(w, r, resp)
}

// GetType returns one type's schema
func (h *Handler) GetType(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, err := h.lookupType(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, typeResponse(t))
}

// DefineType defines a type, returning 201 when it did not exist before
func (h *Handler) DefineType(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := chi.URLParam(r, "id")
	_, existed := h.registry.Lookup(id)
	t := h.registry.Get(id)
	if !existed {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, typeResponse(t))
}

// CreateInstance initializes a new instance of a type
func (h *Handler) CreateInstance(w http.ResponseWriter, r *http.Request) {
	var req CreateInstanceRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	t, err := h.lookupType(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	props := req.Props
	if req.ParentID != "" {
		parent, err := h.lookupInstance(req.ParentID)
		if err != nil {
			slog.Error("Invalid parent ID", "parent_id", req.ParentID, "error", err)
			writeError(w, err)
			return
		}
		if props == nil {
			props = make(map[string]any, 1)
		}
		props["parent"] = parent
	}

	inst := t.Init(props)
	h.instances[inst.ID()] = inst

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, instanceResponse(inst))
}

// Changed broadcasts a change of attr to every live instance of a type
func (h *Handler) Changed(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, err := h.lookupType(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	n := t.Changed(chi.URLParam(r, "attr"))
	render.JSON(w, r, map[string]int{"notified": n})
}

// GetInstance returns an instance and its own attributes
func (h *Handler) GetInstance(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	inst, err := h.lookupInstance(chi.URLParam(r, "iid"))
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, instanceResponse(inst))
}

// GetAttribute resolves a dot-separated attribute path
func (h *Handler) GetAttribute(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	inst, err := h.lookupInstance(chi.URLParam(r, "iid"))
	if err != nil {
		writeError(w, err)
		return
	}
	path := chi.URLParam(r, "path")
	render.JSON(w, r, map[string]any{
		"path":  path,
		"value": present(inst.Get(path)),
	})
}

// SetAttribute assigns an own attribute value
func (h *Handler) SetAttribute(w http.ResponseWriter, r *http.Request) {
	var req SetAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	inst, err := h.lookupInstance(chi.URLParam(r, "iid"))
	if err != nil {
		writeError(w, err)
		return
	}

	name := chi.URLParam(r, "name")
	previous := inst.Attrs()[name]
	inst.Set(name, req.Value)

	render.JSON(w, r, map[string]any{
		"name":     name,
		"value":    present(req.Value),
		"previous": present(previous),
	})
}

// CallAction invokes a named action on an instance
func (h *Handler) CallAction(w http.ResponseWriter, r *http.Request) {
	var req CallActionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	inst, err := h.lookupInstance(chi.URLParam(r, "iid"))
	if err != nil {
		writeError(w, err)
		return
	}

	name := chi.URLParam(r, "name")
	if !inst.Responds(name) {
		http.Error(w, "action not found", http.StatusNotFound)
		return
	}
	result := inst.Call(name, req.Args...)
	render.JSON(w, r, map[string]any{"result": present(result)})
}

// RemoveInstance removes an instance from its type. The instance stays
// addressable.
func (h *Handler) RemoveInstance(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	inst, err := h.lookupInstance(chi.URLParam(r, "iid"))
	if err != nil {
		writeError(w, err)
		return
	}
	inst.Remove()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) lookupType(id string) (*contentmodel.Type, error) {
	t, ok := h.registry.Lookup(id)
	if !ok {
		return nil, &contentmodel.TypeError{TypeID: id, Op: "lookup", Err: contentmodel.ErrTypeNotFound}
	}
	return t, nil
}

func (h *Handler) lookupInstance(idStr string) (*contentmodel.Instance, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errInvalidID
	}
	inst, ok := h.instances[id]
	if !ok {
		return nil, contentmodel.ErrInstanceNotFound
	}
	return inst, nil
}

var errInvalidID = errors.New("invalid instance id")

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errInvalidID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, contentmodel.ErrTypeNotFound), errors.Is(err, contentmodel.ErrInstanceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("Request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
