// Package server exposes a tree editor over HTTP.
//
// The server owns one live editor per document name. Mutations arrive
// as JSON requests, run through the editor (which recomputes the
// layout), and are pushed to websocket subscribers so every connected
// client sees the same tree without polling.
//
// # Endpoints
//
//	GET    /healthz                  liveness probe
//	GET    /api/tree                 current document
//	POST   /api/nodes                add a node {"parent": id}
//	DELETE /api/nodes/{id}           remove a subtree
//	PUT    /api/selection            select a node {"id": id}
//	GET    /api/nodes/{id}/relatives uncle/aunt/descendant lookup
//	GET    /api/documents            list stored documents
//	POST   /api/documents/{name}     save the live tree under name
//	PUT    /api/documents/{name}     load a stored document into the editor
//	GET    /render/svg               rendered SVG of the live tree
//	GET    /ws                       websocket change feed
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/render/svg"
	"github.com/matzehuels/arbor/pkg/store"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/treefile"
)

// Server wires the editor, store, cache, and websocket hub together.
type Server struct {
	logger *log.Logger
	editor *editor.Editor
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	hub    *Hub
	cfg    config.ServerConfig
}

// New creates a server around an editor. The store may be nil when
// persistence is disabled; the cache may be a NullCache.
func New(logger *log.Logger, ed *editor.Editor, st store.Store, ca cache.Cache, cfg config.ServerConfig) *Server {
	s := &Server{
		logger: logger,
		editor: ed,
		store:  st,
		cache:  ca,
		keyer:  cache.NewDefaultKeyer(),
		hub:    NewHub(logger),
		cfg:    cfg,
	}
	// Every editor change fans out to websocket subscribers.
	ed.Subscribe(func(ev editor.Event) {
		s.hub.Broadcast(changeNotification(ev, ed))
	})
	return s
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.hub.HandleSubscribe)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleGetTree)
		r.Post("/nodes", s.handleAddNode)
		r.Delete("/nodes/{id}", s.handleRemoveNode)
		r.Get("/nodes/{id}/relatives", s.handleRelatives)
		r.Put("/selection", s.handleSelect)

		r.Get("/documents", s.handleListDocuments)
		r.Post("/documents/{name}", s.handleSaveDocument)
		r.Put("/documents/{name}", s.handleLoadDocument)
	})

	r.Get("/render/svg", s.handleRenderSVG)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout.Std(),
		WriteTimeout: s.cfg.WriteTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Std())
	defer cancel()
	s.hub.Close()
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	doc := treefile.FromTree(s.editor.Snapshot(), s.editor.Engine())
	writeJSON(w, http.StatusOK, doc)
}

type addNodeRequest struct {
	Parent int `json:"parent"`
}

type addNodeResponse struct {
	ID int `json:"id"`
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req addNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	id, err := s.editor.AddNode(tree.NodeID(req.Parent))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidParent, err, "add node under %d", req.Parent))
		return
	}
	writeJSON(w, http.StatusCreated, addNodeResponse{ID: int(id)})
}

func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	removed := s.editor.RemoveNode(tree.NodeID(id))
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

type selectRequest struct {
	ID int `json:"id"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	s.editor.Select(tree.NodeID(req.ID))
	w.WriteHeader(http.StatusNoContent)
}

type relativesResponse struct {
	LeftUncle           *int `json:"left_uncle"`
	RightAunt           *int `json:"right_aunt"`
	LeftmostDescendant  *int `json:"leftmost_descendant"`
	RightmostDescendant *int `json:"rightmost_descendant"`
}

func (s *Server) handleRelatives(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	snap := s.editor.Snapshot()
	if _, ok := snap.Node(tree.NodeID(id)); !ok {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "node %d not found", id))
		return
	}

	var resp relativesResponse
	if rel, ok := layout.LeftUncle(snap, tree.NodeID(id)); ok {
		resp.LeftUncle = intPtr(rel)
	}
	if rel, ok := layout.RightAunt(snap, tree.NodeID(id)); ok {
		resp.RightAunt = intPtr(rel)
	}
	if rel, ok := layout.LeftmostDescendant(snap, tree.NodeID(id)); ok {
		resp.LeftmostDescendant = intPtr(rel)
	}
	if rel, ok := layout.RightmostDescendant(snap, tree.NodeID(id)); ok {
		resp.RightmostDescendant = intPtr(rel)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "no document store configured"))
		return
	}
	records, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSaveDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "no document store configured"))
		return
	}
	name := chi.URLParam(r, "name")
	doc := treefile.FromTree(s.editor.Snapshot(), s.editor.Engine())
	rec, err := s.store.Save(r.Context(), name, doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "no document store configured"))
		return
	}
	name := chi.URLParam(r, "name")
	rec, err := s.store.Load(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := rec.Document.ToTree()
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "document %q is malformed", name))
		return
	}
	s.editor.Replace(t)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	snap := s.editor.Snapshot()
	doc := treefile.FromTree(snap, s.editor.Engine())

	data, _ := json.Marshal(doc)
	key := s.keyer.RenderKey(cache.Hash(data), cache.RenderKeyOpts{Format: "svg"})

	if cached, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		writeSVG(w, cached)
		return
	}

	out := svg.Render(snap, svg.WithSelection(), svg.WithLabels())
	if err := s.cache.Set(r.Context(), key, out, time.Hour); err != nil {
		s.logger.Warn("cache render", "err", err)
	}
	writeSVG(w, out)
}

// =============================================================================
// Response Helpers
// =============================================================================

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidNodeID, "invalid node id %q", raw)
	}
	return id, nil
}

func intPtr(id tree.NodeID) *int {
	v := int(id)
	return &v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSVG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidParent,
		errors.ErrCodeInvalidNodeID, errors.ErrCodeInvalidDocument:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeNodeNotFound,
		errors.ErrCodeDocumentNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}
