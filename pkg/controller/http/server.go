package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/utils/errutil"
	"github.com/netmon-lab/tacdesk/pkg/utils/logging"
	"github.com/netmon-lab/tacdesk/pkg/utils/safe"
)

// Server is a local stand-in for the case-agent backend. It serves the
// same REST surface the real backend exposes, backed by an in-memory
// Store, for development and client tests.
type Server struct {
	router *chi.Mux
	store  *Store
}

// Options configures a Server
type Options func(*Server)

// WithStore uses a pre-populated store instead of an empty one
func WithStore(store *Store) Options {
	return func(s *Server) {
		s.store = store
	}
}

// New creates a stub backend server
func New(opts ...Options) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  NewStore(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Post("/cases", s.handleCreateCase)
	r.Get("/cases", s.handleListCases)
	r.Get("/case/{caseID}", s.handleGetCase)
	r.Post("/cases/{caseID}/action", s.handleSubmitAction)
	r.Post("/cases/{caseID}/update", s.handleUpdateCase)
	r.Get("/plan/status/{planID}", s.handlePlanStatus)
	r.Get("/case/status/{taskID}", s.handleTaskStatus)
	r.Get("/case/{caseID}/evidence/{evidenceType}", s.handleGetEvidence)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/context-options", s.handleContextOptions)
		r.Route("/cases/{caseID}", func(r chi.Router) {
			r.Put("/platforms", s.handleUpdatePlatforms)
			r.Put("/reported-issue", s.handleUpdateReportedIssue)
			r.Post("/network-info", s.handleUpdateNetworkInfo)
			r.Post("/notes", s.handleCreateNote)
			r.Put("/notes/{noteID}", s.handleUpdateNote)
			r.Delete("/notes/{noteID}", s.handleDeleteNote)
		})
	})

	r.Post("/upload_kb", s.handleUploadKB)
	r.Post("/analyze_case", s.handleAnalyzeCase)
	r.Post("/ask", s.handleAsk)

	return s
}

// Store exposes the backing store, mainly for test seeding
func (s *Server) Store() *Store {
	return s.store
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// writeDetail reports a failure as {"detail": "..."}, the error shape the
// client surfaces verbatim.
func writeDetail(ctx context.Context, w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, mustJSON(map[string]string{"detail": detail}))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.From(ctx).Error("failed to encode response", "error", err.Error())
		writeDetail(ctx, w, http.StatusInternalServerError, "internal encoding error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

func mustJSON(body any) []byte {
	data, err := json.Marshal(body)
	if err != nil {
		return []byte(`{"detail":"internal encoding error"}`)
	}
	return data
}

// writeStoreError maps store errors to HTTP statuses
func writeStoreError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCaseNotFound), errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrNoteNotFound):
		writeDetail(ctx, w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCaseExists):
		writeDetail(ctx, w, http.StatusConflict, err.Error())
	default:
		_ = errutil.Handle(ctx, err, "request rejected")
		writeDetail(ctx, w, http.StatusBadRequest, err.Error())
	}
}

func decodeBody(r *http.Request, out any) error {
	defer safe.Close(r.Context(), r.Body)
	return json.NewDecoder(r.Body).Decode(out)
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID       types.CaseID       `json:"case_id"`
		ProblemAreas []types.PlatformID `json:"problem_areas"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.CreateCase(req.CaseID, req.ProblemAreas); err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, map[string]types.CaseID{"case_id": req.CaseID})
}

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	ids := s.store.ListCases()
	if ids == nil {
		ids = []types.CaseID{}
	}
	writeJSON(r.Context(), w, http.StatusOK, ids)
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	c, err := s.store.GetCase(id)
	if err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, c)
}

func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	var req struct {
		UserInput string `json:"user_input"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := s.store.SubmitAction(id, req.UserInput)
	if err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, plan)
}

func (s *Server) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	var req struct {
		UserInput string `json:"user_input"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := s.store.mutateCase(id, func(c *model.Case) error {
		c.NextSteps = req.UserInput
		return nil
	})
	if err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handlePlanStatus(w http.ResponseWriter, r *http.Request) {
	id := types.PlanID(chi.URLParam(r, "planID"))
	plan, err := s.store.GetPlan(id)
	if err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, plan)
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := types.TaskID(chi.URLParam(r, "taskID"))
	task, err := s.store.GetTask(id)
	if err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, task)
}

func (s *Server) handleGetEvidence(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	evidenceType := types.EvidenceType(chi.URLParam(r, "evidenceType"))
	content, err := s.store.GetEvidence(id, evidenceType)
	if err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	safe.Write(r.Context(), w, []byte(content))
}

func (s *Server) handleUpdatePlatforms(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	var req struct {
		AffectedPlatforms []types.PlatformID `json:"affected_platforms"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.UpdatePlatforms(id, req.AffectedPlatforms); err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleUpdateReportedIssue(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.UpdateReportedIssue(id, req.Content); err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleUpdateNetworkInfo(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	var req struct {
		NetworkInfo map[string]string `json:"network_info"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.UpdateNetworkInfo(id, req.NetworkInfo); err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	note, err := s.store.CreateNote(id, req.Content)
	if err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	noteID := types.NoteID(chi.URLParam(r, "noteID"))
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.UpdateNote(id, noteID, req.Content); err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	noteID := types.NoteID(chi.URLParam(r, "noteID"))
	if err := s.store.DeleteNote(id, noteID); err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleContextOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, defaultContextOptions())
}

// defaultContextOptions is the fixed option catalog the stub serves
func defaultContextOptions() *model.ContextOptions {
	return &model.ContextOptions{
		Platforms: []model.PlatformOption{
			{
				Name:             "E7-2",
				SoftwareVersions: []string{"2.7", "3.1", "3.4"},
				OLTCardTypes:     []string{"GPON-4", "GPON-8", "XGS-PON"},
			},
			{
				Name:             "E9-2",
				SoftwareVersions: []string{"3.4", "4.0"},
				OLTCardTypes:     []string{"XG-801", "XG-1601"},
			},
		},
		ONTModels:    []string{"812G", "844G", "844E"},
		TypeOfCard:   []string{"line card", "uplink card", "controller card"},
		AxosVersions: []string{"21.3", "22.1", "23.2"},
		SMXVersions:  []string{"23.4", "24.1"},
	}
}

// uploadSizeLimit mirrors the real backend's ingestion cap
const uploadSizeLimit = 32 << 20

func (s *Server) handleUploadKB(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadSizeLimit); err != nil {
		writeDetail(r.Context(), w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "file field is required")
		return
	}
	defer safe.Close(r.Context(), file)

	if _, err := io.Copy(io.Discard, file); err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	s.store.AddKnowledgeDoc(header.Filename)
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"message": "Document '" + header.Filename + "' ingested into the knowledge base",
	})
}

func (s *Server) handleAnalyzeCase(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadSizeLimit); err != nil {
		writeDetail(r.Context(), w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	caseID := types.CaseID(r.FormValue("case_id"))
	reportedIssue := r.FormValue("reported_issue")

	file, _, err := r.FormFile("log_file")
	if err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "log_file field is required")
		return
	}
	defer safe.Close(r.Context(), file)

	logContent, err := io.ReadAll(file)
	if err != nil {
		writeDetail(r.Context(), w, http.StatusBadRequest, "failed to read log file")
		return
	}

	taskID, err := s.store.StartAnalysis(caseID, reportedIssue, logContent)
	if err != nil {
		writeStoreError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusAccepted, map[string]types.TaskID{"task_id": taskID})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := decodeBody(r, &req); err != nil || req.Question == "" {
		writeDetail(r.Context(), w, http.StatusBadRequest, "question is required")
		return
	}

	sources := []model.SourceDocument{}
	for _, doc := range s.store.KnowledgeDocs() {
		sources = append(sources, model.SourceDocument{
			PageContent: "Excerpt from " + doc,
			Metadata:    model.SourceMetadata{Source: doc, Page: 1},
		})
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"answer":           "Based on the knowledge base, verify the ONT provisioning state first.",
		"source_documents": sources,
	})
}
