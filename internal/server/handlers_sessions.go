package server

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// keepAliveInterval is how often an idle event stream is pinged
var keepAliveInterval = 20 * time.Second

// CreateSessionRequest represents the JSON body for POST /sessions.
// Exactly one of Document and Record is expected; Document wins when both are set.
type CreateSessionRequest struct {
	Template string                `json:"template,omitempty"`
	Document *types.ResumeDocument `json:"document,omitempty"`
	Record   *types.ResumeRecord   `json:"record,omitempty"`
}

// SessionResponse represents a session and its current document
type SessionResponse struct {
	ID       string               `json:"id"`
	Template string               `json:"template"`
	Version  uint64               `json:"version"`
	Document types.ResumeDocument `json:"document"`
	Pending  []string             `json:"pending"`
}

// MutationResponse represents the result of one edit
type MutationResponse struct {
	Version  uint64               `json:"version"`
	Changed  bool                 `json:"changed"`
	EntryID  string               `json:"entry_id,omitempty"`
	Document types.ResumeDocument `json:"document"`
}

// ValueRequest carries the new value of a single text field
type ValueRequest struct {
	Value string `json:"value"`
}

// TemplateRequest selects a session template
type TemplateRequest struct {
	Template string `json:"template"`
}

// GenerationResponse represents a started or finished generation
type GenerationResponse struct {
	Target  string `json:"target"`
	State   string `json:"state"`
	Applied bool   `json:"applied,omitempty"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DocumentEvent is sent on the event stream after every change
type DocumentEvent struct {
	Version  uint64               `json:"version"`
	Document types.ResumeDocument `json:"document"`
}

func generationResult(res augment.Result) GenerationResponse {
	resp := GenerationResponse{
		Target:  res.Target.String(),
		State:   augment.Idle.String(),
		Applied: res.Applied,
		Text:    res.Text,
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	return resp
}

func (s *Server) sessionResponse(ls *liveSession) SessionResponse {
	cur := ls.session.Current()
	pending := make([]string, 0)
	for _, t := range ls.controller.Pending() {
		pending = append(pending, t.String())
	}
	return SessionResponse{
		ID:       ls.session.ID,
		Template: ls.session.Template(),
		Version:  cur.Version,
		Document: cur.Document,
		Pending:  pending,
	}
}

func (s *Server) mutationResponse(w http.ResponseWriter, ls *liveSession, status int, changed bool, entryID string) {
	cur := ls.session.Current()
	s.jsonResponse(w, status, MutationResponse{
		Version:  cur.Version,
		Changed:  changed,
		EntryID:  entryID,
		Document: cur.Document,
	})
}

// pathIndex parses the {index} path segment
func pathIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, &ErrValidation{Field: "index", Message: fmt.Sprintf("%q is not a valid index", raw)}
	}
	return i, nil
}

// handleCreateSession starts an editing session from an upload or a posted document
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	templateName := s.config.Template
	var doc types.ResumeDocument

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		filename, content, err := s.readUpload(w, r)
		if err != nil {
			s.failure(w, err)
			return
		}
		if name := r.FormValue("template"); name != "" {
			templateName = name
		}
		if _, err := templates.Lookup(templateName); err != nil {
			s.failure(w, err)
			return
		}

		record, _, err := s.parser.Parse(r.Context(), filename, content)
		if err != nil {
			s.failure(w, err)
			return
		}
		doc = portfolio.FromRecord(*record)
	} else {
		var req CreateSessionRequest
		if err := decodeJSON(r, &req); err != nil {
			s.failure(w, err)
			return
		}
		if req.Template != "" {
			templateName = req.Template
		}
		switch {
		case req.Document != nil:
			doc = portfolio.Normalize(*req.Document)
		case req.Record != nil:
			doc = portfolio.FromRecord(*req.Record)
		default:
			s.failure(w, &ErrValidation{Field: "document", Message: "a document or a record is required"})
			return
		}
	}

	if _, err := templates.Lookup(templateName); err != nil {
		s.failure(w, err)
		return
	}

	ls := s.register(s.store.Create(doc, templateName))
	s.logger.Info("session created", zap.String("session_id", ls.session.ID), zap.String("template", templateName))
	s.jsonResponse(w, http.StatusCreated, s.sessionResponse(ls))
}

// handleGetSession returns the session document, template, version and pending generations
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(ls))
}

// handleDeleteSession discards a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.Delete(id) {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetTemplate switches the template used for previews and exports
func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	var req TemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if _, err := templates.Lookup(req.Template); err != nil {
		s.failure(w, err)
		return
	}

	ls.session.SetTemplate(req.Template)
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(ls))
}

// handleSetPersonalField replaces one personal detail
func (s *Server) handleSetPersonalField(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	var req ValueRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err)
		return
	}

	if err := ls.session.SetPersonalField(r.PathValue("field"), req.Value); err != nil {
		s.failure(w, err)
		return
	}
	s.mutationResponse(w, ls, http.StatusOK, true, "")
}

// handleSetBio replaces the bio
func (s *Server) handleSetBio(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	var req ValueRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err)
		return
	}

	ls.session.SetBio(req.Value)
	s.mutationResponse(w, ls, http.StatusOK, true, "")
}

// handleAddSkill appends a skill. Blank and duplicate skills leave the document unchanged.
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	var req ValueRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err)
		return
	}

	changed := ls.session.AddSkill(req.Value)
	status := http.StatusOK
	if changed {
		status = http.StatusCreated
	}
	s.mutationResponse(w, ls, status, changed, "")
}

// handleRemoveSkill removes the skill at {index}
func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	if !ls.session.RemoveSkill(index) {
		s.failure(w, &portfolio.IndexOutOfRangeError{
			List:   "skills",
			Index:  index,
			Length: len(ls.session.Snapshot().Skills),
		})
		return
	}
	s.mutationResponse(w, ls, http.StatusOK, true, "")
}

// handleAppendEntry appends a blank entry to {list}
func (s *Server) handleAppendEntry(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	list, err := portfolio.ParseList(r.PathValue("list"))
	if err != nil {
		s.failure(w, err)
		return
	}

	id, err := ls.session.AppendEntry(list)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.mutationResponse(w, ls, http.StatusCreated, true, id)
}

// handleSetEntryField replaces one field of the entry at {list}[{index}]
func (s *Server) handleSetEntryField(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	list, err := portfolio.ParseList(r.PathValue("list"))
	if err != nil {
		s.failure(w, err)
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	var req ValueRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err)
		return
	}

	if err := ls.session.SetEntryField(list, index, r.PathValue("field"), req.Value); err != nil {
		s.failure(w, err)
		return
	}
	s.mutationResponse(w, ls, http.StatusOK, true, "")
}

// handleRemoveEntry removes the entry at {list}[{index}]
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	list, err := portfolio.ParseList(r.PathValue("list"))
	if err != nil {
		s.failure(w, err)
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	if err := ls.session.RemoveEntry(list, index); err != nil {
		s.failure(w, err)
		return
	}
	s.mutationResponse(w, ls, http.StatusOK, true, "")
}

// handleStartGeneration starts a generation for {target}.
// With ?wait=true the response is held until the result has been applied.
func (s *Server) handleStartGeneration(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	target, err := augment.ParseTarget(r.PathValue("target"))
	if err != nil {
		s.failure(w, err)
		return
	}

	task, err := ls.controller.Start(r.Context(), target)
	if err != nil {
		s.failure(w, err)
		return
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		select {
		case <-task.Done():
			res := task.Result()
			status := http.StatusOK
			if res.Err != nil {
				status = HTTPStatus(res.Err)
			}
			s.jsonResponse(w, status, generationResult(res))
		case <-r.Context().Done():
		}
		return
	}

	s.jsonResponse(w, http.StatusAccepted, GenerationResponse{
		Target: target.String(),
		State:  augment.Pending.String(),
	})
}

// handleEvents streams document changes and finished generations
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}

	stream, err := newEventStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	docs, stopDocs := ls.session.Subscribe()
	defer stopDocs()
	results, stopResults := ls.listen()
	defer stopResults()

	cur := ls.session.Current()
	if err := stream.send(documentEvent(cur)); err != nil {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ls.Closed():
			stream.fail("session closed")
			return
		case ev, ok := <-docs:
			if !ok {
				return
			}
			if err := stream.send(documentEvent(ev)); err != nil {
				return
			}
		case res, ok := <-results:
			if !ok {
				return
			}
			if err := stream.send(sseEvent{Name: eventGeneration, Data: generationResult(res)}); err != nil {
				return
			}
		case <-ticker.C:
			if err := stream.ping(); err != nil {
				return
			}
		}
	}
}

// handleExport downloads the session document as self-contained HTML, or as PDF with ?format=pdf.
// ?template= overrides the session template for this export only.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookup(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}

	name := r.URL.Query().Get("template")
	if name == "" {
		name = ls.session.Template()
	}
	snapshot := ls.session.Snapshot()

	html, err := export.Render(snapshot, name)
	if err != nil {
		s.failure(w, err)
		return
	}

	switch format := strings.ToLower(r.URL.Query().Get("format")); format {
	case "", "html":
		s.download(w, "text/html; charset=utf-8", export.Filename(snapshot), html)
	case "pdf":
		if s.printer == nil {
			s.failure(w, &ErrUnavailable{Feature: "PDF export"})
			return
		}
		pdf, err := s.printer.Print(r.Context(), html)
		if err != nil {
			s.failure(w, err)
			return
		}
		s.download(w, "application/pdf", export.PDFFilename(snapshot), pdf)
	default:
		s.failure(w, &ErrValidation{Field: "format", Message: fmt.Sprintf("unsupported export format %q (want html or pdf)", format)})
	}
}

func (s *Server) download(w http.ResponseWriter, contentType, filename string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		s.logger.Debug("export download interrupted", zap.Error(err))
	}
}
