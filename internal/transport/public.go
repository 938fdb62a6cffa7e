package transport

import (
	"errors"
	"net/http"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/domain/comment"
	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/rpggio/portfolio/internal/resume"
)

type commentRequest struct {
	Name    string `json:"name" validate:"required,max=80"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// handleIndex serves the landing page. Only a GET that actually serves the
// page counts as a view.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	path := s.indexPath()
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		if err := s.svc.Gate.View(r.Context(), ClientKey(r), s.opts.Now()); err != nil {
			s.logger.Error("failed to count view", "error", err)
		}
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	agg, err := s.svc.Stats.Aggregate(r.Context())
	if err != nil {
		s.internalError(w, "failed to read stats", err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Gate.Like(r.Context(), ClientKey(r), s.opts.Now())
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, "ok")
	case errors.Is(err, counter.ErrRateLimited):
		writeStatus(w, http.StatusTooManyRequests, "blocked")
	default:
		s.internalError(w, "failed to record like", err)
	}
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.svc.Comments.List(r.Context())
	if err != nil {
		s.internalError(w, "failed to list comments", err)
		return
	}

	views := make([]comment.View, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.View())
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Comment = strings.TrimSpace(req.Comment)

	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment", fieldErrors(err))
		return
	}

	if _, err := s.svc.Comments.Append(r.Context(), req.Name, req.Comment); err != nil {
		if errors.Is(err, comment.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid comment", nil)
			return
		}
		s.internalError(w, "failed to save comment", err)
		return
	}
	writeStatus(w, http.StatusOK, "saved")
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.svc.Catalog.ListAchievements(r.Context())
	if err != nil {
		s.internalError(w, "failed to list achievements", err)
		return
	}

	views := make([]catalog.AchievementView, 0, len(achievements))
	for _, a := range achievements {
		views = append(views, a.View())
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ProjectFilter{Status: catalog.ProjectStatus(r.URL.Query().Get("status"))}

	projects, err := s.svc.Catalog.ListProjects(r.Context(), filter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid status filter", map[string]string{
				"status": "must be completed or ongoing",
			})
			return
		}
		s.internalError(w, "failed to list projects", err)
		return
	}

	views := make([]catalog.ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, p.View())
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	f, err := s.svc.Resumes.Open()
	if errors.Is(err, resume.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("failed to open resume", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.logger.Error("failed to stat resume", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeContent(w, r, "resume.pdf", info.ModTime(), f)
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error", nil)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// fieldErrors flattens validator errors into field -> failed rule.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			fields[fe.Field()] = fe.Tag() + "=" + fe.Param()
			continue
		}
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
