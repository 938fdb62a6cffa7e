package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/domain/comment"
	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/rpggio/portfolio/internal/resume"
)

// recentActivityLimit is how many audit entries the dashboard shows.
const recentActivityLimit = 20

type pageData struct {
	Nav   bool
	Error string
}

type dashboardPage struct {
	pageData
	Stats        counter.Aggregate
	LikeCooldown time.Duration
	ViewCooldown time.Duration
	Comments     int
	Achievements int
	Activity     []activity.ActivityEntry
}

type achievementsPage struct {
	pageData
	Achievements []catalog.Achievement
}

type commentsPage struct {
	pageData
	Comments []comment.Comment
}

type resumePage struct {
	pageData
	Success bool
	Present bool
}

func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data any) {
	if err := s.pages.render(w, status, name, data); err != nil {
		s.logger.Error("failed to render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "login", pageData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, "login", pageData{Error: "Invalid request"})
		return
	}

	token, err := s.svc.Auth.Login(r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, admin.ErrNotConfigured) {
			s.logger.Warn("admin login attempted without a configured password")
		}
		s.renderPage(w, http.StatusUnauthorized, "login", pageData{Error: "Invalid password"})
		return
	}

	setSessionCookie(w, token, s.svc.Auth.TTL(), s.opts.CookieSecure)
	s.svc.Activity.Record(r.Context(), activity.TypeAdminLogin, "Admin signed in from "+ClientKey(r))
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, s.opts.CookieSecure)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.svc.Stats.Aggregate(ctx)
	if err != nil {
		s.pageError(w, "failed to read stats", err)
		return
	}
	comments, err := s.svc.Comments.Count(ctx)
	if err != nil {
		s.pageError(w, "failed to count comments", err)
		return
	}
	achievements, err := s.svc.Catalog.ListAllAchievements(ctx)
	if err != nil {
		s.pageError(w, "failed to list achievements", err)
		return
	}
	entries, err := s.svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{Limit: recentActivityLimit})
	if err != nil {
		s.pageError(w, "failed to list activity", err)
		return
	}

	likeCooldown, _ := s.svc.Gate.Cooldown(counter.KindLike)
	viewCooldown, _ := s.svc.Gate.Cooldown(counter.KindView)

	s.renderPage(w, http.StatusOK, "dashboard", dashboardPage{
		pageData:     pageData{Nav: true},
		Stats:        stats,
		LikeCooldown: likeCooldown,
		ViewCooldown: viewCooldown,
		Comments:     comments,
		Achievements: len(achievements),
		Activity:     entries,
	})
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Stats.Reset(r.Context()); err != nil {
		s.pageError(w, "failed to reset stats", err)
		return
	}
	s.svc.Activity.Record(r.Context(), activity.TypeStatsReset, "Reset views and likes")
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (s *Server) handleAdminAchievements(w http.ResponseWriter, r *http.Request) {
	s.renderAchievements(w, r, http.StatusOK, "")
}

func (s *Server) renderAchievements(w http.ResponseWriter, r *http.Request, status int, formError string) {
	achievements, err := s.svc.Catalog.ListAllAchievements(r.Context())
	if err != nil {
		s.pageError(w, "failed to list achievements", err)
		return
	}
	s.renderPage(w, status, "achievements", achievementsPage{
		pageData:     pageData{Nav: true, Error: formError},
		Achievements: achievements,
	})
}

func (s *Server) handleAddAchievement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderAchievements(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	a, err := s.svc.Catalog.AddAchievement(r.Context(), catalog.AddAchievementRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Icon:        r.PostFormValue("icon"),
		CoverImage:  r.PostFormValue("cover_image"),
		Date:        r.PostFormValue("date"),
	})
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			s.renderAchievements(w, r, http.StatusBadRequest, "Title, description, icon and a YYYY-MM-DD date are required")
			return
		}
		s.pageError(w, "failed to add achievement", err)
		return
	}

	s.svc.Activity.Record(r.Context(), activity.TypeAchievementAdded,
		fmt.Sprintf("Added achievement %d: %s", a.ID, a.Title))
	http.Redirect(w, r, "/admin/achievements", http.StatusSeeOther)
}

func (s *Server) handleToggleAchievement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.svc.Catalog.ToggleVisible(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.pageError(w, "failed to toggle achievement", err)
		return
	}

	s.svc.Activity.Record(r.Context(), activity.TypeAchievementToggled,
		fmt.Sprintf("Toggled achievement %d", id))
	http.Redirect(w, r, "/admin/achievements", http.StatusSeeOther)
}

func (s *Server) handleAdminComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.svc.Comments.List(r.Context())
	if err != nil {
		s.pageError(w, "failed to list comments", err)
		return
	}
	s.renderPage(w, http.StatusOK, "comments", commentsPage{
		pageData: pageData{Nav: true},
		Comments: comments,
	})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Redirect(w, r, "/admin/comments", http.StatusSeeOther)
		return
	}

	if err := s.svc.Comments.Delete(r.Context(), id); err != nil {
		s.pageError(w, "failed to delete comment", err)
		return
	}

	s.svc.Activity.Record(r.Context(), activity.TypeCommentDeleted,
		fmt.Sprintf("Deleted comment %d", id))
	http.Redirect(w, r, "/admin/comments", http.StatusSeeOther)
}

func (s *Server) handleResumePage(w http.ResponseWriter, r *http.Request) {
	s.renderResume(w, http.StatusOK, r.URL.Query().Get("success") == "1", "")
}

func (s *Server) renderResume(w http.ResponseWriter, status int, success bool, formError string) {
	present := false
	if f, err := s.svc.Resumes.Open(); err == nil {
		present = true
		f.Close()
	}
	s.renderPage(w, status, "resume", resumePage{
		pageData: pageData{Nav: true, Error: formError},
		Success:  success,
		Present:  present,
	})
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUpload+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		s.renderResume(w, http.StatusBadRequest, false, "Upload a PDF file")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.renderResume(w, http.StatusBadRequest, false, "Upload a PDF file")
		return
	}
	defer file.Close()

	if err := s.svc.Resumes.Save(r.Context(), header.Filename, file); err != nil {
		if errors.Is(err, resume.ErrInvalidInput) {
			s.renderResume(w, http.StatusBadRequest, false, "Only PDF files are accepted")
			return
		}
		s.pageError(w, "failed to store resume", err)
		return
	}

	s.svc.Activity.Record(r.Context(), activity.TypeResumeUploaded,
		fmt.Sprintf("Uploaded resume %s (%d bytes)", header.Filename, header.Size))
	http.Redirect(w, r, "/admin/resume?success=1", http.StatusSeeOther)
}

func (s *Server) pageError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
