package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/domain/comment"
	"github.com/rpggio/portfolio/internal/domain/counter"
)

// Gate consumes rate-limited actions.
type Gate interface {
	Like(ctx context.Context, clientKey string, now time.Time) error
	View(ctx context.Context, clientKey string, now time.Time) error
	Cooldown(kind counter.ActionKind) (time.Duration, bool)
}

// Stats reads and maintains the aggregate counters.
type Stats interface {
	Aggregate(ctx context.Context) (counter.Aggregate, error)
	Reset(ctx context.Context) error
}

// Comments is the visitor comment log.
type Comments interface {
	Append(ctx context.Context, name, text string) (int64, error)
	List(ctx context.Context) ([]comment.Comment, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// Catalog serves projects and achievements.
type Catalog interface {
	ListProjects(ctx context.Context, filter catalog.ProjectFilter) ([]catalog.Project, error)
	ListAchievements(ctx context.Context) ([]catalog.Achievement, error)
	ListAllAchievements(ctx context.Context) ([]catalog.Achievement, error)
	AddAchievement(ctx context.Context, req catalog.AddAchievementRequest) (*catalog.Achievement, error)
	ToggleVisible(ctx context.Context, id int64) error
}

// Resumes stores the downloadable resume.
type Resumes interface {
	Save(ctx context.Context, filename string, r io.Reader) error
	Open() (*os.File, error)
}

// Activity records and lists admin actions.
type Activity interface {
	Record(ctx context.Context, typ activity.ActivityType, summary string)
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services are the domain operations the HTTP surface exposes.
type Services struct {
	Gate     Gate
	Stats    Stats
	Comments Comments
	Catalog  Catalog
	Resumes  Resumes
	Activity Activity
	Auth     Authenticator
}

// Options tune the HTTP surface.
type Options struct {
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	TrustProxy   bool
	AssetsDir    string
	IndexFile    string
	CookieSecure bool
	MaxUpload    int64
	Logger       *slog.Logger
	Now          func() time.Time
}

// Server wires HTTP handlers.
type Server struct {
	svc      Services
	opts     Options
	logger   *slog.Logger
	validate *validator.Validate
	pages    *pages
}

// NewServer creates an HTTP server router with middleware.
func NewServer(svc Services, opts Options) *chi.Mux {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = 10 << 20
	}

	srv := &Server{
		svc:      svc,
		opts:     opts,
		logger:   opts.Logger,
		validate: newValidator(),
		pages:    mustParsePages(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/", srv.handleIndex)
	r.Get("/health", srv.handleHealth)
	r.Get("/resume", srv.handleResume)
	if opts.AssetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(opts.AssetsDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", srv.handleStats)
		r.Post("/like", srv.handleLike)
		r.Get("/comments", srv.handleListComments)
		r.Post("/comments", srv.handleAddComment)
		r.Get("/achievements", srv.handleAchievements)
		r.Get("/projects", srv.handleProjects)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", srv.handleLoginPage)
		r.Post("/login", srv.handleLogin)
		r.Get("/logout", srv.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(svc.Auth))

			r.Get("/", srv.redirectTo("/admin/dashboard"))
			r.Get("/dashboard", srv.handleDashboard)
			r.Post("/stats/reset", srv.handleResetStats)
			r.Get("/achievements", srv.handleAdminAchievements)
			r.Post("/achievements/add", srv.handleAddAchievement)
			r.Post("/achievements/toggle/{id}", srv.handleToggleAchievement)
			r.Get("/comments", srv.handleAdminComments)
			r.Post("/comments/delete/{id}", srv.handleDeleteComment)
			r.Get("/resume", srv.handleResumePage)
			r.Post("/resume", srv.handleUploadResume)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) indexPath() string {
	name := s.opts.IndexFile
	if name == "" {
		name = "index.html"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.opts.AssetsDir, name)
}

func (s *Server) redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
