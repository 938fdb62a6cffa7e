package testserver

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/domain/comment"
	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/rpggio/portfolio/internal/resume"
	"github.com/rpggio/portfolio/internal/sqlite"
	"github.com/rpggio/portfolio/internal/transport"
	"github.com/stretchr/testify/require"
)

// Password is the admin password every test server accepts.
const Password = "correct horse"

// IndexBody is the content of the served index page.
const IndexBody = "<!doctype html><title>portfolio</title>"

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type TestServer struct {
	Server    *httptest.Server
	StatsDB   *sqlite.DB
	ContentDB *sqlite.DB
	Clock     *Clock
	AssetsDir string

	Projects *sqlite.ProjectRepository
	Counters *sqlite.CounterRepository
	Resumes  *resume.Store
}

func New(t *testing.T) *TestServer {
	t.Helper()

	statsDB, err := sqlite.OpenStats(":memory:")
	require.NoError(t, err)
	contentDB, err := sqlite.OpenContent(":memory:")
	require.NoError(t, err)

	assetsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "index.html"), []byte(IndexBody), 0o644))

	clock := &Clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)}

	counterRepo := sqlite.NewCounterRepository(statsDB)
	commentRepo := sqlite.NewCommentRepository(statsDB)
	projectRepo := sqlite.NewProjectRepository(contentDB)
	achievementRepo := sqlite.NewAchievementRepository(contentDB)
	activityRepo := sqlite.NewActivityRepository(contentDB)

	policies := counter.DefaultPolicies()
	gate := counter.NewGate(counterRepo, policies, nil)
	statsSvc := counter.NewService(counterRepo, policies, nil)
	commentSvc := comment.NewService(commentRepo, nil).WithClock(clock.Now)
	catalogSvc := catalog.NewService(projectRepo, achievementRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)
	resumes := resume.New(filepath.Join(t.TempDir(), "resume.pdf"), 1<<20, nil)

	hash, err := admin.HashPassword(Password)
	require.NoError(t, err)
	auth := admin.NewAuthenticator(hash, "test-session-secret", time.Hour)

	router := transport.NewServer(transport.Services{
		Gate:     gate,
		Stats:    statsSvc,
		Comments: commentSvc,
		Catalog:  catalogSvc,
		Resumes:  resumes,
		Activity: activitySvc,
		Auth:     auth,
	}, transport.Options{
		AssetsDir: assetsDir,
		IndexFile: "index.html",
		Now:       clock.Now,
	})
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:    server,
		StatsDB:   statsDB,
		ContentDB: contentDB,
		Clock:     clock,
		AssetsDir: assetsDir,
		Projects:  projectRepo,
		Counters:  counterRepo,
		Resumes:   resumes,
	}

	t.Cleanup(func() {
		server.Close()
		_ = statsDB.Close()
		_ = contentDB.Close()
	})

	return ts
}

// Client returns a client with a cookie jar that does not follow redirects.
func (ts *TestServer) Client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// AdminClient returns a client holding a valid admin session.
func (ts *TestServer) AdminClient(t *testing.T) *http.Client {
	t.Helper()
	client := ts.Client(t)

	resp, err := client.PostForm(ts.Server.URL+"/admin/login", url.Values{"password": {Password}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))

	return client
}

// URL joins path onto the server address.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + "/" + strings.TrimPrefix(path, "/")
}
