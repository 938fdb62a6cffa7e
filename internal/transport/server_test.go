package transport_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/rpggio/portfolio/internal/testserver"
	"github.com/rpggio/portfolio/internal/transport"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func getStats(t *testing.T, ts *testserver.TestServer) counter.Aggregate {
	t.Helper()
	resp, err := http.Get(ts.URL("/api/stats"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var agg counter.Aggregate
	decode(t, resp, &agg)
	return agg
}

func like(t *testing.T, ts *testserver.TestServer) (int, transport.StatusResponse) {
	t.Helper()
	resp, err := http.Post(ts.URL("/api/like"), "application/json", nil)
	require.NoError(t, err)

	var body transport.StatusResponse
	decode(t, resp, &body)
	return resp.StatusCode, body
}

func TestHTTPServer_Health(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Get(ts.URL("/health"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", readBody(t, resp))
}

func TestHTTPServer_IndexCountsViews(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Get(ts.URL("/"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, testserver.IndexBody, readBody(t, resp))
	require.Equal(t, uint64(1), getStats(t, ts).Views)

	// A repeat visit inside the hour is served but not counted
	resp, err = http.Get(ts.URL("/"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.Equal(t, uint64(1), getStats(t, ts).Views)

	ts.Clock.Advance(time.Hour + time.Second)
	resp, err = http.Get(ts.URL("/"))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, uint64(2), getStats(t, ts).Views)
}

func TestHTTPServer_IndexMissingNotCounted(t *testing.T) {
	ts := testserver.New(t)
	require.NoError(t, os.Remove(filepath.Join(ts.AssetsDir, "index.html")))

	resp, err := http.Get(ts.URL("/"))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	require.Equal(t, uint64(0), getStats(t, ts).Views)
}

func TestHTTPServer_IndexHead(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Head(ts.URL("/"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.Equal(t, uint64(0), getStats(t, ts).Views)

	resp, err = http.Head(ts.URL("/health"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHTTPServer_LikeCooldown(t *testing.T) {
	ts := testserver.New(t)

	code, body := like(t, ts)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body.Status)
	require.Equal(t, uint64(1), getStats(t, ts).Likes)

	ts.Clock.Advance(30 * time.Second)
	code, body = like(t, ts)
	require.Equal(t, http.StatusTooManyRequests, code)
	require.Equal(t, "blocked", body.Status)
	require.Equal(t, uint64(1), getStats(t, ts).Likes)

	ts.Clock.Advance(31 * time.Second)
	code, body = like(t, ts)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body.Status)
	require.Equal(t, uint64(2), getStats(t, ts).Likes)
}

func TestHTTPServer_Comments(t *testing.T) {
	ts := testserver.New(t)

	post := func(payload string) *http.Response {
		resp, err := http.Post(ts.URL("/api/comments"), "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		return resp
	}

	resp := post(`{"name":"Ann","comment":"hi"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var saved transport.StatusResponse
	decode(t, resp, &saved)
	require.Equal(t, "saved", saved.Status)

	ts.Clock.Advance(2 * time.Minute)
	resp = post(`{"name":"Bo","comment":"  nice  "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(ts.URL("/api/comments"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []map[string]string
	decode(t, resp, &comments)
	require.Equal(t, []map[string]string{
		{"name": "Bo", "comment": "nice", "timestamp": "2024-03-01 12:02"},
		{"name": "Ann", "comment": "hi", "timestamp": "2024-03-01 12:00"},
	}, comments)
}

func TestHTTPServer_CommentsInvalid(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Post(ts.URL("/api/comments"), "application/json", strings.NewReader(`{"name":"  ","comment":"hi"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body transport.ErrorResponse
	decode(t, resp, &body)
	require.Equal(t, "required", body.Fields["name"])

	resp, err = http.Post(ts.URL("/api/comments"), "application/json", strings.NewReader(`{"name":`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL("/api/comments"))
	require.NoError(t, err)
	require.Equal(t, "[]\n", readBody(t, resp))
}

func TestHTTPServer_Projects(t *testing.T) {
	ts := testserver.New(t)
	ctx := context.Background()

	rank := func(f float64) *float64 { return &f }
	for _, p := range []*catalog.Project{
		{Slug: "unranked", Title: "Unranked", Visible: true},
		{Slug: "second", Title: "Second", Rank: rank(2), Status: catalog.StatusOngoing, Visible: true},
		{Slug: "first", Title: "First", Rank: rank(1), Visible: true},
		{Slug: "hidden", Title: "Hidden", Rank: rank(0), Visible: false},
	} {
		require.NoError(t, ts.Projects.Create(ctx, p))
	}

	resp, err := http.Get(ts.URL("/api/projects"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var projects []catalog.ProjectView
	decode(t, resp, &projects)
	require.Len(t, projects, 3)
	require.Equal(t, "first", projects[0].Slug)
	require.Equal(t, "second", projects[1].Slug)
	require.Equal(t, "unranked", projects[2].Slug)
	require.Equal(t, []string{}, projects[0].Tech)

	resp, err = http.Get(ts.URL("/api/projects?status=ongoing"))
	require.NoError(t, err)
	decode(t, resp, &projects)
	require.Len(t, projects, 1)
	require.Equal(t, "second", projects[0].Slug)

	resp, err = http.Get(ts.URL("/api/projects?status=abandoned"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHTTPServer_ResumeMissing(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Get(ts.URL("/resume"))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdmin_RequiresSession(t *testing.T) {
	ts := testserver.New(t)
	client := ts.Client(t)

	for _, path := range []string{"/admin/dashboard", "/admin/achievements", "/admin/comments", "/admin/resume"} {
		resp, err := client.Get(ts.URL(path))
		require.NoError(t, err)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		require.Equal(t, "/admin/login", resp.Header.Get("Location"), path)
		resp.Body.Close()
	}

	for _, path := range []string{"/admin/achievements/add", "/admin/achievements/toggle/1", "/admin/comments/delete/1", "/admin/stats/reset"} {
		resp, err := client.PostForm(ts.URL(path), url.Values{})
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestAdmin_LoginLogout(t *testing.T) {
	ts := testserver.New(t)
	client := ts.Client(t)

	resp, err := client.Get(ts.URL("/admin/login"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, readBody(t, resp), `name="password"`)

	resp, err = client.PostForm(ts.URL("/admin/login"), url.Values{"password": {"wrong"}})
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, readBody(t, resp), "Invalid password")

	client = ts.AdminClient(t)
	resp, err = client.Get(ts.URL("/admin/dashboard"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	require.Contains(t, body, "Dashboard")
	require.Contains(t, body, "admin_login")

	resp, err = client.Get(ts.URL("/admin/logout"))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Get(ts.URL("/admin/dashboard"))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()
}

func TestAdmin_DashboardSummary(t *testing.T) {
	ts := testserver.New(t)
	client := ts.AdminClient(t)

	for _, payload := range []string{`{"name":"Ann","comment":"hi"}`, `{"name":"Bo","comment":"yo"}`} {
		resp, err := http.Post(ts.URL("/api/comments"), "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := client.Get(ts.URL("/admin/dashboard"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	require.Contains(t, body, "<th>Comments</th><td>2</td>")
	require.Contains(t, body, "<th>Like cooldown</th><td>1m0s</td>")
	require.Contains(t, body, "<th>View cooldown</th><td>1h0m0s</td>")
}

func TestAdmin_Achievements(t *testing.T) {
	ts := testserver.New(t)
	client := ts.AdminClient(t)

	add := func(title, date string) *http.Response {
		resp, err := client.PostForm(ts.URL("/admin/achievements/add"), url.Values{
			"title":       {title},
			"description": {title + " description"},
			"icon":        {"🏆"},
			"date":        {date},
		})
		require.NoError(t, err)
		return resp
	}

	resp := add("Older", "2023-02-01")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/achievements", resp.Header.Get("Location"))
	resp.Body.Close()
	resp = add("Newer", "2024-02-01")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	resp = add("Bad date", "01/02/2024")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(ts.URL("/api/achievements"))
	require.NoError(t, err)
	var public []catalog.AchievementView
	decode(t, resp, &public)
	require.Len(t, public, 2)
	require.Equal(t, "Newer", public[0].Title)
	require.Equal(t, "Older", public[1].Title)

	resp, err = client.PostForm(ts.URL("/admin/achievements/toggle/1"), url.Values{})
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL("/api/achievements"))
	require.NoError(t, err)
	decode(t, resp, &public)
	require.Len(t, public, 1)
	require.Equal(t, "Newer", public[0].Title)

	resp, err = client.PostForm(ts.URL("/admin/achievements/toggle/999"), url.Values{})
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Get(ts.URL("/admin/achievements"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	require.Contains(t, body, "Older")
	require.Contains(t, body, "Newer")
}

func TestAdmin_DeleteComment(t *testing.T) {
	ts := testserver.New(t)
	client := ts.AdminClient(t)

	resp, err := http.Post(ts.URL("/api/comments"), "application/json", strings.NewReader(`{"name":"Spam","comment":"buy now"}`))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(ts.URL("/admin/comments"))
	require.NoError(t, err)
	require.Contains(t, readBody(t, resp), "buy now")

	for i := 0; i < 2; i++ {
		resp, err = client.PostForm(ts.URL("/admin/comments/delete/1"), url.Values{})
		require.NoError(t, err)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err = http.Get(ts.URL("/api/comments"))
	require.NoError(t, err)
	require.Equal(t, "[]\n", readBody(t, resp))
}

func TestAdmin_ResetStats(t *testing.T) {
	ts := testserver.New(t)
	client := ts.AdminClient(t)

	code, _ := like(t, ts)
	require.Equal(t, http.StatusOK, code)

	resp, err := client.PostForm(ts.URL("/admin/stats/reset"), url.Values{})
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	require.Equal(t, counter.Aggregate{}, getStats(t, ts))
	code, _ = like(t, ts)
	require.Equal(t, http.StatusOK, code)
}

func uploadResume(t *testing.T, client *http.Client, ts *testserver.TestServer, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := client.Post(ts.URL("/admin/resume"), mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func TestAdmin_ResumeUpload(t *testing.T) {
	ts := testserver.New(t)
	client := ts.AdminClient(t)

	resp := uploadResume(t, client, ts, "notes.txt", []byte("hello"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = uploadResume(t, client, ts, "cv.pdf", samplePDF)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/resume?success=1", resp.Header.Get("Location"))
	resp.Body.Close()

	resp, err := client.Get(ts.URL("/admin/resume?success=1"))
	require.NoError(t, err)
	require.Contains(t, readBody(t, resp), "Resume updated")

	resp, err = http.Get(ts.URL("/resume"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Equal(t, string(samplePDF), readBody(t, resp))
}
