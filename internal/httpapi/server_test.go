package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/mediascribe/internal/analyzer"
	"github.com/nguyentantai21042004/mediascribe/internal/archive"
	"github.com/nguyentantai21042004/mediascribe/internal/auth"
	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/internal/export"
	"github.com/nguyentantai21042004/mediascribe/internal/kv"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/metrics"
	"github.com/nguyentantai21042004/mediascribe/internal/models"
	"github.com/nguyentantai21042004/mediascribe/internal/normalizer"
	"github.com/nguyentantai21042004/mediascribe/internal/processor"
	"github.com/nguyentantai21042004/mediascribe/internal/transcript"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProcessor struct {
	resp processor.Response
	err  error
	got  processor.Request
}

func (f *fakeProcessor) Analyze(ctx context.Context, req processor.Request) (processor.Response, error) {
	return f.TryAnalyze(ctx, req)
}

func (f *fakeProcessor) TryAnalyze(ctx context.Context, req processor.Request) (processor.Response, error) {
	f.got = req
	return f.resp, f.err
}

func (f *fakeProcessor) Process(ctx context.Context, path string) error { return nil }

type testServer struct {
	srv     *Server
	proc    *fakeProcessor
	archive archive.Store
}

func newTestServer(t *testing.T, mutate func(*config.Config, *Deps)) *testServer {
	t.Helper()
	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	log := logger.NewNop()
	store, err := archive.Open(context.Background(), kv.NewMemory(), "test", log)
	if err != nil {
		t.Fatalf("archive.Open() error = %v", err)
	}
	proc := &fakeProcessor{resp: processor.Response{Outcome: normalizer.Decode(`{"summary":"ok","transcription":"t"}`)}}
	deps := Deps{
		Processor: proc,
		Intake:    media.New(cfg.Intake, nil, log),
		Archive:   store,
		Exporter:  export.New(log),
		Metrics:   metrics.New(),
		Logger:    log,
	}
	if mutate != nil {
		mutate(cfg, &deps)
	}
	return &testServer{srv: New(cfg, deps), proc: proc, archive: store}
}

func (ts *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return ts.do(t, req)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func uploadRequest(t *testing.T, fields map[string]string, withFile bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if withFile {
		fw, err := mw.CreateFormFile("file", "standup.mp3")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte("ID3 fake audio"))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func seed(t *testing.T, store archive.Store, title, summary, folder string) models.ArchiveRecord {
	t.Helper()
	rec, err := store.Save(context.Background(), title, models.AnalysisResult{
		Transcription: "t",
		Summary:       summary,
		KeyPoints:     []string{"k"},
		Segments:      []models.Segment{{StartTime: "00:00", EndTime: "00:01", Speaker: "Speaker A", Text: "Hi"}},
	}, "audio/mpeg", folder)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return rec
}

func TestHealthAndLanguages(t *testing.T) {
	ts := newTestServer(t, nil)

	if rec := ts.doJSON(t, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Errorf("GET /health = %v, want %v", rec.Code, http.StatusOK)
	}

	rec := ts.doJSON(t, http.MethodGet, "/api/languages", nil)
	var langs []string
	decode(t, rec, &langs)
	if len(langs) != len(models.Languages) || langs[0] != "English" {
		t.Errorf("GET /api/languages = %v", langs)
	}

	if rec := ts.doJSON(t, http.MethodGet, "/metrics", nil); !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("GET /metrics missing runtime metrics")
	}
}

func TestAnalyzeUpload(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, uploadRequest(t, map[string]string{
		"language": "German",
		"title":    "Standup",
		"folderId": "meetings",
	}, true))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/analyze = %v, body %s", rec.Code, rec.Body.String())
	}

	var out AnalyzeResponse
	decode(t, rec, &out)
	if out.Outcome != "ok" || out.Degraded || out.Result.Summary != "ok" {
		t.Errorf("response = %+v, want ok outcome", out)
	}

	got := ts.proc.got
	if got.Media.Name != "standup.mp3" || got.Media.MIMEType != "audio/mpeg" {
		t.Errorf("media = %s %s, want standup.mp3 audio/mpeg", got.Media.Name, got.Media.MIMEType)
	}
	if got.Language != "German" || got.Title != "Standup" || got.FolderID != "meetings" || !got.Save {
		t.Errorf("request = %+v", got)
	}
}

func TestAnalyzeSaveFlag(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.do(t, uploadRequest(t, map[string]string{"save": "false"}, true))
	if ts.proc.got.Save {
		t.Error("save=false still requested archiving")
	}

	rec := ts.do(t, uploadRequest(t, map[string]string{"save": "maybe"}, true))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("save=maybe = %v, want %v", rec.Code, http.StatusBadRequest)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"no source", map[string]string{}},
		{"youtube link", map[string]string{"url": "https://www.youtube.com/watch?v=x"}},
		{"not a link", map[string]string{"url": "ftp://example.com/a.mp3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, uploadRequest(t, tt.fields, false))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("POST /api/analyze = %v, want %v", rec.Code, http.StatusBadRequest)
			}
			if env := decode(t, rec, nil); env.Success || env.Error == "" {
				t.Errorf("envelope = %+v, want error", env)
			}
		})
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"busy", processor.ErrBusy, http.StatusTooManyRequests},
		{"no key", analyzer.ErrMissingCredentials, http.StatusServiceUnavailable},
		{"upstream", &analyzer.UpstreamError{Code: 400, Status: "INVALID_ARGUMENT", Message: "bad"}, http.StatusBadGateway},
		{"transport", analyzer.ErrTransport, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.proc.err = tt.err
			rec := ts.do(t, uploadRequest(t, nil, true))
			if rec.Code != tt.want {
				t.Errorf("POST /api/analyze = %v, want %v", rec.Code, tt.want)
			}
		})
	}
}

func TestAnalyzeNotArchived(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.proc.err = processor.ErrNotArchived

	rec := ts.do(t, uploadRequest(t, nil, true))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/analyze = %v, want %v", rec.Code, http.StatusOK)
	}
	var out AnalyzeResponse
	decode(t, rec, &out)
	if out.ArchiveError == "" || out.Result.Summary != "ok" {
		t.Errorf("response = %+v, want result plus archive error", out)
	}
}

func TestAnalyzeRateLimited(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config, d *Deps) {
		c.RateLimit.PerMinute = 1
		c.RateLimit.Burst = 1
	})

	if rec := ts.do(t, uploadRequest(t, nil, true)); rec.Code != http.StatusOK {
		t.Fatalf("first request = %v, want %v", rec.Code, http.StatusOK)
	}
	if rec := ts.do(t, uploadRequest(t, nil, true)); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request = %v, want %v", rec.Code, http.StatusTooManyRequests)
	}
	if rec := ts.doJSON(t, http.MethodGet, "/api/records", nil); rec.Code != http.StatusOK {
		t.Errorf("other routes are limited too: %v", rec.Code)
	}
}

func TestListRecords(t *testing.T) {
	ts := newTestServer(t, nil)
	seed(t, ts.archive, "fox talk", "The quick brown fox", "meetings")
	seed(t, ts.archive, "weather", "Rain", "")
	seed(t, ts.archive, "fox interview", "Another fox", "interviews")

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"fox interview", "weather", "fox talk"}},
		{"q=fox", []string{"fox interview", "fox talk"}},
		{"folder=meetings", []string{"fox talk"}},
		{"q=fox&folder=interviews", []string{"fox interview"}},
		{"q=zzz-no-match", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := ts.doJSON(t, http.MethodGet, "/api/records?"+tt.query, nil)
			var recs []models.ArchiveRecord
			decode(t, rec, &recs)
			titles := []string{}
			for _, r := range recs {
				titles = append(titles, r.Title)
			}
			if strings.Join(titles, ",") != strings.Join(tt.want, ",") {
				t.Errorf("GET /api/records?%s = %v, want %v", tt.query, titles, tt.want)
			}
		})
	}
}

func TestRecordLifecycle(t *testing.T) {
	ts := newTestServer(t, nil)
	r := seed(t, ts.archive, "call", "s", "")

	if rec := ts.doJSON(t, http.MethodGet, "/api/records/"+r.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("GET record = %v, want %v", rec.Code, http.StatusOK)
	}
	if rec := ts.doJSON(t, http.MethodGet, "/api/records/missing", nil); rec.Code != http.StatusNotFound {
		t.Errorf("GET missing = %v, want %v", rec.Code, http.StatusNotFound)
	}

	if rec := ts.doJSON(t, http.MethodPatch, "/api/records/"+r.ID+"/folder", MoveRequest{FolderID: "meetings"}); rec.Code != http.StatusNoContent {
		t.Errorf("PATCH folder = %v, want %v", rec.Code, http.StatusNoContent)
	}
	if rec := ts.doJSON(t, http.MethodPatch, "/api/records/"+r.ID+"/folder", map[string]string{}); rec.Code != http.StatusBadRequest {
		t.Errorf("PATCH folder without id = %v, want %v", rec.Code, http.StatusBadRequest)
	}
	got, _ := ts.archive.Get(context.Background(), r.ID)
	if got.FolderID != "meetings" {
		t.Errorf("FolderID = %v, want %v", got.FolderID, "meetings")
	}

	for i := 0; i < 2; i++ {
		if rec := ts.doJSON(t, http.MethodDelete, "/api/records/"+r.ID, nil); rec.Code != http.StatusNoContent {
			t.Errorf("DELETE #%d = %v, want %v", i, rec.Code, http.StatusNoContent)
		}
	}
	if _, err := ts.archive.Get(context.Background(), r.ID); !errors.Is(err, archive.ErrRecordNotFound) {
		t.Errorf("record still present after delete: %v", err)
	}
}

func TestEditSegment(t *testing.T) {
	ts := newTestServer(t, nil)
	r := seed(t, ts.archive, "call", "s", "")

	rec := ts.doJSON(t, http.MethodPatch, "/api/records/"+r.ID+"/segments/0", SegmentRequest{Text: "Hello, fixed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH segment = %v, body %s", rec.Code, rec.Body.String())
	}
	var updated models.ArchiveRecord
	decode(t, rec, &updated)
	if updated.Result.Segments[0].Text != "Hello, fixed" {
		t.Errorf("segment text = %q, want edited", updated.Result.Segments[0].Text)
	}
	stored, _ := ts.archive.Get(context.Background(), r.ID)
	if transcript.FullText(stored.Result) != "Speaker A [00:00]: Hello, fixed" {
		t.Errorf("stored transcript = %q", transcript.FullText(stored.Result))
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/records/" + r.ID + "/segments/5", http.StatusBadRequest},
		{"/api/records/" + r.ID + "/segments/x", http.StatusBadRequest},
		{"/api/records/missing/segments/0", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := ts.doJSON(t, http.MethodPatch, tt.path, SegmentRequest{Text: "y"}); rec.Code != tt.want {
			t.Errorf("PATCH %s = %v, want %v", tt.path, rec.Code, tt.want)
		}
	}
}

func TestExportRecord(t *testing.T) {
	ts := newTestServer(t, nil)
	r := seed(t, ts.archive, "Board meeting", "Budget", "")

	rec := ts.doJSON(t, http.MethodGet, "/api/records/"+r.ID+"/export/txt", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET export = %v", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="Board_meeting_transcription.txt"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "TITLE: Board meeting\n") {
		t.Errorf("body = %q", rec.Body.String())
	}

	if rec := ts.doJSON(t, http.MethodGet, "/api/records/"+r.ID+"/export/srt", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("GET export/srt = %v, want %v", rec.Code, http.StatusBadRequest)
	}
	if rec := ts.doJSON(t, http.MethodGet, "/api/records/missing/export/pdf", nil); rec.Code != http.StatusNotFound {
		t.Errorf("GET missing export = %v, want %v", rec.Code, http.StatusNotFound)
	}
}

func TestFolders(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.doJSON(t, http.MethodPost, "/api/folders", FolderRequest{Name: " Lectures "})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST folder = %v", rec.Code)
	}
	var f models.Folder
	decode(t, rec, &f)
	if f.Name != "Lectures" || f.ID == "" {
		t.Errorf("folder = %+v", f)
	}

	if rec := ts.doJSON(t, http.MethodPost, "/api/folders", FolderRequest{Name: "  "}); rec.Code != http.StatusBadRequest {
		t.Errorf("POST blank folder = %v, want %v", rec.Code, http.StatusBadRequest)
	}

	seed(t, ts.archive, "busy", "s", "meetings")
	tests := []struct {
		id   string
		want int
	}{
		{models.DefaultFolderID, http.StatusConflict},
		{"meetings", http.StatusConflict},
		{"nope", http.StatusNotFound},
		{f.ID, http.StatusNoContent},
	}
	for _, tt := range tests {
		if rec := ts.doJSON(t, http.MethodDelete, "/api/folders/"+url.PathEscape(tt.id), nil); rec.Code != tt.want {
			t.Errorf("DELETE folder %s = %v, want %v", tt.id, rec.Code, tt.want)
		}
	}

	rec = ts.doJSON(t, http.MethodGet, "/api/folders", nil)
	var folders []models.Folder
	decode(t, rec, &folders)
	if len(folders) != 3 {
		t.Errorf("GET folders = %v, want the 3 defaults", folders)
	}
}

func TestAuth(t *testing.T) {
	jwtService := auth.NewJWTService("s3cret", 1)
	ts := newTestServer(t, func(c *config.Config, d *Deps) { d.JWT = jwtService })

	if rec := ts.doJSON(t, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Errorf("GET /health = %v, want open", rec.Code)
	}
	if rec := ts.doJSON(t, http.MethodGet, "/api/languages", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token = %v, want %v", rec.Code, http.StatusUnauthorized)
	}

	token, _ := jwtService.Generate("tester")
	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if rec := ts.do(t, req); rec.Code != http.StatusOK {
		t.Errorf("valid token = %v, want %v", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	req.Header.Set("Authorization", "Token "+token)
	if rec := ts.do(t, req); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme = %v, want %v", rec.Code, http.StatusUnauthorized)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config, d *Deps) { c.Server.CORSAllowedOrigins = "http://app.local" })

	req := httptest.NewRequest(http.MethodOptions, "/api/records", nil)
	req.Header.Set("Origin", "http://app.local")
	rec := ts.do(t, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("OPTIONS = %v, want %v", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.local" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.local")
	if got := ts.do(t, req).Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin for unknown origin = %q, want none", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&media.ValidationError{Reason: media.ErrTooLarge}, http.StatusBadRequest},
		{media.ErrFetchFailed, http.StatusBadGateway},
		{archive.ErrFolderNotFound, http.StatusNotFound},
		{archive.ErrDefaultFolder, http.StatusConflict},
		{&archive.StorageError{Op: "write", Err: errors.New("x")}, http.StatusInternalServerError},
		{processor.ErrNoStorage, http.StatusInternalServerError},
		{transcript.ErrSegmentIndex, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
