package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidsum/pkg/gateway"
	"vidsum/pkg/history"
	"vidsum/pkg/notify"
	"vidsum/pkg/storage"
	"vidsum/pkg/summary"
)

var fixedNow = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

type stubSummarizer struct {
	text     string
	err      error
	language string
	calls    int
}

func (s *stubSummarizer) Summarize(ctx context.Context, sourceReference, languageName string) (string, error) {
	s.calls++
	s.language = languageName
	return s.text, s.err
}

type testApp struct {
	app     *App
	store   *history.LocalStore
	backend *storage.MemoryBackend
	gw      *stubSummarizer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	backend := storage.NewMemoryBackend(0)
	queue := notify.NewQueue()
	store := history.NewLocalStore(backend, "", nil, queue)
	gw := &stubSummarizer{text: "**Main topic**: knots"}

	app := &App{
		Store:      store,
		Notices:    queue,
		NewGateway: func() (gateway.Summarizer, error) { return gw, nil },
		Location:   time.UTC,
		Now:        func() time.Time { return fixedNow },
	}
	return &testApp{app: app, store: store, backend: backend, gw: gw}
}

func run(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(app)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		app.flushNotices(&stderr)
	}
	return stdout.String(), stderr.String(), err
}

func TestSummarizeCommand(t *testing.T) {
	ta := newTestApp(t)

	stdout, stderr, err := run(t, ta.app, "summarize", "https://youtu.be/abc", "--lang", "fr")
	require.NoError(t, err)
	assert.Equal(t, "French", ta.gw.language)
	assert.Contains(t, stdout, "Main topic: knots")
	assert.NotContains(t, stdout, "**")
	assert.Contains(t, stderr, "Summary generated successfully!")

	ctx := context.Background()
	want := summary.Record{
		Summary:         "**Main topic**: knots",
		SourceReference: "https://youtu.be/abc",
		LanguageCode:    "fr",
		LanguageName:    "French",
		CreatedAt:       fixedNow,
	}
	latest, ok := ta.store.LoadLatest(ctx)
	require.True(t, ok)
	require.NotNil(t, latest)
	assert.Equal(t, want, *latest)
	assert.Equal(t, []summary.Record{want}, ta.store.LoadAll(ctx))
}

func TestSummarizeCommand_IndianGroup(t *testing.T) {
	ta := newTestApp(t)

	_, _, err := run(t, ta.app, "summarize", "https://youtu.be/abc", "--group", "indian", "--lang", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hindi", ta.gw.language)
}

func TestSummarizeCommand_UnknownLanguage(t *testing.T) {
	ta := newTestApp(t)

	_, stderr, err := run(t, ta.app, "summarize", "https://youtu.be/abc", "--lang", "klingon")
	require.NoError(t, err)
	assert.Equal(t, "English", ta.gw.language)
	assert.Contains(t, stderr, `Unknown language "klingon"`)
}

func TestSummarizeCommand_EmptyURL(t *testing.T) {
	ta := newTestApp(t)

	_, _, err := run(t, ta.app, "summarize", "  ")
	var ve *summary.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Please enter a valid URL", ve.Message)
	assert.Equal(t, 0, ta.gw.calls)
	assert.Empty(t, ta.store.LoadAll(context.Background()))
}

func TestSummarizeCommand_GatewayFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.gw.err = gateway.ErrSummaryFailed

	_, _, err := run(t, ta.app, "summarize", "https://youtu.be/abc")
	assert.ErrorIs(t, err, gateway.ErrSummaryFailed)

	latest, ok := ta.store.LoadLatest(context.Background())
	assert.True(t, ok)
	assert.Nil(t, latest)
}

// readOnlyBackend rejects every write.
type readOnlyBackend struct {
	*storage.MemoryBackend
}

func (readOnlyBackend) Set(ctx context.Context, key, value string) error {
	return storage.ErrQuotaExceeded
}

func TestSummarizeCommand_SaveFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.app.Store = history.NewLocalStore(readOnlyBackend{ta.backend}, "", nil, ta.app.Notices)

	stdout, stderr, err := run(t, ta.app, "summarize", "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Main topic: knots", "the summary is still printed")
	assert.Contains(t, stderr, "Failed to save summary")
	assert.NotContains(t, stderr, "Summary generated successfully!")
}

func TestSummarizeCommand_NoProvider(t *testing.T) {
	ta := newTestApp(t)
	ta.app.NewGateway = nil

	_, _, err := run(t, ta.app, "summarize", "https://youtu.be/abc")
	assert.Error(t, err)
}

func TestLatestCommand(t *testing.T) {
	ta := newTestApp(t)
	r := summary.NewRecord("**Bold** text", "https://youtu.be/abc", summary.English, fixedNow)
	require.True(t, ta.store.SaveLatest(context.Background(), r))

	stdout, _, err := run(t, ta.app, "latest")
	require.NoError(t, err)
	assert.Contains(t, stdout, "AI Video Summary")
	assert.Contains(t, stdout, "Bold text")

	stdout, _, err = run(t, ta.app, "latest", "--plain")
	require.NoError(t, err)
	assert.Equal(t, summary.Export(r, fixedNow, time.UTC), stdout)
}

func TestLatestCommand_Missing(t *testing.T) {
	ta := newTestApp(t)

	_, _, err := run(t, ta.app, "latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no summary data found")
}

func TestLatestCommand_Corrupt(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.backend.Set(context.Background(), "latestSummary", "]["))

	_, stderr, err := run(t, ta.app, "latest")
	require.Error(t, err)
	assert.Contains(t, stderr, "Failed to load summary data")
}

func seed(t *testing.T, ta *testApp, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		r := summary.Record{
			Summary:         "summary " + strings.Repeat("y", i),
			SourceReference: "https://vimeo.com/" + string(rune('0'+i)),
			LanguageCode:    "en",
			LanguageName:    "English",
			CreatedAt:       fixedNow.Add(time.Duration(i) * time.Minute),
		}
		require.True(t, ta.store.Append(context.Background(), r))
	}
}

func TestHistoryList(t *testing.T) {
	ta := newTestApp(t)
	seed(t, ta, 2)

	stdout, _, err := run(t, ta.app, "history", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "[0] 2024-06-01 12:32  English  vimeo", lines[0])
	assert.Equal(t, "    https://vimeo.com/2", lines[1])
	assert.Equal(t, "    summary yy", lines[2])
	assert.Equal(t, "[1] 2024-06-01 12:31  English  vimeo", lines[3])
}

func TestHistoryList_Empty(t *testing.T) {
	ta := newTestApp(t)

	stdout, _, err := run(t, ta.app, "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "No summaries yet.\n", stdout)
}

func TestHistoryRemove(t *testing.T) {
	ta := newTestApp(t)
	seed(t, ta, 3)
	before := ta.store.ListSortedByTimeDescending(context.Background())

	_, stderr, err := run(t, ta.app, "history", "rm", "0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Summary deleted successfully!")
	assert.Equal(t, before[1:], ta.store.ListSortedByTimeDescending(context.Background()))
}

func TestHistoryRemove_OutOfRange(t *testing.T) {
	ta := newTestApp(t)
	seed(t, ta, 1)

	_, _, err := run(t, ta.app, "history", "rm", "7")
	require.NoError(t, err)
	assert.Len(t, ta.store.LoadAll(context.Background()), 1)
}

func TestHistoryRemove_BadIndex(t *testing.T) {
	ta := newTestApp(t)

	_, _, err := run(t, ta.app, "history", "rm", "first")
	assert.Error(t, err)
}

func TestHistoryClear(t *testing.T) {
	ta := newTestApp(t)
	seed(t, ta, 3)

	_, stderr, err := run(t, ta.app, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, stderr, "History cleared")
	assert.Empty(t, ta.store.LoadAll(context.Background()))

	stdout, _, err := run(t, ta.app, "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "No summaries yet.\n", stdout)
}

func TestLanguagesCommand(t *testing.T) {
	ta := newTestApp(t)

	stdout, _, err := run(t, ta.app, "languages", "--group", "indian")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, "en     English", lines[0])
	assert.Contains(t, stdout, "hi     Hindi")
}
