package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/chordal/analysis"
	"github.com/jsphweid/chordal/logging"
	chordalmidi "github.com/jsphweid/chordal/midi"
	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func init() {
	logging.SetGlobalLogger(nil)
}

func withStore(t *testing.T) *store.Store {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	runs = s
	t.Cleanup(func() { runs = nil })
	return s
}

func do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpointArchivesRun(t *testing.T) {
	s := withStore(t)
	w := do(t, http.MethodPost, "/analyze", `{"segments": [[0, 4, 7], [0, 4, 7], [2, 5, 9]]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	assert := assert.New(t)
	assert.Equal(model.Analysis{
		Segments: 3,
		Spans: []model.Span{
			{Start: 0, End: 2, Score: 6, Labels: []model.Label{{Root: 0, Quality: model.Major}}},
		},
	}, res.Analysis)

	run, err := s.Load(res.ID)
	require.NoError(t, err)
	assert.Equal(res.Analysis, run.Analysis)

	w = do(t, http.MethodGet, "/runs/"+res.ID, "")
	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), `"C_maj"`)
}

func TestAnalyzeEndpointRejectsBadInput(t *testing.T) {
	withStore(t)
	for _, body := range []string{`{"segments": [[0, 12]]}`, `not json`} {
		w := do(t, http.MethodPost, "/analyze", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"detail"`)
	}
}

func TestCompareEndpoint(t *testing.T) {
	body := `{
		"truth": {"segments": 3, "labels": {"0": ["C_maj"], "1": ["G_maj"], "2": ["C_maj"]}},
		"guess": {"segments": 3, "labels": {"0": ["C_maj", "A_min"], "1": ["G_maj"], "2": ["F_maj"]}}
	}`
	w := do(t, http.MethodPost, "/compare", body)
	require.Equal(t, http.StatusOK, w.Code)

	var c model.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, []float64{0.5, 1, 0}, c.Scores)
	assert.InDelta(t, 50, c.Percentage, 1e-9)

	w = do(t, http.MethodPost, "/compare", `{"truth": {"segments": 2}, "guess": {"segments": 3}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTemplatesEndpoint(t *testing.T) {
	w := do(t, http.MethodGet, "/templates", "")
	require.Equal(t, http.StatusOK, w.Code)

	var templates []model.TemplateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))

	assert := assert.New(t)
	assert.Len(templates, 72)
	assert.Equal(model.TemplateResult{
		Label: "C_maj", Root: "C", Quality: model.Major, Notes: []int{0, 4, 7}, Prior: .436,
	}, templates[0])
	assert.Equal("B_fdim", templates[71].Label)
	assert.Equal([]int{2, 5, 8, 11}, templates[71].Notes)
}

func TestRunEndpointErrors(t *testing.T) {
	w := do(t, http.MethodGet, "/runs/3f0e6a36-3b0f-4b55-9a47-1c8f0e0d2f7a", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	withStore(t)
	w = do(t, http.MethodGet, "/runs/3f0e6a36-3b0f-4b55-9a47-1c8f0e0d2f7a", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListenerReportsLatestChord(t *testing.T) {
	var out bytes.Buffer
	l := newListener(4, &out)

	for _, key := range []uint8{60, 64, 67} {
		l.noteOn(key)
	}
	l.capture()
	// unchanged notes add no segment
	l.capture()
	l.noteOff(60)
	l.noteOff(64)
	l.noteOff(67)
	for _, key := range []uint8{55, 59, 62, 65} {
		l.noteOn(key)
	}
	l.capture()

	assert := assert.New(t)
	assert.Len(l.history, 2)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(strings.HasPrefix(lines[0], "C E G"))
	assert.True(strings.HasSuffix(lines[0], "C_maj"))
	assert.True(strings.HasSuffix(lines[1], "G_dom7"))
}

func TestListenerKeepsWindowAndDoubledKeys(t *testing.T) {
	l := newListener(2, &bytes.Buffer{})

	l.noteOn(60)
	l.noteOn(72)
	l.noteOff(72)
	assert.Equal(t, model.NewPitchClassSet(0), l.current())

	for _, key := range []uint8{62, 64, 65} {
		l.noteOn(key)
		l.capture()
	}
	assert.Len(t, l.history, 2)
	assert.Equal(t, model.NewPitchClassSet(0, 2, 4, 5), l.history[1])
}

func TestBuildReport(t *testing.T) {
	s := withStore(t)
	for _, sets := range [][]model.PitchClassSet{
		{model.NewPitchClassSet(0, 4, 7), model.NewPitchClassSet(0, 4, 7), model.NewPitchClassSet(2, 5, 9)},
		{model.NewPitchClassSet(0, 4), model.NewPitchClassSet(7)},
	} {
		segments := analysis.Segments(sets)
		require.NoError(t, s.Save(store.NewRun("", segments, analysis.Analyze(segments))))
	}

	r, err := buildReport(s)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(2, r.numRuns)
	assert.Equal(uint64(5), r.numSegments)
	assert.Equal(uint64(2), r.numSpans)
	assert.Equal(1, r.ties)
	assert.Equal(map[model.Quality]int{model.Major: 2}, r.qualities)
	assert.Equal([]float64{2, 1}, r.spanLengths)

	var out bytes.Buffer
	r.print(&out)
	assert.Contains(out.String(), "runs: 2")
}

func TestWriteExcerpt(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "score.mid")

	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 90))
	tr.Add(480, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOn(0, 62, 90))
	tr.Add(480, midi.NoteOff(0, 62))
	tr.Add(0, midi.NoteOn(0, 64, 90))
	tr.Add(480, midi.NoteOff(0, 64))
	tr.Close(0)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	require.NoError(t, s.Add(tr))
	require.NoError(t, s.WriteFile(src))

	read, err := chordalmidi.ReadMidiFile(src)
	require.NoError(t, err)
	segments, err := chordalmidi.Segments(read)
	require.NoError(t, err)
	a := analysis.Analyze(segments)

	out := filepath.Join(dir, "excerpt.mid")
	require.NoError(t, writeExcerpt(src, segments, a.Spans, 0, out))

	excerpt, err := chordalmidi.ReadMidiFile(out)
	require.NoError(t, err)
	got, err := chordalmidi.Segments(excerpt)
	require.NoError(t, err)
	assert.Equal(t, segments[a.Spans[0].Start].Notes, got[0].Notes)

	assert.Error(t, writeExcerpt(src, segments, a.Spans, len(a.Spans), out))
	assert.Error(t, writeExcerpt("", segments, a.Spans, 0, out))
}
