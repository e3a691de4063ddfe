package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordal/analysis"
	"github.com/jsphweid/chordal/chord"
	"github.com/jsphweid/chordal/compare"
	"github.com/jsphweid/chordal/logging"
	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/store"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// runs archives every analysis served over HTTP; nil until LoadServeFiles.
var runs *store.Store

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analyser over HTTP",
	Long: `Serves the analyser over HTTP:
  POST /analyze    {"segments": [[0, 4, 7], ...]}
  POST /compare    {"truth": {...}, "guess": {...}}
  GET  /templates
  GET  /runs/{id}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadServeFiles(); err != nil {
			return err
		}
		return serve(cmd)
	},
}

func LoadServeFiles() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	runs = s
	return nil
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/compare", HandleCompare).Methods(http.MethodPost)
	router.HandleFunc("/templates", HandleTemplates).Methods(http.MethodGet)
	router.HandleFunc("/runs/{id}", HandleRun).Methods(http.MethodGet)
	return cors.Default().Handler(router)
}

func serve(cmd *cobra.Command) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logging.Info("listening", logging.Fields{"addr": cfg.Addr})
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-cmd.Context().Done():
		logging.Info("shutting down")
		return srv.Close()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error(err, "writing response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var input model.AnalyzeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	segments := analysis.Segments(input.Segments)
	a, err := analysis.AnalyzeConcurrent(r.Context(), segments, cfg.Workers)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	run := store.NewRun("", segments, a)
	if runs != nil {
		if err := runs.Save(run); err != nil {
			logging.Error(err, "archiving run", logging.Fields{"id": run.ID})
		}
	}
	logging.Debug("analysed", logging.Fields{"id": run.ID, "segments": len(segments), "spans": len(a.Spans)})
	writeJSON(w, http.StatusOK, model.AnalyzeResponse{ID: run.ID, Analysis: a})
}

func HandleCompare(w http.ResponseWriter, r *http.Request) {
	var input model.CompareRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := compare.Sequences(input.Truth, input.Guess)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func HandleTemplates(w http.ResponseWriter, r *http.Request) {
	templates := chord.Templates()
	res := make([]model.TemplateResult, 0, len(templates))
	for _, t := range templates {
		notes := make([]int, 0, t.Notes.Len())
		for _, pc := range t.Notes.Classes() {
			notes = append(notes, int(pc))
		}
		res = append(res, model.TemplateResult{
			Label:   t.Label.String(),
			Root:    t.Label.Root.String(),
			Quality: t.Label.Quality,
			Notes:   notes,
			Prior:   t.Prior,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleRun(w http.ResponseWriter, r *http.Request) {
	if runs == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("run archive not loaded"))
		return
	}
	run, err := runs.Load(mux.Vars(r)["id"])
	switch {
	case errors.Is(err, store.ErrRunNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, run)
	}
}
