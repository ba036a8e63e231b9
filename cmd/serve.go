package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sitegen-cli/internal/enrich"
	"github.com/sells-group/sitegen-cli/internal/flow"
	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
	"github.com/sells-group/sitegen-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP session API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		table, err := industry.Load()
		if err != nil {
			return eris.Wrap(err, "load industry table")
		}
		catalog, err := flow.LoadCatalog()
		if err != nil {
			return eris.Wrap(err, "load question catalog")
		}

		s := &server{st: st, table: table, catalog: catalog, gen: initGenerator()}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: s.routes(),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

type server struct {
	st      store.Store
	table   *industry.Table
	catalog *flow.Catalog
	gen     enrich.Generator
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Get("/question", s.currentQuestion)
			r.Post("/answer", s.answer)
			r.Post("/skip", s.skip)
			r.Post("/back", s.back)
			r.Post("/finalize", s.finalizeSession)
		})
	})

	return r
}

type createSessionRequest struct {
	Business string            `json:"business"`
	Industry string            `json:"industry"`
	Sources  []model.RawSource `json:"sources"`
}

func (s *server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Industry == "" {
		req.Industry = cfg.Flow.DefaultIndustry
	}

	rawSources, err := json.Marshal(req.Sources)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sources")
		return
	}

	rec, err := s.st.CreateSession(r.Context(), req.Business, req.Industry, rawSources)
	if err != nil {
		zap.L().Error("create session failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "create session failed")
		return
	}

	sess := flow.NewSession(rec.ID, req.Industry, normalizeSources(req.Sources), s.catalog)
	if err := persistState(r.Context(), s.st, rec.ID, sess); err != nil {
		zap.L().Error("persist state failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "persist state failed")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":         rec.ID,
		"quality":    sess.Quality(),
		"complete":   sess.Complete(),
		"start_tier": sess.State().StartTier,
	})
}

func (s *server) listSessions(w http.ResponseWriter, r *http.Request) {
	filter := store.SessionFilter{
		Status:   model.SessionStatus(r.URL.Query().Get("status")),
		Industry: r.URL.Query().Get("industry"),
	}
	sessions, err := s.st.ListSessions(r.Context(), filter)
	if err != nil {
		zap.L().Error("list sessions failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "list sessions failed")
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

func (s *server) getSession(w http.ResponseWriter, r *http.Request) {
	rec, _, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) currentQuestion(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	q, active := sess.Current()
	resp := map[string]any{
		"complete": sess.Complete(),
		"shown":    sess.State().ShownCount(),
		"quality":  sess.Quality().Overall,
	}
	if active {
		resp["question"] = q
	}
	respondJSON(w, http.StatusOK, resp)
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

func (s *server) answer(w http.ResponseWriter, r *http.Request) {
	rec, sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := sess.Answer(req.QuestionID, req.Value); err != nil {
		switch {
		case eris.Is(err, flow.ErrFlowComplete):
			respondError(w, http.StatusConflict, "flow already complete")
		case eris.Is(err, flow.ErrWrongQuestion), eris.Is(err, flow.ErrNotAwaiting):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "answer failed")
		}
		return
	}

	s.saveAndRespond(w, r, rec.ID, sess)
}

func (s *server) skip(w http.ResponseWriter, r *http.Request) {
	rec, sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := sess.Skip("user skipped"); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	s.saveAndRespond(w, r, rec.ID, sess)
}

func (s *server) back(w http.ResponseWriter, r *http.Request) {
	rec, sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if !sess.GoBack() {
		respondError(w, http.StatusConflict, "nothing to go back to")
		return
	}
	s.saveAndRespond(w, r, rec.ID, sess)
}

func (s *server) finalizeSession(w http.ResponseWriter, r *http.Request) {
	rec, sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	profile := s.table.Get(rec.Industry)
	site := finalize(r.Context(), sess, profile, s.gen, rec.ID)

	result, err := json.Marshal(site)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "marshal site config")
		return
	}
	if err := s.st.SaveResult(r.Context(), rec.ID, result); err != nil {
		zap.L().Error("save result failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "save result failed")
		return
	}

	respondJSON(w, http.StatusOK, site)
}

// loadSession resurrects the flow session from the stored state blob.
func (s *server) loadSession(w http.ResponseWriter, r *http.Request) (*model.SessionRecord, *flow.Session, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.st.GetSession(r.Context(), id)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "session not found")
		} else {
			zap.L().Error("get session failed", zap.String("session", id), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "get session failed")
		}
		return nil, nil, false
	}

	var raw []model.RawSource
	if len(rec.Sources) > 0 {
		if err := json.Unmarshal(rec.Sources, &raw); err != nil {
			respondError(w, http.StatusInternalServerError, "corrupt stored sources")
			return nil, nil, false
		}
	}

	sess, err := flow.Resume(rec.State, normalizeSources(raw), s.catalog)
	if err != nil {
		zap.L().Error("resume session failed", zap.String("session", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "resume session failed")
		return nil, nil, false
	}
	return rec, sess, true
}

func (s *server) saveAndRespond(w http.ResponseWriter, r *http.Request, id string, sess *flow.Session) {
	if err := persistState(r.Context(), s.st, id, sess); err != nil {
		zap.L().Error("persist state failed", zap.String("session", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "persist state failed")
		return
	}

	q, active := sess.Current()
	resp := map[string]any{
		"complete": sess.Complete(),
		"shown":    sess.State().ShownCount(),
		"quality":  sess.Quality().Overall,
	}
	if active {
		resp["question"] = q
	}
	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
