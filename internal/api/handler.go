package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/frantjc/cpm"
	xslice "github.com/frantjc/x/slice"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-logr/logr"
	"github.com/opencontainers/go-digest"
	"github.com/timewasted/go-accept-headers"
)

type Opts struct {
	Path           string
	AllowedOrigins []string
}

type Opt interface {
	Apply(*Opts)
}

func (o *Opts) Apply(opts *Opts) {
	if o != nil {
		if opts != nil {
			if o.Path != "" {
				opts.Path = path.Join("/", o.Path)
			}
			if len(o.AllowedOrigins) > 0 {
				opts.AllowedOrigins = o.AllowedOrigins
			}
		}
	}
}

func newOpts(opts ...Opt) *Opts {
	o := &Opts{
		Path:           "/",
		AllowedOrigins: []string{"*"},
	}

	for _, opt := range opts {
		opt.Apply(o)
	}

	return o
}

type handler struct {
	sessions *sessions
}

// NewHandler returns the HTTP API over the Cordova project engine.
// The project each caller is working on is tracked per session, so
// concurrent callers never see each other's project.
func NewHandler(opts ...Opt) http.Handler {
	var (
		o = newOpts(opts...)
		h = &handler{sessions: &sessions{}}
		r = chi.NewRouter()
	)

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(logRequests)
	r.Use(newCORS(o.AllowedOrigins))

	r.Route(o.Path, func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, "ok")
		})

		r.Route("/api", func(r chi.Router) {
			r.Post("/load-project", handleErr(h.handleLoadProject))
			r.Post("/save-config", handleErr(h.handleSaveConfig))
			r.Get("/get-project-info", handleErr(h.handleGetProjectInfo))
		})
	})

	r.NotFound(http.NotFound)

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			start = time.Now()
			ww    = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			log   = logr.FromContextOrDiscard(r.Context()).WithValues(
				"method", r.Method,
				"path", r.URL.Path,
				"requestID", middleware.GetReqID(r.Context()),
			)
		)

		next.ServeHTTP(ww, r.WithContext(logr.NewContext(r.Context(), log)))

		log.V(1).Info("handled request", "status", ww.Status(), "duration", time.Since(start).String())
	})
}

func handleErr(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			if nErr := negotiate(w, r, "application/json"); nErr != nil {
				http.Error(w, err.Error(), httpStatusCode(err))
				return
			}

			w.WriteHeader(httpStatusCode(err))
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		}
	}
}

func negotiate(w http.ResponseWriter, r *http.Request, contentType string) error {
	if _, err := accept.Negotiate(r.Header.Get("Accept"), contentType); err != nil {
		w.Header().Set("Accept", contentType)
		return newHTTPStatusCodeError(err, http.StatusUnsupportedMediaType)
	}

	if acceptEncoding := r.Header.Get("Accept-Encoding"); acceptEncoding != "" && xslice.Every([]string{"identity", "*"}, func(s string, _ int) bool {
		return !strings.Contains(acceptEncoding, s)
	}) && !strings.Contains(acceptEncoding, "gzip") {
		w.Header().Set("Accept-Encoding", "identity")
		return newHTTPStatusCodeError(fmt.Errorf("cannot satisfy Accept-Encoding: %s", acceptEncoding), http.StatusNotAcceptable)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Add("Vary", "Accept")
	w.Header().Add("Vary", "Accept-Encoding")

	return nil
}

func (h *handler) handleLoadProject(w http.ResponseWriter, r *http.Request) error {
	var (
		ctx  = r.Context()
		log  = logr.FromContextOrDiscard(ctx)
		body = &cpm.LoadProjectRequest{}
	)

	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return newHTTPStatusCodeError(fmt.Errorf("decode request body: %w", err), http.StatusBadRequest)
	}

	projectPath := strings.TrimSpace(body.ProjectPath)
	if projectPath == "" {
		return newHTTPStatusCodeError(fmt.Errorf("projectPath is required"), http.StatusBadRequest)
	}

	project, err := cpm.Load(ctx, projectPath)
	if err != nil {
		return err
	}

	session := h.sessions.set(sessionID(r), projectPath)
	log.Info("loaded project", "projectPath", projectPath, "session", session)

	http.SetCookie(w, &http.Cookie{
		Name:     cpm.CookieSession,
		Value:    session,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(cpm.HeaderSession, session)
	w.Header().Set("ETag", strconv.Quote(project.ConfigDigest.String()))

	return respondJSON(w, r, &cpm.LoadProjectResponse{
		Success:     true,
		Data:        project,
		ProjectPath: projectPath,
		Session:     session,
	}, wantsPretty(r))
}

func (h *handler) handleSaveConfig(w http.ResponseWriter, r *http.Request) error {
	var (
		ctx  = r.Context()
		root = h.sessions.root(sessionID(r))
		body = &cpm.SaveConfigRequest{}
		opts = []cpm.SaveOpt{}
	)

	if root == "" {
		return cpm.ErrProjectNotLoaded
	}

	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return newHTTPStatusCodeError(fmt.Errorf("decode request body: %w", err), http.StatusBadRequest)
	}

	if ifMatch := r.Header.Get("If-Match"); ifMatch != "" && ifMatch != "*" {
		dig, err := digest.Parse(strings.Trim(ifMatch, `"`))
		if err != nil {
			return newHTTPStatusCodeError(fmt.Errorf("parse If-Match: %w", err), http.StatusBadRequest)
		}

		opts = append(opts, cpm.WithIfMatch(dig))
	}

	if err := cpm.Save(ctx, root, body.Config, opts...); err != nil {
		return err
	}

	return respondJSON(w, r, &cpm.SaveConfigResponse{
		Success: true,
		Message: "saved config.xml",
	}, wantsPretty(r))
}

func (h *handler) handleGetProjectInfo(w http.ResponseWriter, r *http.Request) error {
	info, err := cpm.Info(r.Context(), h.sessions.root(sessionID(r)))
	if err != nil {
		return err
	}

	return respondJSON(w, r, info, wantsPretty(r))
}

func respondJSON(w http.ResponseWriter, r *http.Request, a any, pretty bool) error {
	if err := negotiate(w, r, "application/json"); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(a)
}

func newHTTPStatusCodeError(err error, httpStatusCode int) error {
	if err == nil {
		return nil
	}

	if 600 <= httpStatusCode || httpStatusCode < 100 {
		httpStatusCode = http.StatusInternalServerError
	}

	return &httpStatusCodeError{
		err:            err,
		httpStatusCode: httpStatusCode,
	}
}

type httpStatusCodeError struct {
	err            error
	httpStatusCode int
}

func (e *httpStatusCodeError) Error() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

func (e *httpStatusCodeError) Unwrap() error {
	return e.err
}

func httpStatusCode(err error) int {
	hscerr := &httpStatusCodeError{}
	if errors.As(err, &hscerr) {
		return hscerr.httpStatusCode
	}

	switch {
	case errors.Is(err, cpm.ErrInvalidProject), errors.Is(err, cpm.ErrProjectNotLoaded):
		return http.StatusBadRequest
	case errors.Is(err, cpm.ErrDescriptorChanged):
		return http.StatusPreconditionFailed
	case errors.Is(err, cpm.ErrDescriptorNotFound):
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

func wantsPretty(r *http.Request) bool {
	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	return pretty
}
