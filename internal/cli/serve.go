package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/covertower/pkg/buildinfo"
	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/observability"
	"github.com/matzehuels/covertower/pkg/pipeline"
	"github.com/matzehuels/covertower/pkg/render"
)

const (
	// defaultServeDegree caps the degree accepted by the HTTP API. Degree 7
	// searches can run for minutes on large presentations.
	defaultServeDegree = 6

	// maxRequestBytes bounds request bodies.
	maxRequestBytes = 64 << 10

	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var maxDegree int
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz       build information
  POST /v1/covers     {"presentation": "<a, b | a^2>", "degree": 3, "limit": 0}
  POST /v1/render     {"presentation": "...", "degree": 3, "cover": 0, "format": "svg"}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return serve(ctx, addr, NewServer(runner, c.Logger, maxDegree), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&maxDegree, "max-degree", defaultServeDegree, "largest degree accepted")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, addr string, s *Server, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Server
// =============================================================================

// Server serves enumeration and rendering over HTTP.
type Server struct {
	runner    *pipeline.Runner
	logger    *log.Logger
	maxDegree int
}

// NewServer creates a server. Requests above maxDegree are rejected.
func NewServer(runner *pipeline.Runner, logger *log.Logger, maxDegree int) *Server {
	return &Server{runner: runner, logger: logger, maxDegree: maxDegree}
}

// Router returns the HTTP handler with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/covers", s.handleCovers)
		r.Post("/render", s.handleRender)
	})
	return r
}

// observe reports every request to the HTTP observability hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCovers(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	res, hit, err := s.runner.EnumerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusOK, res.Export)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Enumerate(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, hit, err := s.runner.RenderWithCacheInfo(r.Context(), res, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(opts.Format))
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decode reads the request options and enforces the server limits. It
// writes the error reply itself and reports whether to continue.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return opts, false
	}
	if opts.Presentation == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "presentation is required"))
		return opts, false
	}
	if opts.Degree > s.maxDegree {
		s.writeError(w, errors.New(errors.ErrCodeUnsupportedDegree, "degree %d exceeds this server's limit of %d", opts.Degree, s.maxDegree))
		return opts, false
	}
	opts.Logger = s.logger
	return opts, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(errors.GetCode(err))
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPresentation, errors.ErrCodeInvalidGenerator,
		errors.ErrCodeInvalidPermutation, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupportedDegree:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func contentType(format string) string {
	switch format {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatPDF:
		return "application/pdf"
	case render.FormatPNG:
		return "image/png"
	default:
		return "text/vnd.graphviz"
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
