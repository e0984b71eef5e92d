package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

// maxBodyBytes caps request bodies accepted by command endpoints.
const maxBodyBytes = 10 << 20

// Config holds router configuration.
type Config struct {
	Host    ipc.Host
	Verbose bool
}

// BuildRouter constructs and returns the main HTTP handler.
// Every host command is served on its named route; the generic verb paths
// used by bridge-mode callers are served too, so both transports reach the
// same commands.
func BuildRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()

	var handler http.Handler = mux
	handler = LoggerMiddleware(handler)
	handler = RecoveryMiddleware(handler)

	registered := map[string]bool{}
	for _, rt := range api.Routes() {
		pattern := rt.ServeMuxPattern()
		mux.Handle(pattern, commandHandler(cfg.Host, rt.Command, rt.PathParams()))
		registered[pattern] = true
	}
	for _, b := range api.Bindings() {
		pattern := string(b.Verb) + " " + b.Path
		if registered[pattern] {
			continue
		}
		mux.Handle(pattern, commandHandler(cfg.Host, b.Command, nil))
		registered[pattern] = true
	}

	mux.Handle("GET "+api.EventsPath, EventsHandler(cfg.Host))

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})

	if cfg.Verbose {
		logger.Debugf("router: %d command endpoints registered", len(registered))
	}
	return handler
}

// commandHandler invokes cmd with arguments gathered from the request.
func commandHandler(host ipc.Host, cmd api.Command, pathParams []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		args, err := requestArgs(w, r, pathParams)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		h, err := host.Acquire(r.Context())
		if err != nil {
			WriteError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		defer h.Close()

		var in any
		if len(args) > 0 {
			in = args
		}
		out, err := h.Invoke(r.Context(), cmd, in)
		if err != nil {
			WriteHandlerError(w, err)
			return
		}

		out = bytes.TrimSpace(out)
		if len(out) == 0 || string(out) == "null" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		WriteRaw(w, http.StatusOK, out)
	})
}

// requestArgs merges the query string, a JSON object body and the route's
// path values into one argument object. Later sources win.
func requestArgs(w http.ResponseWriter, r *http.Request, pathParams []string) (map[string]any, error) {
	args := map[string]any{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			args[k] = v[0]
		}
	}

	if r.Body != nil && r.Body != http.NoBody {
		b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		if len(bytes.TrimSpace(b)) > 0 {
			var body map[string]any
			if err := json.Unmarshal(b, &body); err != nil {
				return nil, errors.New("invalid request body: expected a JSON object")
			}
			for k, v := range body {
				args[k] = v
			}
		}
	}

	for _, name := range pathParams {
		args[name] = r.PathValue(name)
	}
	return args, nil
}

// HTTPErrorLogAdapter adapts logger.Warnf to the log.Logger interface for http.Server.ErrorLog.
type HTTPErrorLogAdapter struct{}

func (HTTPErrorLogAdapter) Write(p []byte) (n int, err error) {
	logger.Warnf("http: %s", strings.TrimSpace(string(p)))
	return len(p), nil
}

// ErrorLog returns a log.Logger writing through HTTPErrorLogAdapter.
func ErrorLog() *log.Logger {
	return log.New(HTTPErrorLogAdapter{}, "", 0)
}
