package profile

import (
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewMux serves the go pprof tool and the prometheus metrics
//	`go tool pprof http://localhost:6060/debug/pprof/profile`
//	`curl http://localhost:6060/metrics`
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// StartProfiler listens in the background. Unless expose is set it only
// binds to localhost. Close the returned server to stop it.
func StartProfiler(expose bool, port int) *http.Server {
	pre := "localhost"
	if expose {
		pre = ""
	}

	addr := fmt.Sprintf("%s:%d", pre, port)
	srv := &http.Server{Addr: addr, Handler: NewMux()}
	log.Infof("Profiling and metrics on %s", addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("profiler stopped")
		}
	}()
	return srv
}
