// Package pprofserver exposes the runtime profiles on the console's own
// port. Loopback callers get them without credentials; anyone else must
// pass the basic-auth pair from PPROF_USER/PPROF_PASS, and when no pair is
// configured the profiles stay loopback-only.
package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/http/pprof"
)

// Config carries the basic-auth credentials required of non-loopback
// clients.
type Config struct {
	User string
	Pass string
}

// Handler serves the pprof index and the profiles a running console is
// actually inspected with.
func Handler(cfg Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	mux.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/debug/pprof/allocs", pprof.Handler("allocs"))
	return guard(cfg, mux)
}

// guard admits loopback callers directly and challenges everyone else for
// the configured credentials.
func guard(cfg Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if loopback(r.RemoteAddr) {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if cfg.User == "" || cfg.Pass == "" || !ok ||
			!equal(user, cfg.User) || !equal(pass, cfg.Pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="swiftcourier-pprof"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func loopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
