package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dbrx/propval"
)

// startDebugServer stands up a small HTTP server exposing the current
// configuration and prometheus metrics, following bg/ap.httpd's
// gorilla/mux routing and the promhttp.Handler() registration
// ap.watchd/metrics.go uses for its own metrics endpoint. It runs in
// the background and is never gracefully stopped: it lives exactly as
// long as the process does.
func startDebugServer(addr string, logger *zap.Logger, getConfig func() propval.PropVal) {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) {
		data, err := getConfig().ToJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	go func() {
		if err := http.ListenAndServe(addr, router); err != nil {
			logger.Error("debug server exited", zap.Error(err))
		}
	}()
}
