// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api assembles the HTTP surface: staking views, instruction
// submission, stored events and metrics.
package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/adrtoken/adrstake/api/engine"
	"github.com/adrtoken/adrstake/api/events"
	"github.com/adrtoken/adrstake/api/instructions"
	"github.com/adrtoken/adrstake/log"
	"github.com/adrtoken/adrstake/logdb"
	"github.com/adrtoken/adrstake/metrics"
	"github.com/adrtoken/adrstake/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	EnableReqLogger bool
	EnableMetrics   bool
}

// New returns the assembled api handler.
func New(rt *runtime.Runtime, logDB *logdb.LogDB, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	engine.New(rt).
		Mount(router, "/staking")
	instructions.New(rt).
		Mount(router, "/instructions")
	if logDB != nil {
		events.New(logDB).
			Mount(router, "/events")
	}

	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsHandler)
	}

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}
