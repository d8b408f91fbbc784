// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/adrtoken/adrstake/metrics"
)

var (
	metricHTTPReqCounter  = metrics.CounterVec("api_request_count", []string{"path", "code", "method"})
	metricHTTPReqDuration = metrics.HistogramVec("api_duration_ms", []string{"path", "code", "method"}, metrics.BucketHTTPReqs)
)

// statusResponseWriter captures the response status code.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusResponseWriter) WriteHeader(code int) {
	s.statusCode = code
	s.ResponseWriter.WriteHeader(code)
}

// metricsHandler records request count and duration per path.
func metricsHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		srw := &statusResponseWriter{w, http.StatusOK}
		h.ServeHTTP(srw, r)

		path := strings.ReplaceAll(strings.TrimLeft(r.URL.Path, "/"), "/", "_")
		labels := map[string]string{
			"path":   path,
			"code":   strconv.Itoa(srw.statusCode),
			"method": r.Method,
		}
		metricHTTPReqCounter.AddWithLabel(1, labels)
		metricHTTPReqDuration.ObserveWithLabels(time.Since(started).Milliseconds(), labels)
	})
}
