// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"

	"github.com/adrtoken/adrstake/log"
)

// RequestLoggerHandler logs every request including its body before passing
// it on. The body is re-buffered so downstream handlers can still read it.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		var bodyBytes []byte
		var err error
		if r.Body != nil {
			bodyBytes, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		logger.Info("api request",
			"uri", r.URL.String(),
			"method", r.Method,
			"body", string(bodyBytes),
		)

		handler.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
