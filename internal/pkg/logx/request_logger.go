/*
Package logx provides a structured logging wrapper based on zerolog.

This file contains the HTTP middleware that logs request lifecycle information
such as URI, method, response status, and latency. Client addresses are
anonymized before they are logged.
*/
package logx

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// anonymizeIP anonymizes the given IP address string.
// For IPv4, it zeros out the last octet; for IPv6, it keeps only the first 64 bits.
func anonymizeIP(ipStr string) string {
	if host, _, err := net.SplitHostPort(ipStr); err == nil {
		ipStr = host
	}

	ip := net.ParseIP(ipStr)
	switch {
	case ip == nil:
		return "unknown_ip"
	case ip.IsLoopback():
		return "127.0.0.1"
	case ip.To4() != nil:
		return ip.To4().Mask(net.CIDRMask(24, 32)).String()
	default:
		masked := ip.Mask(net.CIDRMask(64, 128))
		return masked.String()
	}
}

// RequestLogger returns an HTTP middleware that logs one line per completed request.
// It injects a request-scoped logger into the context; fields added to it with
// AnnotateUser during the request appear on the completion line.
func RequestLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			logger := Logger().With().
				Str("component", "http").
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("remote_ip", anonymizeIP(r.RemoteAddr)).
				Str("request_method", r.Method).
				Str("request_uri", r.RequestURI).
				Logger()

			ctx := logger.WithContext(r.Context())
			r = r.WithContext(ctx)

			t1 := time.Now()
			next.ServeHTTP(ww, r)

			reqLogger := zerolog.Ctx(ctx)
			status := ww.Status()

			logEvent := reqLogger.Info()
			if status >= 500 {
				logEvent = reqLogger.Error()
			} else if status >= 400 {
				logEvent = reqLogger.Warn()
			}

			logEvent.
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(t1)).
				Msg("Request completed")
		}

		return http.HandlerFunc(fn)
	}
}

// AnnotateUser adds the authenticated user id to the request-scoped logger.
// It is a no-op outside of RequestLogger.
func AnnotateUser(ctx context.Context, userID string) {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return
	}
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("user_id", userID)
	})
}
