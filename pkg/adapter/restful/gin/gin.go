// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine construction, so other
// adapters may create an engine without importing gin-gonic directly.
package gin

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/smart-parking/pkg/core/log"
)

// RequestIDHeader is echoed back in responses and, when a client sends
// it, reused as the request id.
const RequestIDHeader = "X-Request-ID"

type (
	HandlerFunc = gin.HandlerFunc
	Engine      = gin.Engine
	RouterGroup = gin.RouterGroup
)

// New creates an engine having no middleware except the given ones.
// The gin context falls back to the request context, so use cases
// which receive a *gin.Context see the attributes of RequestID.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(middlewares...)
	return e
}

// RequestID tags each request with an id, taken from RequestIDHeader
// or generated, and attaches it to the request context for logging.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		ctx := log.With(
			c.Request.Context(), slog.String("request_id", id),
		)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// WrapH adapts a plain http.Handler, like the metrics exporter.
func WrapH(h http.Handler) HandlerFunc {
	return gin.WrapH(h)
}

// SetReleaseMode silences the gin-gonic debug messages.
func SetReleaseMode() {
	gin.SetMode(gin.ReleaseMode)
}
