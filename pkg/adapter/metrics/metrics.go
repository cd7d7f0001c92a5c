// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package metrics registers the prometheus collectors of the smart
// parking server and provides a gin middleware which observes the
// REST API requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartparking"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})

	bookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "booking",
		Name:      "taps_total",
		Help:      "Total place taps by their outcome",
	}, []string{"outcome"})

	anchorMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "booking",
		Name:      "anchor_misses_total",
		Help:      "Bookings whose parking anchor was not placed",
	})

	marksPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "marks",
		Name:      "placed_total",
		Help:      "Total car marks placed",
	})

	framesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scene",
		Name:      "frames_total",
		Help:      "Total camera frames by tracking state",
	}, []string{"state"})
)

// Middleware observes the count and latency of the handled requests.
// Requests are labeled by their route pattern, so path parameters do
// not inflate the labels cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(
			time.Since(start).Seconds(),
		)
	}
}

// Handler returns the prometheus scraping handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveBooking counts one handled tap.
func ObserveBooking(res model.BookingResult) {
	bookingsTotal.WithLabelValues(res.Outcome.String()).Inc()
	if res.Outcome == model.BookingOutcomeBooked && !res.AnchorPlaced {
		anchorMisses.Inc()
	}
}

// ObserveMark counts one placed car mark.
func ObserveMark() {
	marksPlaced.Inc()
}

// ObserveFrame counts one camera frame.
func ObserveFrame(state model.TrackingState) {
	framesTotal.WithLabelValues(state.String()).Inc()
}
