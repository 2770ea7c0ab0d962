// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// # HTTP

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tankobon_http_requests_total",
		Help: "Total number of HTTP requests handled by the API",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tankobon_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// # Catalogue

var (
	CatalogDerivesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tankobon_catalog_derives_total",
		Help: "Total number of catalogue pages derived, by sort key",
	}, []string{"sort"})

	CatalogEmptyResultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tankobon_catalog_empty_results_total",
		Help: "Total number of derived pages with no matching title",
	})

	ViewSessionsOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tankobon_view_sessions_opened_total",
		Help: "Total number of catalogue view sessions opened",
	})

	CatalogTitles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tankobon_catalog_titles",
		Help: "Number of titles in the loaded catalogue snapshot",
	})
)
