package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalIngested tracks candidates successfully written (or simulated on
	// a dry run).
	TotalIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_records_total",
		Help: "The total number of candidate records ingested into the catalog.",
	})
	// TotalFailed tracks candidates that errored during resolution or insert.
	TotalFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_failures_total",
		Help: "The total number of candidate records that failed to ingest.",
	})
	// TotalSkipped tracks candidates dropped for missing required fields.
	TotalSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_skipped_total",
		Help: "The total number of candidate records skipped during validation.",
	})
	// TotalLocalitiesCreated tracks new locality rows created lazily.
	TotalLocalitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_localities_created_total",
		Help: "The total number of locality rows created on first reference.",
	})
)
