package store

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dawai/m/internal/errs"
)

var (
	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dawai",
			Name:      "store_operations_total",
			Help:      "Store operations by outcome",
		},
		[]string{"op", "result"},
	)
	skippedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dawai",
			Name:      "store_skipped_records_total",
			Help:      "Records skipped during listing scans because their body could not be decoded",
		},
	)
)

func observe(op string, err error) {
	storeOperations.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrInvalid):
		return "invalid"
	case errors.Is(err, errs.ErrAlreadyExists):
		return "conflict"
	default:
		return "error"
	}
}
