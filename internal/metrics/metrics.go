package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	SubmissionsRecorded prometheus.Counter
	SubmissionsRejected prometheus.Counter
	SubmissionsFailed   prometheus.Counter
	RowsAppended        prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	recorded := prometheus.NewCounter(prometheus.CounterOpts{Name: "sales_submissions_recorded_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "sales_submissions_rejected_total"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "sales_submissions_failed_total"})
	rows := prometheus.NewCounter(prometheus.CounterOpts{Name: "sales_rows_appended_total"})

	r.MustRegister(recorded, rejected, failed, rows)
	return &Registry{
		reg:                 r,
		SubmissionsRecorded: recorded,
		SubmissionsRejected: rejected,
		SubmissionsFailed:   failed,
		RowsAppended:        rows,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
