package stats

import (
	"github.com/geocontent/backend/lib"
	"github.com/geocontent/backend/lib/metrics"
	"github.com/geocontent/backend/lib/settings"
	"github.com/gofiber/adaptor/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Init(store *lib.InitStore) {
	checks := []Checker{
		DBChecker{store.Store},
		LanguageChecker{store.Store},
	}

	version, releaseID := "", ""
	if store.RetrievedSettings.ExposeVersion {
		version, releaseID = settings.BuildInfo()
	}
	store.C.Get("/health", Handler(
		version,
		releaseID,
		"geocontent-api",
		checks,
	))

	if store.RetrievedSettings.EnableMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		reg.MustRegister(metrics.Collectors()...)
		handler := promhttp.HandlerFor(
			reg,
			promhttp.HandlerOpts{},
		)
		store.C.Get("/metrics", adaptor.HTTPHandler(handler))
	}
}
