package web

import (
	"github.com/kataras/iris/v12"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func metricsHandler(g prometheus.Gatherer) func(iris.Context) error {
	h := iris.FromStd(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return func(ctx iris.Context) error {
		h(ctx)
		return nil
	}
}
