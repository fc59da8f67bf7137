package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the devicekey collectors only, so textfile output stays free of
// process and runtime metrics.
var Registry = prometheus.NewRegistry()

var resolutions = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Name: "devicekey_resolutions_total",
		Help: "Number of device key resolutions by platform and identifier source.",
	},
	[]string{"platform", "source"},
)

// ObserveResolution records which source produced the device key.
func ObserveResolution(platform, source string) {
	resolutions.WithLabelValues(platform, source).Inc()
}

// WriteTextfile writes all collected metrics to path in the node exporter
// textfile collector format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
