package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/orbsim/internal/sim"
)

const namespace = "orbsim"

// Collectors exports frame statistics to Prometheus. It implements
// sim.Observer and sim.ErrorObserver.
type Collectors struct {
	framesTotal    prometheus.Counter
	frameDuration  prometheus.Histogram
	visiblePoints  prometheus.Gauge
	lobePoints     *prometheus.GaugeVec
	phase          prometheus.Gauge
	threshold      prometheus.Gauge
	classifyErrors prometheus.Counter
}

// NewCollectors registers the collectors with reg, or with the default
// registry when reg is nil.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collectors{
		framesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames classified",
		}),
		frameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent classifying one frame",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}),
		visiblePoints: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "visible_points",
			Help:      "Points above the cutoff in the latest frame",
		}),
		lobePoints: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lobe_points",
			Help:      "Visible points per lobe in the latest frame",
		}, []string{"lobe"}),
		phase: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_radians",
			Help:      "Accumulated animation phase",
		}),
		threshold: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "threshold",
			Help:      "User threshold of the latest frame",
		}),
		classifyErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classify_errors_total",
			Help:      "Frames skipped after a classification error",
		}),
	}
}

func (c *Collectors) OnFrame(fr sim.Frame) {
	c.framesTotal.Inc()
	c.frameDuration.Observe(fr.Duration.Seconds())
	c.visiblePoints.Set(float64(fr.Visible))
	c.lobePoints.WithLabelValues("a").Set(float64(fr.LobeA))
	c.lobePoints.WithLabelValues("b").Set(float64(fr.LobeB))
	c.phase.Set(fr.Phase)
	c.threshold.Set(float64(fr.Threshold))
}

func (c *Collectors) OnError(index int, err error) {
	c.classifyErrors.Inc()
}

// Handler serves g in the Prometheus exposition format. A nil g serves the
// default registry.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
