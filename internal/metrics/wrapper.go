package metrics

// Wrapper adapts Metrics to the narrow interfaces consumed by the sports
// fetcher, the renderer and the dashboard, so those packages never import
// prometheus directly.
type Wrapper struct {
	m *Metrics
}

// NewWrapper creates a metrics wrapper around m.
func NewWrapper(m *Metrics) *Wrapper {
	return &Wrapper{m: m}
}

// FetchObserve counts a fetch for sport and records its duration.
func (w *Wrapper) FetchObserve(sport string, seconds float64) {
	w.m.FetchesTotal.WithLabelValues(sport).Inc()
	w.m.FetchDuration.Observe(seconds)
}

// FetchFailedInc counts a failed fetch by sport and reason.
func (w *Wrapper) FetchFailedInc(sport, reason string) {
	w.m.FetchFailures.WithLabelValues(sport, reason).Inc()
}

// ItemsSkippedAdd adds n malformed payload items skipped for sport.
func (w *Wrapper) ItemsSkippedAdd(sport string, n int) {
	w.m.ItemsSkipped.WithLabelValues(sport).Add(float64(n))
}

// MatchesFetchedAdd adds n matches extracted for sport.
func (w *Wrapper) MatchesFetchedAdd(sport string, n int) {
	w.m.MatchesFetched.WithLabelValues(sport).Add(float64(n))
}

// PayloadShapeInc counts a decoded payload by envelope shape.
func (w *Wrapper) PayloadShapeInc(shape string) {
	w.m.PayloadShapes.WithLabelValues(shape).Inc()
}

// PredictionInc counts a rendered prediction by label.
func (w *Wrapper) PredictionInc(label string) {
	w.m.PredictionsTotal.WithLabelValues(label).Inc()
}

// RateLimitedInc counts a fetch rejected by the dashboard limiter.
func (w *Wrapper) RateLimitedInc() {
	w.m.RateLimitedTotal.Inc()
}

// HistoryWriteFailedInc counts a failed prediction history write.
func (w *Wrapper) HistoryWriteFailedInc() {
	w.m.HistoryWriteFails.Inc()
}
