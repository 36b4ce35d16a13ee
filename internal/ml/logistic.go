package ml

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Sample is one training row.
type Sample struct {
	HomeOdds float64
	AwayOdds float64
	Result   int
}

var trainingSet = []Sample{
	{HomeOdds: 1.9, AwayOdds: 3.5, Result: 1},
	{HomeOdds: 2.1, AwayOdds: 3.2, Result: 0},
	{HomeOdds: 1.8, AwayOdds: 3.8, Result: 1},
	{HomeOdds: 1.7, AwayOdds: 4.0, Result: 1},
	{HomeOdds: 2.4, AwayOdds: 2.9, Result: 0},
}

// TrainingSet returns a copy of the built-in synthetic dataset.
func TrainingSet() []Sample {
	out := make([]Sample, len(trainingSet))
	copy(out, trainingSet)
	return out
}

// FitConfig controls the regularized Newton solver.
type FitConfig struct {
	C       float64 // inverse L2 strength; the intercept is not penalized
	MaxIter int
	Tol     float64 // stop once the largest step component is below Tol
}

// DefaultFitConfig returns C=1 with a tight convergence tolerance.
func DefaultFitConfig() FitConfig {
	return FitConfig{C: 1.0, MaxIter: 100, Tol: 1e-10}
}

// LogisticModel is a fitted two-feature logistic regression.
type LogisticModel struct {
	Intercept  float64
	Weights    [2]float64
	Iterations int
}

var (
	ErrNoSamples   = errors.New("no training samples")
	ErrSingleClass = errors.New("training set needs both classes")
)

// BuildClassifier fits the model on the built-in dataset with default
// settings. The result is deterministic.
func BuildClassifier() (*LogisticModel, error) {
	m, err := Fit(trainingSet, DefaultFitConfig())
	if err != nil {
		return nil, err
	}
	log.Info().
		Float64("intercept", m.Intercept).
		Float64("w_home", m.Weights[0]).
		Float64("w_away", m.Weights[1]).
		Int("iterations", m.Iterations).
		Msg("classifier fitted")
	return m, nil
}

// Fit minimizes 0.5*||w||^2 + C*sum(logloss) with Newton-Raphson steps.
func Fit(samples []Sample, cfg FitConfig) (*LogisticModel, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if cfg.C <= 0 {
		return nil, fmt.Errorf("C must be positive, got %f", cfg.C)
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultFitConfig().MaxIter
	}

	var pos, neg int
	for i, s := range samples {
		if !finite(s.HomeOdds) || !finite(s.AwayOdds) {
			return nil, fmt.Errorf("sample %d: non-finite feature", i)
		}
		switch s.Result {
		case 0:
			neg++
		case 1:
			pos++
		default:
			return nil, fmt.Errorf("sample %d: result must be 0 or 1, got %d", i, s.Result)
		}
	}
	if pos == 0 || neg == 0 {
		return nil, ErrSingleClass
	}

	// theta = [intercept, w_home, w_away]
	var theta [3]float64
	iter := 0
	for iter < cfg.MaxIter {
		iter++

		grad := [3]float64{0, theta[1] / cfg.C, theta[2] / cfg.C}
		hess := [3][3]float64{}
		hess[1][1] = 1 / cfg.C
		hess[2][2] = 1 / cfg.C

		for _, s := range samples {
			x := [3]float64{1, s.HomeOdds, s.AwayOdds}
			p := sigmoid(theta[0] + theta[1]*x[1] + theta[2]*x[2])
			r := p - float64(s.Result)
			w := p * (1 - p)
			for i := 0; i < 3; i++ {
				grad[i] += r * x[i]
				for j := 0; j < 3; j++ {
					hess[i][j] += w * x[i] * x[j]
				}
			}
		}

		step, err := solve3(hess, grad)
		if err != nil {
			return nil, fmt.Errorf("newton step %d: %w", iter, err)
		}

		maxStep := 0.0
		for i := range theta {
			theta[i] -= step[i]
			maxStep = math.Max(maxStep, math.Abs(step[i]))
		}
		if maxStep < cfg.Tol {
			break
		}
	}

	return &LogisticModel{
		Intercept:  theta[0],
		Weights:    [2]float64{theta[1], theta[2]},
		Iterations: iter,
	}, nil
}

// Decision returns the linear score; positive means HomeWin.
func (m *LogisticModel) Decision(homeOdds, awayOdds float64) float64 {
	return m.Intercept + m.Weights[0]*homeOdds + m.Weights[1]*awayOdds
}

// Probability returns P(HomeWin). Non-finite inputs yield 0.
func (m *LogisticModel) Probability(homeOdds, awayOdds float64) float64 {
	z := m.Decision(homeOdds, awayOdds)
	if math.IsNaN(z) {
		return 0
	}
	return sigmoid(z)
}

// Predict returns HomeWin when the decision score is strictly positive.
func (m *LogisticModel) Predict(homeOdds, awayOdds float64) int {
	if m == nil {
		return AwayOrDraw
	}
	if m.Decision(homeOdds, awayOdds) > 0 {
		return HomeWin
	}
	return AwayOrDraw
}

// sigmoid is evaluated on the side that cannot overflow.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// solve3 solves a*x = b with partial pivoting.
func solve3(a [3][3]float64, b [3]float64) ([3]float64, error) {
	const n = 3
	for col := 0; col < n; col++ {
		piv := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[piv][col]) {
				piv = r
			}
		}
		if math.Abs(a[piv][col]) < 1e-12 {
			return [3]float64{}, errors.New("singular hessian")
		}
		a[col], a[piv] = a[piv], a[col]
		b[col], b[piv] = b[piv], b[col]

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := a[r][col] / a[col][col]
			for k := col; k < n; k++ {
				a[r][k] -= f * a[col][k]
			}
			b[r] -= f * b[col]
		}
	}

	var x [3]float64
	for i := 0; i < n; i++ {
		x[i] = b[i] / a[i][i]
	}
	return x, nil
}
