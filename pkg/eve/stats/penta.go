package stats

import "math"

// Penta counts the results of game pairs, where both players play each
// opening once with either colour.
type Penta struct {
	LossLoss int `yaml:"loss-loss"`
	DrawLoss int `yaml:"draw-loss"`
	DrawDraw int `yaml:"draw-draw"` // includes win-loss pairs
	WinDraw  int `yaml:"win-draw"`
	WinWin   int `yaml:"win-win"`
}

func (penta Penta) Pairs() int {
	return penta.LossLoss + penta.DrawLoss + penta.DrawDraw + penta.WinDraw + penta.WinWin
}

// pairScores are the scores of the five pair outcomes, loss-loss first.
var pairScores = [5]float64{0, 0.25, 0.5, 0.75, 1}

// priors returns the pair outcome probabilities, loss-loss first, with
// half a pair added to each outcome, and the adjusted number of pairs.
func (penta Penta) priors() (p [5]float64, n float64) {
	counts := [5]int{penta.LossLoss, penta.DrawLoss, penta.DrawDraw, penta.WinDraw, penta.WinWin}

	n = float64(penta.Pairs()) + 2.5
	for i, count := range counts {
		p[i] = (float64(count) + 0.5) / n
	}

	return p, n
}

// variance returns the variance of a pair's score around mu.
func variance(p [5]float64, mu float64) float64 {
	sum := 0.0
	for i, score := range pairScores {
		sum += p[i] * math.Pow(score-mu, 2)
	}

	return sum
}

func mean(p [5]float64) float64 {
	mu := 0.0
	for i, score := range pairScores {
		mu += p[i] * score
	}

	return mu
}

// LLR compares the fit of the elo0 and elo1 hypotheses to the pair results
// under a pentanomial model and returns the log-likelihood ratio.
func (penta Penta) LLR(elo0, elo1 float64) float64 {
	p, n := penta.priors()

	// standard deviation (multiplied by sqrt of N) of the random variable
	r := math.Sqrt(variance(p, mean(p)))

	// convert elo bounds to score
	mu0 := nEloToScore(elo0, r)
	mu1 := nEloToScore(elo1, r)

	// deviation to the score bounds
	r0 := variance(p, mu0)
	r1 := variance(p, mu1)

	if r0 == 0 || r1 == 0 {
		return 0
	}

	// this is not the exact llr formula but rather a simplified yet very
	// accurate approximation. see http://hardy.uhasselt.be/Fishtest/support_MLE_multinomial.pdf
	return 0.5 * n * math.Log(r0/r1)
}

// Elo returns the best fit elo for the pair results and its 95% bounds.
func (penta Penta) Elo() (muMin float64, mu float64, muMax float64) {
	p, n := penta.priors()

	mu = mean(p)
	sigma := math.Sqrt(variance(p, mu)) / math.Sqrt(n)

	return interval(mu, sigma)
}
