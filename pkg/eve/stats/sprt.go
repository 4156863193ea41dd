package stats

import "math"

// WDL counts the game results of a player.
type WDL struct {
	Wins   int `yaml:"wins"`
	Draws  int `yaml:"draws"`
	Losses int `yaml:"losses"`
}

func (wdl WDL) Games() int {
	return wdl.Wins + wdl.Draws + wdl.Losses
}

// Score returns the fraction of the available points the player earned,
// or 0.5 if no games were played.
func (wdl WDL) Score() float64 {
	if wdl.Games() == 0 {
		return 0.5
	}

	return (float64(wdl.Wins) + float64(wdl.Draws)/2) / float64(wdl.Games())
}

// priors returns the result probabilities after a Dirichlet([0.5, 0.5,
// 0.5]) prior, along with the prior adjusted number of games.
func (wdl WDL) priors() (w, d, l, n float64) {
	n = float64(wdl.Games()) + 1.5

	w = (float64(wdl.Wins) + 0.5) / n
	d = (float64(wdl.Draws) + 0.5) / n
	l = (float64(wdl.Losses) + 0.5) / n
	return w, d, l, n
}

// LLR returns the log-likelihood ratio of the elo1 hypothesis against the
// elo0 hypothesis for the results, under a trinomial model.
func (wdl WDL) LLR(elo0, elo1 float64) float64 {
	w, d, l, n := wdl.priors()
	_, dlo := wdlToElo(w, d, l)

	w0, d0, l0 := eloToWDL(elo0, dlo) // elo0 WDL probabilities
	w1, d1, l1 := eloToWDL(elo1, dlo) // elo1 WDL probabilities

	return n * (w*math.Log(w1/w0) +
		d*math.Log(d1/d0) +
		l*math.Log(l1/l0))
}

// Elo returns the likely elo difference of the player along with its 95%
// lower and upper bounds.
func (wdl WDL) Elo() (muMin float64, mu float64, muMax float64) {
	w, d, l, n := wdl.priors()

	// empirical mean of random variable
	mu = w + d/2

	// standard deviation of the random variable
	sigma := math.Sqrt(
		w*math.Pow(1-mu, 2)+
			d*math.Pow(0.5-mu, 2)+
			l*math.Pow(0-mu, 2),
	) / math.Sqrt(n)

	return interval(mu, sigma)
}

// LOS returns the likelihood of superiority: the probability that the
// player is stronger than its opponent given the decisive games.
func (wdl WDL) LOS() float64 {
	decisive := float64(wdl.Wins + wdl.Losses)
	if decisive == 0 {
		return 0.5
	}

	return 0.5 * (1 + math.Erf(float64(wdl.Wins-wdl.Losses)/math.Sqrt(2*decisive)))
}
