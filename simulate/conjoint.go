// SPDX-License-Identifier: MIT
// Package: choicekit/simulate
//
// conjoint.go — the reference streaming-service conjoint generator.

package simulate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/choicekit/choice"
)

// DefaultOffers is the number of alternatives per task.
const DefaultOffers = 3

// Attribute levels of the reference design.
var (
	brands      = []string{"N", "P", "H"}
	priceLevels = []float64{8, 12, 16, 20, 24, 28, 32}

	referenceNames = []string{"brand_N", "brand_P", "ads", "price"}
	referenceTruth = []float64{1.0, 0.5, -0.8, -0.1}
)

// ReferenceNames returns the covariate names in parameter order.
func ReferenceNames() []string { return append([]string(nil), referenceNames...) }

// ReferenceTruth returns the reference part-worths in ReferenceNames order.
func ReferenceTruth() []float64 { return append([]float64(nil), referenceTruth...) }

// Conjoint simulates respondents × tasks choice tasks.
// Task IDs are "r<respondent>-t<task>" (1-based); alternative IDs are
// "1".."n".
func Conjoint(respondents, tasks int, opts ...Option) (*choice.Dataset, error) {
	cfg := newConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("Conjoint: %w", ErrNeedRandSource)
	}
	if respondents < 1 || tasks < 1 {
		return nil, fmt.Errorf("Conjoint(%d, %d): %w", respondents, tasks, ErrTooFewTasks)
	}

	rng := cfg.rng
	records := make([]choice.Record, 0, respondents*tasks*cfg.offers)
	utils := make([]float64, cfg.offers)

	for r := 1; r <= respondents; r++ {
		for t := 1; t <= tasks; t++ {
			id := "r" + strconv.Itoa(r) + "-t" + strconv.Itoa(t)
			start := len(records)
			for j := 0; j < cfg.offers; j++ {
				x := drawOffer(rng.IntN(len(brands)), rng.IntN(2), rng.IntN(len(priceLevels)))
				u := 0.0
				for k, b := range cfg.truth {
					u += b * x[k]
				}
				utils[j] = u + gumbel(rng)
				records = append(records, choice.Record{
					TaskID:        id,
					AlternativeID: strconv.Itoa(j + 1),
					Values:        x,
				})
			}
			records[start+argmax(utils)].Chosen = true
		}
	}

	return choice.NewDataset(ReferenceNames(), records, choice.WithAlternatives(cfg.offers))
}

// drawOffer encodes one offer as [brand_N, brand_P, ads, price].
func drawOffer(brand, ads, price int) []float64 {
	x := make([]float64, len(referenceNames))
	switch brands[brand] {
	case "N":
		x[0] = 1
	case "P":
		x[1] = 1
	}
	x[2] = float64(ads)
	x[3] = priceLevels[price]

	return x
}

// gumbel draws a standard Gumbel variate by inversion.
func gumbel(rng interface{ Float64() float64 }) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}

	return -math.Log(-math.Log(u))
}

func argmax(v []float64) int {
	best := 0
	for j := 1; j < len(v); j++ {
		if v[j] > v[best] {
			best = j
		}
	}

	return best
}
