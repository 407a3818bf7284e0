// SPDX-License-Identifier: MIT

// Command choicekit fits multinomial logit models to choice data, by
// maximum likelihood (fit) or Metropolis-Hastings (sample), and generates
// synthetic conjoint data (simulate).
//
//	choicekit simulate --respondents 500 --tasks 10 --seed 1 -o conjoint.csv
//	choicekit fit conjoint.csv
//	choicekit sample conjoint.csv --config run.yaml --seed-at-mle
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
