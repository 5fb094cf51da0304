// Package reconcile computes the derived total of a document's indicated
// amounts. The transfer fee is a per-transaction charge: it is added once for
// every nonzero cost category actually being remitted, never to the base sum.
package reconcile

import (
	"math"

	"github.com/docstream-pl/bailiff-extract/constants"
)

// SumOfAllCosts derives the total from the indicated amounts. The input map
// contains only fields present in the document; an absent field is excluded,
// a present-but-zero field contributes to neither the base sum nor the
// transfer-fee multiplier.
//
// total = sum(non-transfer fields) + transferFee * count(nonzero non-transfer fields)
// rounded to 2 decimal places.
func SumOfAllCosts(amounts map[string]float64) float64 {
	var baseSum float64
	multiplier := 0
	for key, value := range amounts {
		if key == constants.FieldTransferFee {
			continue
		}
		baseSum += value
		if value != 0 {
			multiplier++
		}
	}
	total := baseSum + amounts[constants.FieldTransferFee]*float64(multiplier)
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
