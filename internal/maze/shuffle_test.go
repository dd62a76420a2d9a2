package maze

import (
	"fmt"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestShufflePermutes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := []int{0, 1, 2, 3, 4, 5, 6, 7}
	Shuffle(rng, s)

	seen := make(map[int]bool)
	for _, v := range s {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("Shuffle lost or duplicated elements: %v", s)
	}
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var empty []int
	Shuffle(rng, empty)

	one := []int{42}
	Shuffle(rng, one)
	if one[0] != 42 {
		t.Errorf("Shuffle of single element changed it: %v", one)
	}
}

func TestShuffleFairness(t *testing.T) {
	// Every one of the 4! neighbour orderings should be equally likely.
	const trials = 48000
	const orderings = 24

	rng := rand.New(rand.NewSource(2024))
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		s := []direction{dirUp, dirDown, dirLeft, dirRight}
		Shuffle(rng, s)
		counts[fmt.Sprint(s)]++
	}

	if len(counts) != orderings {
		t.Fatalf("observed %d distinct orderings, expected %d", len(counts), orderings)
	}

	expected := float64(trials) / orderings
	chi2 := 0.0
	for _, observed := range counts {
		d := float64(observed) - expected
		chi2 += d * d / expected
	}

	critical := distuv.ChiSquared{K: orderings - 1}.Quantile(0.9999)
	if chi2 > critical {
		t.Errorf("chi-squared = %.2f exceeds critical value %.2f; shuffle looks biased", chi2, critical)
	}
}
