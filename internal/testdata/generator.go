// Package testdata builds random gesture scripts for tests.
package testdata

import (
	"fmt"
	"math/rand"

	"github.com/jask/rowedit/internal/script"
)

var labels = []string{"milk", "eggs", "bread", "coffee", "rice", "apples", "tea", "butter"}

// Seed returns n labels, cycling through the sample pool.
func Seed(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = labels[i%len(labels)]
	}
	return out
}

// Script builds a script of n gestures over a list seeded with seedLen rows.
// Every step is valid for the list as it stands when the step runs.
func Script(r *rand.Rand, seedLen, n int) *script.Script {
	s := &script.Script{Seed: Seed(seedLen)}
	count := seedLen
	for i := 0; i < n; i++ {
		op := []string{"select", "delete", "add", "move"}[r.Intn(4)]
		if count == 0 {
			op = "add"
		}
		step := script.Step{Op: op}
		switch op {
		case "select":
			step.Index = r.Intn(count)
		case "delete":
			step.Index = r.Intn(count)
			count--
		case "add":
			if r.Intn(3) > 0 {
				step.Label = fmt.Sprintf("%s-%d", labels[r.Intn(len(labels))], i)
			}
			count++
		case "move":
			step.From = r.Intn(count)
			step.To = r.Intn(count)
		}
		s.Steps = append(s.Steps, step)
	}
	return s
}
