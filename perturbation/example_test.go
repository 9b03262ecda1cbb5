package perturbation_test

import (
	"fmt"

	"github.com/katalvlaran/diim/perturbation"
)

func ExampleSource_Forcing() {
	src := perturbation.New([]string{"Power", "Water"})
	_ = src.Reconfigure(
		[]string{"Water"},
		[]perturbation.Window{{Start: 1, End: 3}},
		[]float64{0.25},
	)
	for t := 0.0; t <= 4; t++ {
		fmt.Println(t, src.Forcing(t))
	}
	// Output:
	// 0 [0 0]
	// 1 [0 0.25]
	// 2 [0 0.25]
	// 3 [0 0.25]
	// 4 [0 0]
}
