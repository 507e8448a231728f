package wfc_test

import (
	"fmt"

	"github.com/vovakirdan/tilesynth/internal/wfc"
)

func ExampleMapGenerator() {
	model, err := wfc.Train([][]wfc.TileID{
		{0, 1},
		{1, 0},
	})
	if err != nil {
		panic(err)
	}

	gen, err := wfc.NewMapGenerator(wfc.NewRNG(1), 2, 2, model)
	if err != nil {
		panic(err)
	}
	for gen.Step() {
	}

	for _, row := range gen.Output() {
		fmt.Println(row)
	}
	fmt.Println(gen.State(), gen.Stats().Contradictions)
	// Output:
	// [0 1]
	// [1 0]
	// done 0
}
