package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-stft/dsp/window"
)

func ExampleGenerate() {
	w, err := window.Generate(window.TypeHann, 4)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleParseType() {
	t, err := window.ParseType("hanning")
	if err != nil {
		panic(err)
	}
	fmt.Println(t, window.Info(t).ENBW)
	// Output:
	// hann 1.5
}
