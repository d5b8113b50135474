package transform_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-stft/dsp/transform"
)

func ExampleNew() {
	tr, err := transform.New[complex128](transform.BackendAuto, 8)
	if err != nil {
		panic(err)
	}

	buf := []complex128{1, 1, 1, 1, 1, 1, 1, 1}
	if err := tr.Forward(buf, buf); err != nil {
		panic(err)
	}

	fmt.Printf("DC=%.1f bin1=%.1f\n", cmplx.Abs(buf[0]), cmplx.Abs(buf[1]))
	// Output: DC=8.0 bin1=0.0
}
