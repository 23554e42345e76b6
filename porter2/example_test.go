package porter2_test

import (
	"fmt"

	"github.com/Kush-Singh-26/stemr/porter2"
)

func ExampleStem() {
	for _, w := range []string{"running", "generously", "skies", "sayings", "consolingly"} {
		fmt.Println(w, porter2.Stem(w))
	}
	// Output:
	// running run
	// generously generous
	// skies sky
	// sayings say
	// consolingly consol
}
