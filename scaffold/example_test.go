package scaffold_test

import (
	"fmt"

	"github.com/katalvlaran/molsplit/scaffold"
)

// ExampleKey groups molecules that share a ring framework.
func ExampleKey() {
	a, _ := scaffold.Key("CCc1ccccc1", false)
	b, _ := scaffold.Key("Oc1ccccc1", false)
	c, _ := scaffold.Key("CCCO", false)

	fmt.Println(a == b)
	fmt.Printf("%q\n", c)
	// Output:
	// true
	// ""
}
