package perm_test

import (
	"fmt"

	"github.com/matzehuels/covertower/pkg/perm"
)

func ExampleNextLex() {
	// Walk all permutations of 3 elements in lexicographic order
	p := perm.Seq(3)
	for {
		fmt.Println(perm.Rank(p), p)
		if !perm.NextLex(p) {
			break
		}
	}
	// Output:
	// 0 [0 1 2]
	// 1 [0 2 1]
	// 2 [1 0 2]
	// 3 [1 2 0]
	// 4 [2 0 1]
	// 5 [2 1 0]
}

func ExampleFactorial() {
	fmt.Println("4! =", perm.Factorial(4))
	fmt.Println("5! =", perm.Factorial(5))
	// Output:
	// 4! = 24
	// 5! = 120
}

func ExampleGroup_Minimal() {
	g := perm.MustSym(3)
	for _, p := range g.Minimal() {
		fmt.Println(p.Rank(), g.Format(p), len(g.Aut(p)))
	}
	// Output:
	// 0 () 0
	// 1 (1 2) 2
	// 3 (0 1 2) 3
}

func ExampleGroup_Pow() {
	g := perm.MustSym(4)
	p, _ := g.FromImages([]int{1, 2, 3, 0})
	fmt.Println(g.Format(p))
	fmt.Println(g.Format(g.Pow(p, 2)))
	fmt.Println(g.Format(g.Pow(p, -1)))
	// Output:
	// (0 1 2 3)
	// (0 2)(1 3)
	// (0 3 2 1)
}
