package textdiff_test

import (
	"fmt"

	"xdiff.dev/diff"
	"xdiff.dev/diff/textdiff"
)

func ExampleUnified() {
	x := `package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`
	y := `package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "hello")
}
`
	fmt.Print(textdiff.Unified(x, y, diff.Context(0)))
	// Output:
	// @@ -3,1 +3,4 @@
	// -import "fmt"
	// +import (
	// +	"fmt"
	// +	"os"
	// +)
	// @@ -6,1 +9,1 @@
	// -	fmt.Println("hello")
	// +	fmt.Fprintln(os.Stderr, "hello")
}

// The indent heuristic shifts the inserted block so that it starts at the new "map" statement
// instead of in the middle of the existing one.
func ExampleIndentHeuristic() {
	x := "// ...\n" +
		"xs.map do |x|\n" +
		"  x.upcase\n" +
		"end\n"
	y := "// ...\n" +
		"xs.map do |x|\n" +
		"  x\n" +
		"end\n" +
		"\n" +
		"xs.map do |x|\n" +
		"  x.upcase\n" +
		"end\n"

	fmt.Print(textdiff.Unified(x, y, textdiff.IndentHeuristic(), diff.Context(0)))
	// Output:
	// @@ -1,0 +2,4 @@
	// +xs.map do |x|
	// +  x
	// +end
	// +
}

func ExampleIgnoreWhitespace() {
	x := "if ok {\n\treturn nil\n}\n"
	y := "if ok {\n    return nil\n}\nreturn err\n"

	fmt.Print(textdiff.Unified(x, y, textdiff.IgnoreWhitespace(), diff.Context(0)))
	// Output:
	// @@ -3,0 +4,1 @@
	// +return err
}

func ExampleEdits() {
	for _, e := range textdiff.Edits("a\nb\nc\n", "a\nB\nc\n") {
		fmt.Printf("%-6v x=%2d y=%2d %q\n", e.Op, e.LineNoX, e.LineNoY, e.Line)
	}
	// Output:
	// Match  x= 0 y= 0 "a\n"
	// Delete x= 1 y=-1 "b\n"
	// Insert x=-1 y= 1 "B\n"
	// Match  x= 2 y= 2 "c\n"
}
