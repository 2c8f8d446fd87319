// Command xenly runs a Xenly program with the tree-walking interpreter.
package main

import "github.com/xenly-lang/xenly/cmd/xenly/cmd"

func main() {
	cmd.Execute()
}
