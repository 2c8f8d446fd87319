// Command xenlyc compiles a Xenly program to a native x86-64 binary.
package main

import "github.com/xenly-lang/xenly/cmd/xenlyc/cmd"

func main() {
	cmd.Execute()
}
