// tablets lists the evdev pen devices visible on this machine.
package main

import (
	"fmt"
	"os"

	"github.com/pensteer/pensteer/pkg/source"
)

func main() {
	tablets, err := source.Tablets()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if len(tablets) == 0 {
		fmt.Println("No pen devices found.")
		return
	}
	for _, t := range tablets {
		fmt.Printf("%s\t%s\n", t.Path, t.Name)
	}
}
