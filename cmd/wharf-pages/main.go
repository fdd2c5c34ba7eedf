package main

import (
	"fmt"

	wharfpages "github.com/iver-wharf/wharf-pages"
)

func main() {
	version, err := wharfpages.GetVersion()
	if err != nil {
		fmt.Println("Failed to load version:", err)
	}
	execute(version)
}
