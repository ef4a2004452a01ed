package main

import (
	"fmt"
	"os"

	"github.com/jetsetilly/scorewatch/capture"
	"github.com/jetsetilly/scorewatch/gui"
	"github.com/jetsetilly/scorewatch/tracker"
	"github.com/jetsetilly/scorewatch/ui"
)

func main() {
	var endGui chan bool
	var endTracker chan bool
	var resultGui chan error
	var resultTracker chan error

	// buffered channels. this means we don't have to worry about the gui
	// closing before the tracker and vice versa
	endGui = make(chan bool, 1)
	endTracker = make(chan bool, 1)

	// similarly, the result channels are buffered because we don't know the
	// order in which the gui and tracker will end
	resultGui = make(chan error, 1)
	resultTracker = make(chan error, 1)

	u := ui.NewUI()

	// written by the tracker goroutine before it sends on resultTracker
	var summary capture.Summary

	go func() {
		resultGui <- gui.Launch(endGui, u)
		endTracker <- true
	}()

	go func() {
		var err error
		summary, err = tracker.Launch(endTracker, u, os.Args[1:])
		resultTracker <- err
		endGui <- true
	}()

	if err := <-resultGui; err != nil {
		fmt.Printf("*** %s\n", err)
	}
	if err := <-resultTracker; err != nil {
		fmt.Printf("*** %s\n", err)
		return
	}

	fmt.Println(summary.String())
}
