package main

import (
	"flag"
	"fmt"
	"os"
	"path"
)

// Options gathers user parameters together.
type Options struct {
	image   string
	config  string
	verbose bool
	debug   bool
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [OPTIONS] ACTION [PARAMS]\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
ACTION & PARAMS can be:
- show              list each slot with its on & off times
- set SLOT TIME     program slot SLOT to come on at TIME (H:MM or
                      minutes after midnight)
- clear SLOT        unset slot SLOT
- status            print the any-set / warm-now / warm-soon answers`)
	}

	var options Options
	flag.StringVar(&options.image, "image",
		path.Join(os.Getenv("HOME"), ".trvsched-image"),
		"schedule image file")
	flag.StringVar(&options.config, "config", "", "YAML parameters file")
	flag.BoolVar(&options.verbose, "verbose", false, "print verbose information")
	flag.BoolVar(&options.debug, "debug", false, "log physical store writes")

	flag.Parse()

	if len(flag.Args()) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	actionName, params := flag.Args()[0], flag.Args()[1:]

	action := actions[actionName]
	if action == nil {
		fmt.Fprintf(os.Stderr, "*** bad action `%s'\n", actionName)
		flag.Usage()
		os.Exit(1)
	}

	err := action.Do(&options, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
