package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mxpv/pbrt4"
)

func main() {
	pVerbose := flag.Bool("v", false, "set to true to enable verbose output")
	pGenerate := flag.String("g", "summary", "output to generate: summary, json or yaml")
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("usage: pbrt4 [options] scene.pbrt")
		os.Exit(1)
	}
	path := args[0]
	pbrt4.Verbose = *pVerbose
	scene, err := pbrt4.LoadFile(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	out, err := export(scene, *pGenerate)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	fmt.Println(out)
}
