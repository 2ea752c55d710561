// Package pbrt4 loads pbrt-v4 scene description files.
//
// A scene description is parsed in three stages: a Tokenizer splits the
// text into tokens, a Parser turns the token stream into directives
// (Elements), and a loader interprets the directives against a graphics
// state machine to produce a Scene. Use LoadFile or LoadString for the
// whole pipeline, or drive a Parser directly for streaming access to
// the directives.
package pbrt4

import "fmt"

var Verbose bool

func Debug(args ...interface{}) {
	if Verbose {
		max := len(args) - 1
		for i := 0; i < max; i++ {
			fmt.Print(str(args[i]))
		}
		fmt.Println(str(args[max]))
	}
}

func str(arg interface{}) string {
	return fmt.Sprintf("%v", arg)
}
