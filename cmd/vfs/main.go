// Command vfs inspects and manipulates files on any filesystem the resolver
// understands: local paths, file://, mock://, s3:// and, when compiled in,
// hdfs:// URIs.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/jmgilman/vfs/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(cli.ExitPanic)
		}
	}()

	os.Exit(cli.Execute())
}
