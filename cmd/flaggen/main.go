// Binary flaggen compiles the server/client build flag.
//
// Usage:
//
//	flaggen [-out compile.go] [-pkg flags] true|false
//
// It exits with status 1 if the flags do not parse or it is not given exactly
// one argument, and with status 2 if the argument is not true or false. No
// file is written in any of these cases.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/fis/speedychess/buildflag"
)

var (
	outPath = flag.String("out", "compile.go", "file to write")
	pkgName = flag.String("pkg", "flags", "package of the generated file")
)

func main() {
	log.SetPrefix("flaggen")
	log.SetReportTimestamp(false)
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	flag.Usage = usage
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		// The flag package has already printed the usage text.
		err = &buildflag.UsageError{Err: err}
		log.Error(err)
		os.Exit(buildflag.ExitCode(err))
	}
	if err := run(flag.Args()); err != nil {
		log.Error(err)
		if errors.As(err, new(*buildflag.UsageError)) {
			flag.Usage()
		}
		os.Exit(buildflag.ExitCode(err))
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] true|false\n", os.Args[0])
	flag.PrintDefaults()
}

func run(args []string) error {
	server, err := buildflag.Parse(args)
	if err != nil {
		return err
	}
	src, err := buildflag.Generate(*pkgName, server)
	if err != nil {
		return err
	}
	return os.WriteFile(*outPath, src, 0o666)
}
