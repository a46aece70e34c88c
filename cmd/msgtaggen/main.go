// Binary msgtaggen writes the message tag companion of a protoc-gen-go file.
//
// It is meant to run from a go:generate directive next to the .pb.go file:
//
//	//go:generate go run github.com/fis/speedychess/cmd/msgtaggen -in chess.pb.go -out pbgen.go
//
// The output declares one <Type>Msg constant per message type, numbered from
// zero in the order the types appear in the input, and a NewMsg function
// returning a new message for a tag.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/fis/speedychess/msgtag"
)

var (
	inPath   = flag.String("in", "chesspb.pb.go", "protoc-gen-go output to scan for message types")
	outPath  = flag.String("out", "pbgen.go", "file to write")
	pkgName  = flag.String("pkg", "", "package of the generated file (default: package of the input)")
	suffix   = flag.String("suffix", "Msg", "suffix appended to type names to form tag constants")
	funcName = flag.String("func", "NewMsg", "name of the generated constructor")
	tagType  = flag.String("tagtype", "byte", "integer type of the constructor's tag parameter")
	verbose  = flag.Bool("v", false, "log every extracted message type")
)

func main() {
	flag.Parse()
	log.SetPrefix("msgtaggen")
	log.SetReportTimestamp(false)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if err := run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run() error {
	if flag.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %q", flag.Args())
	}

	src, err := os.ReadFile(*inPath)
	if err != nil {
		return err
	}

	types := msgtag.Extract(src)
	if len(types) == 0 {
		log.Warn("no message types found, every tag will be rejected", "in", *inPath)
	}
	for i, name := range types {
		log.Debug("message type", "tag", i, "type", name)
	}

	opts := msgtag.DefaultOptions()
	opts.Suffix = *suffix
	opts.FuncName = *funcName
	opts.TagType = *tagType
	opts.Package = *pkgName
	if opts.Package == "" {
		var ok bool
		if opts.Package, ok = msgtag.PackageName(src); !ok {
			return fmt.Errorf("%s: no package clause, use -pkg", *inPath)
		}
	}

	out, err := msgtag.Generate(types, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", *inPath, err)
	}
	if err := os.WriteFile(*outPath, out, 0o666); err != nil {
		return err
	}
	log.Debug("wrote message tags", "out", *outPath, "count", len(types))
	return nil
}
