// Binary protoc-gen-go-msgtag is a protoc plugin producing the same message
// tag file as msgtaggen, but from the proto descriptors instead of the
// protoc-gen-go output.
//
//	protoc --go_out=. --go-msgtag_out=. --go-msgtag_opt=tag_type=byte chess.proto
//
// Tags follow protoc-gen-go's message type table ("flattened ordering"): the
// messages of each level in declaration order, then the nested messages of
// each of them in turn, with map entries left out.
package main

import (
	"flag"
	"fmt"

	"google.golang.org/protobuf/compiler/protogen"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/fis/speedychess/msgtag"
)

const version = "1.0.0"

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Printf("protoc-gen-go-msgtag %v\n", version)
		return
	}

	var params flag.FlagSet
	opts := options(&params)
	protogen.Options{ParamFunc: params.Set}.Run(func(gen *protogen.Plugin) error {
		return generate(gen, *opts)
	})
}

// options registers the plugin parameters on fs.
func options(fs *flag.FlagSet) *msgtag.Options {
	opts := msgtag.DefaultOptions()
	opts.Command = "protoc-gen-go-msgtag"
	fs.StringVar(&opts.Suffix, "suffix", opts.Suffix, "suffix appended to type names to form tag constants")
	fs.StringVar(&opts.FuncName, "func", opts.FuncName, "name of the generated constructor")
	fs.StringVar(&opts.TagType, "tag_type", opts.TagType, "integer type of the constructor's tag parameter")
	return &opts
}

func generate(gen *protogen.Plugin, opts msgtag.Options) error {
	for _, file := range gen.Files {
		if !file.Generate {
			continue
		}
		if err := generateFile(gen, file, opts); err != nil {
			return err
		}
	}
	gen.SupportedFeatures = uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)
	return nil
}

func generateFile(gen *protogen.Plugin, file *protogen.File, opts msgtag.Options) error {
	opts.Package = string(file.GoPackageName)
	src, err := msgtag.Generate(messageTypes(file.Messages), opts)
	if err != nil {
		return fmt.Errorf("%s: %w", file.Desc.Path(), err)
	}
	g := gen.NewGeneratedFile(file.GeneratedFilenamePrefix+"_msgtag.pb.go", file.GoImportPath)
	_, err = g.Write(src)
	return err
}

func messageTypes(messages []*protogen.Message) []string {
	var names []string
	for _, m := range messages {
		if !m.Desc.IsMapEntry() {
			names = append(names, m.GoIdent.GoName)
		}
	}
	for _, m := range messages {
		names = append(names, messageTypes(m.Messages)...)
	}
	return names
}
