// Package msgtag derives message tag constants and a tag-keyed constructor
// from the output of protoc-gen-go.
//
// The input is not parsed as Go. Message types are recognized by lines that
// start with Marker, which protoc-gen-go emits once per message in its type
// table (and possibly elsewhere, hence the deduplication). Qualified names
// such as timestamppb.Timestamp are messages imported from other packages;
// they are declared elsewhere and get no tag, just as the protoc plugin
// front end only sees the messages of the file itself.
package msgtag

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strings"
)

// Marker starts every line naming a message type.
const Marker = "\t(*"

// Extract returns the names of the message types declared in src, in order of
// first appearance, without duplicates.
func Extract(src []byte) []string {
	var (
		types []string
		seen  = map[string]bool{}
	)
	for _, line := range strings.Split(string(src), "\n") {
		if len(line) <= len(Marker) || !strings.HasPrefix(line, Marker) {
			continue
		}
		name, _, found := strings.Cut(line[len(Marker):], ")")
		if !found || name == "" || strings.Contains(name, ".") || seen[name] {
			continue
		}
		seen[name] = true
		types = append(types, name)
	}
	return types
}

// PackageName returns the name from the first package clause in src.
func PackageName(src []byte) (string, bool) {
	for _, line := range strings.Split(string(src), "\n") {
		rest, ok := strings.CutPrefix(line, "package ")
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(strings.TrimSpace(rest), " ")
		if token.IsIdentifier(name) {
			return name, true
		}
	}
	return "", false
}

// Options control the names and types used in the generated file.
type Options struct {
	Package       string // package clause of the generated file [required]
	Command       string // generator name in the header
	Suffix        string // appended to type names to form tag constants
	FuncName      string // name of the constructor function
	TagType       string // parameter type of the constructor
	MessageType   string // result type of the constructor
	MessageImport string // import path providing MessageType, if any
}

// DefaultOptions returns the options used by the chess protocol package.
func DefaultOptions() Options {
	return Options{
		Command:       "msgtaggen",
		Suffix:        "Msg",
		FuncName:      "NewMsg",
		TagType:       "byte",
		MessageType:   "proto.Message",
		MessageImport: "google.golang.org/protobuf/proto",
	}
}

// maxTags is the number of distinct tags each supported tag type can hold;
// zero means practically unbounded.
var maxTags = map[string]int{
	"byte":   1 << 8,
	"uint8":  1 << 8,
	"int8":   1 << 7,
	"uint16": 1 << 16,
	"int16":  1 << 15,
	"uint32": 0,
	"int32":  0,
	"uint64": 0,
	"int64":  0,
	"uint":   0,
	"int":    0,
}

// Generate returns the formatted source of a file declaring one tag constant
// per type (numbered from zero in the given order) and a constructor
// returning a new instance for a tag, or nil for unknown tags.
func Generate(types []string, opts Options) ([]byte, error) {
	if err := opts.check(types); err != nil {
		return nil, err
	}

	g := &generator{}
	g.Printf("// Code generated by %s; DO NOT EDIT.\n\n", opts.Command)
	g.Printf("package %s\n\n", opts.Package)
	if opts.MessageImport != "" {
		g.Printf("import %q\n\n", opts.MessageImport)
	}

	if len(types) > 0 {
		g.Printf("// Message tags, in declaration order.\n")
		g.Printf("const (\n")
		for i, name := range types {
			if i == 0 {
				g.Printf("\t%s%s = iota\n", name, opts.Suffix)
			} else {
				g.Printf("\t%s%s\n", name, opts.Suffix)
			}
		}
		g.Printf(")\n\n")
	}

	g.Printf("// %s returns a new message for the tag t, or nil if t is not a known tag.\n", opts.FuncName)
	g.Printf("func %s(t %s) %s {\n", opts.FuncName, opts.TagType, opts.MessageType)
	if len(types) > 0 {
		g.Printf("\tswitch t {\n")
		for _, name := range types {
			g.Printf("\tcase %s%s:\n", name, opts.Suffix)
			g.Printf("\t\treturn new(%s)\n", name)
		}
		g.Printf("\t}\n")
	}
	g.Printf("\treturn nil\n")
	g.Printf("}\n")

	return g.format()
}

func (opts *Options) check(types []string) error {
	if !token.IsIdentifier(opts.Package) {
		return fmt.Errorf("invalid package name %q", opts.Package)
	}
	if !token.IsIdentifier(opts.FuncName) {
		return fmt.Errorf("invalid function name %q", opts.FuncName)
	}
	if opts.Suffix != "" && !token.IsIdentifier("_"+opts.Suffix) {
		return fmt.Errorf("invalid suffix %q", opts.Suffix)
	}
	if opts.MessageType == "" {
		return fmt.Errorf("missing message type")
	}
	limit, ok := maxTags[opts.TagType]
	if !ok {
		return fmt.Errorf("unsupported tag type %q", opts.TagType)
	}
	if limit > 0 && len(types) > limit {
		return fmt.Errorf("%d message types do not fit in tag type %s (at most %d)", len(types), opts.TagType, limit)
	}

	// Each name below ends up declared in the same package scope.
	declared := map[string]string{opts.FuncName: "function"}
	for _, name := range types {
		if !token.IsIdentifier(name) {
			return fmt.Errorf("invalid message type name %q", name)
		}
		if what, dup := declared[name]; dup {
			return fmt.Errorf("message type %s collides with %s %s", name, what, name)
		}
		declared[name] = "message type"
	}
	for _, name := range types {
		tag := name + opts.Suffix
		if what, dup := declared[tag]; dup {
			return fmt.Errorf("tag constant %s collides with %s %s", tag, what, tag)
		}
		declared[tag] = "tag constant"
	}
	return nil
}

type generator struct {
	buf bytes.Buffer
}

func (g *generator) Printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *generator) format() ([]byte, error) {
	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}
