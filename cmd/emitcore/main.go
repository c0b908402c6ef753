// Command emitcore is a thin demo harness: it loads a type-graph fixture
// (YAML or JSON), runs the bundled tsref reference emitter over it, and
// writes the result to disk. It exists only to exercise the core package
// manually; it is not a supported CLI surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadl-tools/emitcore"
	"github.com/cadl-tools/emitcore/examples/tsref"
	"github.com/cadl-tools/emitcore/fixture"
	_ "github.com/cadl-tools/emitcore/fixture/fixturewire" // swaps in fixture/gojson's decode backend (goccy/go-json under the gojson build tag)
)

func main() {
	fs := flag.NewFlagSet("emitcore", flag.ExitOnError)
	var in, outDir string
	fs.StringVar(&in, "in", "", "path to a YAML or JSON type-graph fixture")
	fs.StringVar(&outDir, "out", ".", "output directory for generated source files")
	_ = fs.Parse(os.Args[1:])

	if in == "" {
		fs.Usage()
		os.Exit(2)
	}

	doc, err := loadFixture(in)
	if err != nil {
		fatalf("load %s: %v", in, err)
	}

	root, err := fixture.BuildNamespace(doc)
	if err != nil {
		fatalf("build type graph: %v", err)
	}

	program := emitcore.NewProgram(root)
	ctx := emitcore.CreateEmitterContext(program, emitcore.WithHost(emitcore.NewDiskHost(outDir)))
	ae := ctx.CreateAssetEmitter(tsref.New)

	if err := ae.EmitProgram(context.Background(), emitcore.EmitProgramOptions{}); err != nil {
		fatalf("emit program: %v", err)
	}
	if err := ae.WriteOutput(context.Background()); err != nil {
		fatalf("write output: %v", err)
	}
}

func loadFixture(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".yaml") || strings.EqualFold(filepath.Ext(path), ".yml") {
		return fixture.LoadYAML(f)
	}
	return fixture.Load(f)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
