// Command emit is a small demonstration harness for package emitter: it
// builds one of a handful of canned graphs by name and prints the
// resulting VM program to standard output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/NERVsystems/gflow/emitter"
	"github.com/NERVsystems/gflow/fixtures"
	"github.com/NERVsystems/gflow/vm"
	"go.uber.org/zap"
)

func main() {
	graphName := flag.String("graph", "relu", "canned graph to emit (relu, add, constant, softmax, loop_sum, dropout, conv, conv_transpose_dynamic_shape)")
	dumpValueNames := flag.Bool("dump_value_names", false, "log a register/value size diagnostic after emission")
	verbose := flag.Bool("v", false, "enable debug-level logging")
	flag.Parse()

	logCfg := zap.NewProductionConfig()
	if *verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "emit: building logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	model, err := fixtures.Model(*graphName)
	if err != nil {
		log.Fatal("unknown graph", zap.String("graph", *graphName), zap.Error(err))
	}

	prog := vm.NewProgram()
	if err := emitter.Emit(model, prog, *dumpValueNames, log); err != nil {
		log.Fatal("emit failed", zap.Error(err))
	}

	fmt.Print(prog.String())
}
