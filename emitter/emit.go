// Package emitter translates a graph.Model into a vm.Program: a flat,
// lifetime-annotated instruction stream for a register-based, garbage
// collector-free virtual machine. See ValueIdTable, NodeLowerer,
// LoopLowerer, and GraphWalker for the four cooperating components; Emit
// is the package's sole entry point.
package emitter

import (
	"fmt"

	"github.com/NERVsystems/gflow/graph"
	"github.com/NERVsystems/gflow/vm"
	"go.uber.org/zap"
)

// Emit walks model's root graph and appends the resulting instructions to
// prog. prog is assumed empty; the emitter never reads existing content
// from it, only appends. When dumpValueNames is true, Emit logs a
// diagnostic listing every register id, its source value's name, and its
// declared byte size after emission completes.
//
// Emit is strictly single-threaded and synchronous: one call owns the
// entire translation of one model. Concurrent translations must use
// independent *vm.Program and logger instances.
func Emit(model *graph.Model, prog *vm.Program, dumpValueNames bool, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	root := model.Graph()

	ids := NewValueIdTable()
	assignValueIds(ids, root)

	nl := NewNodeLowerer(prog, ids, log)
	walker := NewGraphWalker(prog, ids, nl, log)
	walker.ll = NewLoopLowerer(prog, ids, walker)

	if err := walker.Walk(root, false); err != nil {
		return fmt.Errorf("emit %s: %w", model.Name(), err)
	}

	for _, v := range root.OutputValues() {
		id := ids.get(v)
		prog.Emit(vm.OpOut, vm.Str(v.Name()), vm.Reg(id))
		prog.Emit(vm.OpFree, vm.Reg(id))
	}

	if dumpValueNames {
		dumpValueTable(log, ids)
	}
	return nil
}

// dumpValueTable logs the diagnostic §6 describes: every register id, its
// originating value's name and declared byte size, and a grand total.
func dumpValueTable(log *zap.Logger, ids *ValueIdTable) {
	entries := ids.entries()
	log.Info(fmt.Sprintf("=== %d variables ===", len(entries)))
	var totalBytes int64
	for _, e := range entries {
		log.Info(fmt.Sprintf("$%d: %s %d", e.id, e.value.Name(), e.value.GetNBytes()))
		totalBytes += e.value.GetNBytes()
	}
	log.Info(fmt.Sprintf("Total size of all values: %dMB", totalBytes/1000/1000))
}
