// Command corecheck is a standalone debug tool for driving a module
// through HIR->MIR->FMM->RC by hand and inspecting the result: useful
// for exercising the pipeline without a frontend wired up. It is never
// imported by the library packages themselves.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/common/expfmt"
	"github.com/sunholo/corelang/internal/compileconfig"
	"github.com/sunholo/corelang/internal/diag"
	"github.com/sunholo/corelang/internal/errors"
	"github.com/sunholo/corelang/internal/fmm"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/hircheck"
	"github.com/sunholo/corelang/internal/iface"
	"github.com/sunholo/corelang/internal/lower"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/pipelinemetrics"
	"github.com/sunholo/corelang/internal/rc"
	"github.com/sunholo/corelang/internal/types"
)

func main() {
	metricsFlag := flag.Bool("metrics", false, "Print Prometheus text-format metrics after compiling")
	flag.Parse()

	metrics := pipelinemetrics.New()
	mod := demoModule()

	if err := metrics.Time("hircheck", func() error {
		return (&hircheck.Checker{}).Infer(mod)
	}); err != nil {
		fail(err)
	}

	aliases := types.AliasTable{}
	records := types.RecordTable{}

	var mirMod *mir.Module
	lowerer := lower.New(compileconfig.Default(), aliases, records)
	lowerer.Metrics = metrics
	if err := metrics.Time("lower", func() error {
		var err error
		mirMod, err = lowerer.LowerModule(mod)
		return err
	}); err != nil {
		fail(err)
	}

	if err := mir.CheckNames(mirMod); err != nil {
		fail(err)
	}

	builder := fmm.NewBuilder(mirMod.Path)
	for _, td := range mirMod.TypeDefinitions {
		builder.LowerTypeDefinition(td)
	}
	for _, decl := range mirMod.ForeignDeclarations {
		builder.DeclareForeign(decl)
	}
	for _, fd := range mirMod.FunctionDefinitions {
		builder.LowerFunction(fd)
	}
	var fmmMod *fmm.Module
	if err := metrics.Time("fmm", func() error {
		fmmMod = builder.Build()
		return nil
	}); err != nil {
		fail(err)
	}

	gen := rc.New(compileconfig.Default())
	gen.Metrics = metrics
	var rcHelpers []*mir.FunctionDefinition
	if err := metrics.Time("rc", func() error {
		rcHelpers = gen.GenerateModule(fmmMod)
		return nil
	}); err != nil {
		fail(err)
	}

	ifc, err := iface.Build(mod, aliases)
	if err != nil {
		fail(err)
	}

	fmt.Printf("module %s: %d function(s), %d synthesized RC helper(s), interface digest %s\n",
		fmmMod.Path, len(fmmMod.EntryFunctions), len(rcHelpers), ifc.Digest)

	if *metricsFlag {
		families, err := metrics.Registry.Gather()
		if err != nil {
			fail(err)
		}
		for _, f := range families {
			if _, err := expfmt.MetricFamilyToText(os.Stdout, f); err != nil {
				fail(err)
			}
		}
	}
}

// demoModule builds a tiny module exercising equality (and thus equal_T
// synthesis) without depending on a frontend: `same(x, y) = x == y`.
func demoModule() *hir.Module {
	mod := hir.NewModule("corecheck/demo")
	mod.FunctionDefinitions = append(mod.FunctionDefinitions, &hir.FunctionDefinition{
		Name:   "same",
		Public: true,
		Lambda: &hir.Lambda{
			Arguments: []hir.Argument{
				{Name: "x", Type: types.Number{}},
				{Name: "y", Type: types.Number{}},
			},
			ResultType: types.Boolean{},
			Body: &hir.EqualityOperation{
				Operator: hir.Equal,
				Lhs:      &hir.Variable{Name: "x"},
				Rhs:      &hir.Variable{Name: "y"},
			},
		},
	})
	return mod
}

func fail(err error) {
	if rep, ok := errors.AsReport(err); ok {
		fmt.Fprintln(os.Stderr, diag.Render(rep))
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
