package mir

import "github.com/sunholo/corelang/internal/errors"

// CheckNames rejects a module with duplicate type-definition names, or
// duplicate function names across foreign declarations and function
// definitions.
func CheckNames(mod *Module) error {
	types := map[string]bool{}
	for _, td := range mod.TypeDefinitions {
		if types[td.Name] {
			return errors.WrapReport(errors.New(errors.PhaseMIR, errors.DuplicateTypeNames,
				"duplicate type definition name "+td.Name, &td.Position))
		}
		types[td.Name] = true
	}

	funcs := map[string]bool{}
	for _, fd := range mod.ForeignDeclarations {
		if funcs[fd.Name] {
			return errors.WrapReport(errors.New(errors.PhaseMIR, errors.DuplicateFunctionNames,
				"duplicate function name "+fd.Name, &fd.Position))
		}
		funcs[fd.Name] = true
	}
	for _, fd := range mod.FunctionDefinitions {
		if funcs[fd.Name] {
			return errors.WrapReport(errors.New(errors.PhaseMIR, errors.DuplicateFunctionNames,
				"duplicate function name "+fd.Name, &fd.Position))
		}
		funcs[fd.Name] = true
	}
	return nil
}
