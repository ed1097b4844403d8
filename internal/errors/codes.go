// Package errors provides the centralized, stable error taxonomy for the
// compilation pipeline. The type algebra, HIR validation, HIR->MIR
// lowering and MIR analyses report failures as a *Report built from one
// of these codes, so tooling outside this repository can pattern-match on
// Code without parsing Message. The CPS async stack returns its own
// *async.UnexpectedAsyncStackActionError, and configuration loading and
// interface building build their errors with fmt.Errorf.
package errors

// Error codes. The Code string is the error kind's name verbatim, matching
// the taxonomy every implementation of this pipeline is expected to share;
// Phase (set by the caller via NewReport) records which stage raised it.
const (
	// Structural
	DuplicateFunctionNames = "DuplicateFunctionNames"
	DuplicateTypeNames     = "DuplicateTypeNames"
	TypeNotFound           = "TypeNotFound"
	RecordNotFound         = "RecordNotFound"
	VariableNotFound       = "VariableNotFound"
	RecursiveTypeAlias     = "RecursiveTypeAlias"

	// Type
	TypesNotMatched        = "TypesNotMatched"
	TypeNotInferred        = "TypeNotInferred"
	FunctionExpected       = "FunctionExpected"
	ListExpected           = "ListExpected"
	MapExpected            = "MapExpected"
	RecordExpected         = "RecordExpected"
	UnionExpected          = "UnionExpected"
	VariantExpected        = "VariantExpected"
	UnionOrAnyTypeExpected = "UnionOrAnyTypeExpected"
	CollectionExpected     = "CollectionExpected"

	// Record
	RecordFieldMissing = "RecordFieldMissing"
	RecordFieldUnknown = "RecordFieldUnknown"
	RecordFieldPrivate = "RecordFieldPrivate"
	ImpossibleRecord   = "ImpossibleRecord"

	// Operation
	AnyTypeBranch               = "AnyTypeBranch"
	AnyEqualOperation           = "AnyEqualOperation"
	FunctionEqualOperation      = "FunctionEqualOperation"
	InvalidRecordEqualOperation = "InvalidRecordEqualOperation"
	TypeNotComparable           = "TypeNotComparable"

	// Control flow
	MissingElseBlock         = "MissingElseBlock"
	InvalidTryOperation      = "InvalidTryOperation"
	TryOperationInList       = "TryOperationInList"
	UnreachableCode          = "UnreachableCode"
	UnusedErrorValue         = "UnusedErrorValue"
	SpawnedFunctionArguments = "SpawnedFunctionArguments"
	BuiltInFunctionNotCalled = "BuiltInFunctionNotCalled"

	// Main / runtime wiring
	MainFunctionNotFound            = "MainFunctionNotFound"
	NewContextFunctionNotFound      = "NewContextFunctionNotFound"
	CompileConfigurationNotProvided = "CompileConfigurationNotProvided"
	VariantTypeInFfi                = "VariantTypeInFfi"

	// Backend
	MirTypeCheck = "MirTypeCheck"

	// Runtime (C7/C8) — not named in the language's enumerated taxonomy.
	// No package in this module builds a Report with this code: the async
	// stack reports the same condition as *async.UnexpectedAsyncStackActionError.
	UnexpectedAsyncStackAction = "UnexpectedAsyncStackAction"
)

// Phase names, used as the Report.Phase field.
const (
	PhaseType  = "type"
	PhaseHIR   = "hir"
	PhaseLower = "lower"
	PhaseMIR   = "mir"
	PhaseFMM   = "fmm"
	PhaseRC    = "rc"
	PhaseCPS   = "cps"
	PhaseLink  = "link"
)
