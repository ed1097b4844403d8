// Package compileconfig defines the compile configuration record: the
// nested record of runtime symbol names that HIR->MIR lowering, FMM
// lowering, and the CPS async stack must use verbatim for every
// generated declaration and call. It is the one place these names are
// allowed to be spelled out as string literals.
package compileconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the compile configuration consumed by the lowering passes.
// It is a plain nested record of names, not behavior: this package
// has no logic beyond defaulting and (de)serialization.
type Config struct {
	Allocation AllocationNames `yaml:"allocation"`
	Scheduler  SchedulerNames  `yaml:"scheduler"`
	List       ListNames       `yaml:"list"`
	Map        MapNames        `yaml:"map"`
	Hash       HashNames       `yaml:"hash"`
	String     StringNames     `yaml:"string"`
	Debug      DebugNames      `yaml:"debug"`
	RC         RCNames         `yaml:"rc"`
}

// RCNames names the reference-counting primitives that
// internal/rc's generated clone/drop/synchronize helpers call into.
type RCNames struct {
	Clone       string `yaml:"clone"`
	Drop        string `yaml:"drop"`
	Synchronize string `yaml:"synchronize"`
	IsOwned     string `yaml:"is_owned"`
	TagStatic   string `yaml:"tag_static"`
	Untag       string `yaml:"untag"`
}

type AllocationNames struct {
	Malloc      string `yaml:"malloc"`
	Realloc     string `yaml:"realloc"`
	Free        string `yaml:"free"`
	Unreachable string `yaml:"unreachable"`
}

type SchedulerNames struct {
	Yield string `yaml:"yield"`
	Spawn string `yaml:"spawn"`
	Race  string `yaml:"race"`
	Debug string `yaml:"debug"`
}

type ListNames struct {
	Empty             string `yaml:"empty"`
	Concatenate       string `yaml:"concatenate"`
	Equal             string `yaml:"equal"`
	MaybeEqual        string `yaml:"maybe_equal"`
	PrependToList     string `yaml:"prepend_to_list"`
	FirstRestFunction string `yaml:"first_rest_function"`
	Lazy              string `yaml:"lazy"`
	First             string `yaml:"first"`
	Rest              string `yaml:"rest"`
	Size              string `yaml:"size"`
	Debug             string `yaml:"debug"`
	TypeName          string `yaml:"type_name"`
	FirstRestTypeName string `yaml:"first_rest_type_name"`
}

type MapNames struct {
	New               string `yaml:"new"`
	NewContext        string `yaml:"new_context"`
	Equal             string `yaml:"equal"`
	MaybeEqual        string `yaml:"maybe_equal"`
	Get               string `yaml:"get"`
	Merge             string `yaml:"merge"`
	Delete            string `yaml:"delete"`
	Set               string `yaml:"set"`
	Size              string `yaml:"size"`
	Debug             string `yaml:"debug"`
	TypeName          string `yaml:"type_name"`
	ContextTypeName   string `yaml:"context_type_name"`
	EmptyTypeName     string `yaml:"empty_type_name"`
	Iterator          string `yaml:"iterator"`
	IteratorTypeName  string `yaml:"iterator_type_name"`
	IteratorKey       string `yaml:"iterator_key"`
	IteratorValue     string `yaml:"iterator_value"`
	IteratorRest      string `yaml:"iterator_rest"`
}

type HashNames struct {
	Combine string `yaml:"combine"`
	Number  string `yaml:"number"`
	String  string `yaml:"string"`
	List    string `yaml:"list"`
	Map     string `yaml:"map"`
}

type StringNames struct {
	Equal string `yaml:"equal"`
}

type DebugNames struct {
	Number string `yaml:"number"`
}

// Default returns the symbol names enumerated literally as this core's
// built-in runtime contract.
func Default() *Config {
	return &Config{
		Allocation: AllocationNames{
			Malloc:      "_pen_malloc",
			Realloc:     "_pen_realloc",
			Free:        "_pen_free",
			Unreachable: "_pen_unreachable",
		},
		Scheduler: SchedulerNames{
			Yield: "_pen_yield",
			Spawn: "_pen_spawn",
			Race:  "_pen_race",
			Debug: "_pen_debug",
		},
		List: ListNames{
			Empty:             "EmptyList",
			Concatenate:       "ConcatenateLists",
			Equal:             "EqualLists",
			MaybeEqual:        "MaybeEqualLists",
			PrependToList:     "PrependToList",
			FirstRestFunction: "FirstRest",
			Lazy:              "LazyList",
			First:             "First",
			Rest:              "Rest",
			Size:              "ListSize",
			Debug:             "DebugList",
			TypeName:          "List",
			FirstRestTypeName: "FirstRest",
		},
		Map: MapNames{
			New:              "NewMap",
			NewContext:       "NewMapContext",
			Equal:            "EqualMaps",
			MaybeEqual:       "MaybeEqualMaps",
			Get:              "GetMap",
			Merge:            "MergeMaps",
			Delete:           "DeleteMap",
			Set:              "SetMap",
			Size:             "MapSize",
			Debug:            "DebugMap",
			TypeName:         "Map",
			ContextTypeName:  "MapContext",
			EmptyTypeName:    "Empty",
			Iterator:         "IterateMap",
			IteratorTypeName: "MapIterator",
			IteratorKey:      "MapIteratorKey",
			IteratorValue:    "MapIteratorValue",
			IteratorRest:     "MapIteratorRest",
		},
		Hash: HashNames{
			Combine: "CombineHashes",
			Number:  "HashNumber",
			String:  "HashString",
			List:    "HashList",
			Map:     "HashMap",
		},
		String: StringNames{
			Equal: "EqualStrings",
		},
		Debug: DebugNames{
			Number: "DebugNumber",
		},
		RC: RCNames{
			Clone:       "_pen_clone",
			Drop:        "_pen_drop",
			Synchronize: "_pen_synchronize",
			IsOwned:     "_pen_is_owned",
			TagStatic:   "_pen_tag_static",
			Untag:       "_pen_untag",
		},
	}
}

// Load decodes a Config from YAML bytes, filling any field left blank with
// Default()'s value so a partial override file is legal.
func Load(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("compileconfig: %w", err)
	}
	return cfg, nil
}

// TargetTriple is one of the fixed closed set of backend targets this
// toolchain compiles for.
type TargetTriple string

const (
	TargetLinuxI686    TargetTriple = "i686-unknown-linux-musl"
	TargetLinuxX86_64  TargetTriple = "x86_64-unknown-linux-musl"
	TargetLinuxAarch64 TargetTriple = "aarch64-unknown-linux-musl"
	TargetWasiWasm32   TargetTriple = "wasm32-wasi"
)

// ValidTargets is the fixed closed set of target triples the command
// surface accepts.
var ValidTargets = []TargetTriple{
	TargetLinuxI686, TargetLinuxX86_64, TargetLinuxAarch64, TargetWasiWasm32,
}

// IsValidTarget reports whether t is one of ValidTargets.
func IsValidTarget(t TargetTriple) bool {
	for _, v := range ValidTargets {
		if v == t {
			return true
		}
	}
	return false
}
