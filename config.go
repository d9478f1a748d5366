package peglr

import (
	"fmt"
	"sort"
)

// Config is a typed-variant settings map in the same style as the
// grammar compiler's own configuration object, holding engine-level
// knobs instead of compiler knobs.
type Config map[string]*cfgVal

// DefaultConfig returns a Config primed with the engine's defaults.
func DefaultConfig() *Config {
	m := make(Config)
	// upper bound on left-recursion grow iterations per activation; 0
	// means unbounded (rely solely on the no-progress check to halt)
	m.SetInt("engine.max_grow_iterations", 0)
	return &m
}

func (c *Config) Debug() {
	fmt.Println("Configuration")

	keys := make([]string, 0, len(*c))
	width := 0
	for k := range *c {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%s", k)
		for i := 0; i < width-len(k); i++ {
			fmt.Printf(" ")
		}
		fmt.Printf(" : %s\n", (*c)[k].String())
	}
}

type cfgValType int

const (
	cfgValUndefined cfgValType = iota
	cfgValBool
	cfgValInt
)

func (vt cfgValType) String() string {
	switch vt {
	case cfgValBool:
		return "bool"
	case cfgValInt:
		return "int"
	default:
		return "undefined"
	}
}

type cfgVal struct {
	typ    cfgValType
	asBool bool
	asInt  int
}

func (v *cfgVal) String() string {
	switch v.typ {
	case cfgValBool:
		return fmt.Sprintf("%t (bool)", v.asBool)
	case cfgValInt:
		return fmt.Sprintf("%d (int)", v.asInt)
	default:
		return "(undefined)"
	}
}

func (c *Config) SetBool(path string, v bool) { (*c)[path] = &cfgVal{typ: cfgValBool, asBool: v} }
func (c *Config) SetInt(path string, v int)   { (*c)[path] = &cfgVal{typ: cfgValInt, asInt: v} }

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok && val.typ == cfgValBool {
		return val.asBool
	}
	panic(fmt.Sprintf("bool setting %q does not exist", path))
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok && val.typ == cfgValInt {
		return val.asInt
	}
	panic(fmt.Sprintf("int setting %q does not exist", path))
}

// maxGrowIterations reads engine.max_grow_iterations; the engine reads
// it once per grow cycle, before the loop starts.
func (c *Config) maxGrowIterations() int { return c.GetInt("engine.max_grow_iterations") }
