package tunable

import (
	"fmt"
	"sort"

	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// Param is a tunable integer parameter. Values are adjusted via UCI
// setoption before a search starts and read without synchronization after,
// so the registry is effectively immutable while workers run.
type Param struct {
	Name    string
	Default int
	Min     int
	Max     int
	Step    int

	value int
}

func (p *Param) Value() int {
	return p.value
}

func (p *Param) Set(value int) Error {
	if value < p.Min || value > p.Max {
		return Errorf("value %v out of range [%v, %v] for %v", value, p.Min, p.Max, p.Name)
	}
	p.value = value
	return NilError
}

func (p *Param) String() string {
	return fmt.Sprintf("option name %v type spin default %v min %v max %v",
		p.Name, p.Default, p.Min, p.Max)
}

var _registry = map[string]*Param{}

func Register(name string, defaultValue int, min int, max int, step int) *Param {
	if defaultValue < min || defaultValue > max || min >= max {
		panic(fmt.Sprintf("invalid tunable %v", name))
	}

	p := &Param{
		Name:    name,
		Default: defaultValue,
		Min:     min,
		Max:     max,
		Step:    step,
		value:   defaultValue,
	}
	_registry[name] = p
	return p
}

func Lookup(name string) Optional[*Param] {
	if p, ok := _registry[name]; ok {
		return Some(p)
	}
	return Empty[*Param]()
}

func All() []*Param {
	names := []string{}
	for name := range _registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return MapSlice(names, func(name string) *Param {
		return _registry[name]
	})
}
