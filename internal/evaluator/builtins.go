package evaluator

import "github.com/funvibe/phasor/internal/config"

// Builtins returns the builtin function values, keyed by name.
func Builtins() map[string]*Builtin {
	return map[string]*Builtin{
		config.AbsFuncName: {
			Name:  config.AbsFuncName,
			Arity: 1,
			Fn:    func(args ...Object) (Object, error) { return Abs(args[0]) },
		},
		config.ZipFuncName: {
			Name:  config.ZipFuncName,
			Arity: 2,
			Fn:    func(args ...Object) (Object, error) { return Zip(args[0], args[1]) },
		},
		config.BoolFuncName: {
			Name:  config.BoolFuncName,
			Arity: 1,
			Fn:    func(args ...Object) (Object, error) { return FromBool(Truthy(args[0])), nil },
		},
	}
}

// RegisterBuiltins binds every builtin in env.
func RegisterBuiltins(env *Environment) {
	for name, b := range Builtins() {
		env.Push(name, b)
	}
}
