package config

const SourceFileExt = ".phx"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".phx", ".phasor"}

// Language file names searched by Find, in order.
var LanguageFileNames = []string{"phasor.yaml", "phasor.yml"}

// IsTraceMode enables trace logging of pipeline stages.
// This is set once at startup in main.go when -v is given.
var IsTraceMode = false

// Operation names an operator symbol can be bound to.
const (
	OpAdd  = "add"
	OpSub  = "sub"
	OpMul  = "mul"
	OpDiv  = "div"
	OpMod  = "mod"
	OpPow  = "pow"
	OpEq   = "eq"
	OpLt   = "lt"
	OpLte  = "lte"
	OpGt   = "gt"
	OpGte  = "gte"
	OpBind = "bind"
)

// KnownOps is the set of operation names accepted in a language file.
var KnownOps = map[string]bool{
	OpAdd: true, OpSub: true, OpMul: true, OpDiv: true, OpMod: true, OpPow: true,
	OpEq: true, OpLt: true, OpLte: true, OpGt: true, OpGte: true, OpBind: true,
}

// Built-in function names
const (
	AbsFuncName  = "abs"
	ZipFuncName  = "zip"
	BoolFuncName = "bool"
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
)
