package scriptexpr

// Binding is a named cell holding one Value. The implementations are
// *Variable and *Parameter. Only variables can change, and only through
// Context.SetVar.
type Binding interface {
	// Name returns the name under which the binding is stored.
	Name() string
	// Value returns the value currently held by the binding.
	Value() Value

	binding()
}

// Variable is a mutable binding created by declaration or assignment.
type Variable struct {
	name string
	val  Value
}

// NewVariable creates a variable holding v.
func NewVariable(name string, v Value) *Variable {
	return &Variable{name: name, val: v}
}

func (v *Variable) Name() string { return v.name }
func (v *Variable) Value() Value { return v.val }
func (*Variable) binding()       {}

// Parameter is a binding created for one argument of a function call. It holds
// the same value for the whole call.
type Parameter struct {
	name  string
	index int
	val   Value
}

// NewParameter creates the parameter at position index of a call.
func NewParameter(name string, index int, v Value) *Parameter {
	return &Parameter{name: name, index: index, val: v}
}

func (p *Parameter) Name() string { return p.name }
func (p *Parameter) Value() Value { return p.val }
func (*Parameter) binding()       {}

// Index returns the 0-based position of p in its function's parameter list.
func (p *Parameter) Index() int {
	return p.index
}

var (
	_ Binding = (*Variable)(nil)
	_ Binding = (*Parameter)(nil)
)
