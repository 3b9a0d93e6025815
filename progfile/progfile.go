// Package progfile decodes the program tree handed over by the front end.
//
// The tree is a YAML document with a single "program" key holding the
// statement chain. Each statement operation and each interior node is a
// flow sequence whose first element names the node class:
//
//	program:
//	  - [LET, X, [PLUS, 2, 3]]
//	  - [WRITE, X]
//	  - [STOP]
//
// Numbers become NUMBER nodes, quoted scalars become strings and plain
// scalars become identifiers, interned in the symbol table in order of
// first appearance.
package progfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"cupl/ast"
	"cupl/diag"
	"cupl/symtab"

	"gopkg.in/yaml.v3"
)

type arity struct {
	min, max int
}

// arities lists argument counts for interior classes; the rest take two
var arities = map[ast.Kind]arity{
	ast.KIND_BLOCK: {0, 0},
	ast.KIND_END:   {0, 0},
	ast.KIND_STOP:  {0, 0},
	ast.KIND_ALL:   {0, 0},
	ast.KIND_SKIP:  {0, 0},

	ast.KIND_FORMAT:  {1, 1},
	ast.KIND_GO:      {1, 1},
	ast.KIND_OG:      {1, 1},
	ast.KIND_PERFORM: {1, 1},
	ast.KIND_UMINUS:  {1, 1},
	ast.KIND_ABS:     {1, 1},
	ast.KIND_ATAN:    {1, 1},
	ast.KIND_COS:     {1, 1},
	ast.KIND_SIN:     {1, 1},
	ast.KIND_EXP:     {1, 1},
	ast.KIND_FLOOR:   {1, 1},
	ast.KIND_LOG:     {1, 1},
	ast.KIND_LN:      {1, 1},
	ast.KIND_SQRT:    {1, 1},
	ast.KIND_RAND:    {1, 1},
	ast.KIND_DET:     {1, 1},
	ast.KIND_INV:     {1, 1},
	ast.KIND_POSMAX:  {1, 1},
	ast.KIND_POSMIN:  {1, 1},
	ast.KIND_SGM:     {1, 1},
	ast.KIND_TRC:     {1, 1},
	ast.KIND_TRN:     {1, 1},

	ast.KIND_TO: {1, 2},

	// list classes gather every argument into the left slot
	ast.KIND_LIST:  {1, -1},
	ast.KIND_READ:  {1, -1},
	ast.KIND_WRITE: {1, -1},
	ast.KIND_WATCH: {1, -1},
	ast.KIND_DATA:  {1, -1},

	// identifier followed by subscripts or dimensions
	ast.KIND_SUBSCRIPT: {2, 3},
	ast.KIND_ALLOCATE:  {2, 3},
}

func arityOf(k ast.Kind) arity {
	if a, ok := arities[k]; ok {
		return a
	}
	return arity{2, 2}
}

type decoder struct {
	syms *symtab.Table
}

func failAt(n *yaml.Node, format string, args ...any) error {
	return &diag.Fatal{Msg: fmt.Sprintf(format, args...), Line: n.Line}
}

func pos(n *yaml.Node) ast.Position {
	return ast.Position{Line: n.Line, Column: n.Column}
}

// Parse decodes a program tree and builds its symbol table
func Parse(data []byte) (*ast.Program, *symtab.Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("progfile: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, diag.Fatalf("progfile: empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, failAt(root, "progfile: expected a mapping with a program key")
	}

	var chain *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "program" {
			chain = root.Content[i+1]
		}
	}
	if chain == nil {
		return nil, nil, failAt(root, "progfile: missing program key")
	}
	if chain.Kind != yaml.SequenceNode {
		return nil, nil, failAt(chain, "progfile: program must be a sequence of statements")
	}

	d := &decoder{syms: symtab.New()}
	ops := make([]ast.Node, 0, len(chain.Content))
	for _, item := range chain.Content {
		if item.Kind != yaml.SequenceNode {
			return nil, nil, failAt(item, "progfile: statement must be a node sequence")
		}
		op, err := d.node(item)
		if err != nil {
			return nil, nil, err
		}
		ops = append(ops, op)
	}
	return ast.NewProgram(ops...), d.syms, nil
}

// Load reads a program tree from r
func Load(r io.Reader) (*ast.Program, *symtab.Table, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, nil, err
	}
	return Parse(buf.Bytes())
}

// LoadFile reads a program tree from the named file
func LoadFile(path string) (*ast.Program, *symtab.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return Parse(data)
}

func (d *decoder) node(n *yaml.Node) (ast.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return d.atom(n)
	case yaml.SequenceNode:
		return d.interior(n)
	case yaml.AliasNode:
		return d.node(n.Alias)
	default:
		return nil, failAt(n, "progfile: unexpected mapping")
	}
}

func (d *decoder) atom(n *yaml.Node) (ast.Node, error) {
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return &ast.String{Pos: pos(n), Text: n.Value}, nil
	}
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!int", "!!float":
		var x float64
		if err := n.Decode(&x); err != nil {
			return nil, failAt(n, "progfile: bad number %q", n.Value)
		}
		return &ast.Number{Pos: pos(n), Val: x}, nil
	}
	id := &ast.Identifier{Pos: pos(n), Name: n.Value}
	d.syms.Intern(n.Value, id)
	return id, nil
}

func (d *decoder) interior(n *yaml.Node) (ast.Node, error) {
	if len(n.Content) == 0 {
		return nil, failAt(n, "progfile: empty node")
	}
	head := n.Content[0]
	if head.Kind != yaml.ScalarNode {
		return nil, failAt(head, "progfile: node class must be a name")
	}
	kind, ok := ast.LookupKind(head.Value)
	if !ok {
		return nil, failAt(head, "progfile: unknown node class %s", head.Value)
	}

	args := make([]ast.Node, 0, len(n.Content)-1)
	for _, c := range n.Content[1:] {
		a, err := d.node(c)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}

	ar := arityOf(kind)
	if len(args) < ar.min || (ar.max >= 0 && len(args) > ar.max) {
		return nil, failAt(n, "progfile: %s takes %s, got %d", kind, ar, len(args))
	}

	node := &ast.Interior{Pos: pos(n), Op: kind}
	switch kind {
	case ast.KIND_LIST, ast.KIND_READ, ast.KIND_WRITE, ast.KIND_WATCH, ast.KIND_DATA:
		for i, a := range args {
			if a == nil {
				return nil, failAt(n.Content[i+1], "progfile: %s item cannot be empty", kind)
			}
		}
		if kind == ast.KIND_LIST {
			return ast.NewList(args...), nil
		}
		node.Left = ast.NewList(args...)
	case ast.KIND_SUBSCRIPT, ast.KIND_ALLOCATE:
		if _, ok := args[0].(*ast.Identifier); !ok {
			return nil, failAt(n, "progfile: %s needs an identifier", kind)
		}
		for i, a := range args[1:] {
			if a == nil {
				return nil, failAt(n.Content[i+2], "progfile: %s index cannot be empty", kind)
			}
		}
		node.Left = args[0]
		node.Right = ast.NewList(args[1:]...)
	default:
		if len(args) > 0 {
			node.Left = args[0]
		}
		if len(args) > 1 {
			node.Right = args[1]
		}
	}
	return node, nil
}

func (a arity) String() string {
	switch {
	case a.max < 0:
		return fmt.Sprintf("at least %d argument(s)", a.min)
	case a.min == a.max:
		return fmt.Sprintf("%d argument(s)", a.min)
	default:
		return fmt.Sprintf("%d to %d arguments", a.min, a.max)
	}
}
