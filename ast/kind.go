package ast

// Kind is the syntax class of a node
type Kind int

const (
	KIND_INVALID Kind = iota

	// Atoms
	KIND_NUMBER
	KIND_IDENTIFIER
	KIND_STRING
	KIND_TARGET // resolved label reference

	// Structure
	KIND_LIST

	// Statements
	KIND_LABEL
	KIND_BLOCK
	KIND_END
	KIND_LET
	KIND_READ
	KIND_WRITE
	KIND_FORMAT
	KIND_ALL
	KIND_SKIP
	KIND_GO
	KIND_OG
	KIND_PERFORM
	KIND_WHILE
	KIND_UNTIL
	KIND_TIMES
	KIND_FOR
	KIND_ITERATE
	KIND_FROM
	KIND_TO
	KIND_IF
	KIND_IFELSE
	KIND_ELSE
	KIND_STOP
	KIND_WATCH
	KIND_ALLOCATE
	KIND_DATA
	KIND_TAG
	KIND_SUBSCRIPT

	// Arithmetic
	KIND_PLUS
	KIND_MINUS
	KIND_MULTIPLY
	KIND_DIVIDE
	KIND_POWER
	KIND_UMINUS

	// Scalar functions
	KIND_ABS
	KIND_ATAN
	KIND_COS
	KIND_SIN
	KIND_EXP
	KIND_FLOOR
	KIND_LOG
	KIND_LN
	KIND_SQRT
	KIND_MAX
	KIND_MIN
	KIND_RAND

	// Matrix functions
	KIND_DET
	KIND_DOT
	KIND_INV
	KIND_POSMAX
	KIND_POSMIN
	KIND_SGM
	KIND_TRC
	KIND_TRN

	// Relations
	KIND_EQ
	KIND_NE
	KIND_LT
	KIND_GT
	KIND_LE
	KIND_GE
	KIND_AND
	KIND_OR

	kindCount
)

var kindNames = [...]string{
	KIND_INVALID:    "INVALID",
	KIND_NUMBER:     "NUMBER",
	KIND_IDENTIFIER: "IDENTIFIER",
	KIND_STRING:     "STRING",
	KIND_TARGET:     "TARGET",
	KIND_LIST:       "LIST",
	KIND_LABEL:      "LABEL",
	KIND_BLOCK:      "BLOCK",
	KIND_END:        "END",
	KIND_LET:        "LET",
	KIND_READ:       "READ",
	KIND_WRITE:      "WRITE",
	KIND_FORMAT:     "FORMAT",
	KIND_ALL:        "ALL",
	KIND_SKIP:       "SKIP",
	KIND_GO:         "GO",
	KIND_OG:         "OG",
	KIND_PERFORM:    "PERFORM",
	KIND_WHILE:      "WHILE",
	KIND_UNTIL:      "UNTIL",
	KIND_TIMES:      "TIMES",
	KIND_FOR:        "FOR",
	KIND_ITERATE:    "ITERATE",
	KIND_FROM:       "FROM",
	KIND_TO:         "TO",
	KIND_IF:         "IF",
	KIND_IFELSE:     "IFELSE",
	KIND_ELSE:       "ELSE",
	KIND_STOP:       "STOP",
	KIND_WATCH:      "WATCH",
	KIND_ALLOCATE:   "ALLOCATE",
	KIND_DATA:       "DATA",
	KIND_TAG:        "TAG",
	KIND_SUBSCRIPT:  "SUBSCRIPT",
	KIND_PLUS:       "PLUS",
	KIND_MINUS:      "MINUS",
	KIND_MULTIPLY:   "MULTIPLY",
	KIND_DIVIDE:     "DIVIDE",
	KIND_POWER:      "POWER",
	KIND_UMINUS:     "UMINUS",
	KIND_ABS:        "ABS",
	KIND_ATAN:       "ATAN",
	KIND_COS:        "COS",
	KIND_SIN:        "SIN",
	KIND_EXP:        "EXP",
	KIND_FLOOR:      "FLOOR",
	KIND_LOG:        "LOG",
	KIND_LN:         "LN",
	KIND_SQRT:       "SQRT",
	KIND_MAX:        "MAX",
	KIND_MIN:        "MIN",
	KIND_RAND:       "RAND",
	KIND_DET:        "DET",
	KIND_DOT:        "DOT",
	KIND_INV:        "INV",
	KIND_POSMAX:     "POSMAX",
	KIND_POSMIN:     "POSMIN",
	KIND_SGM:        "SGM",
	KIND_TRC:        "TRC",
	KIND_TRN:        "TRN",
	KIND_EQ:         "EQ",
	KIND_NE:         "NE",
	KIND_LT:         "LT",
	KIND_GT:         "GT",
	KIND_LE:         "LE",
	KIND_GE:         "GE",
	KIND_AND:        "AND",
	KIND_OR:         "OR",
}

// String returns the node class name used in traces and diagnostics
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "UNKNOWN"
	}
	return kindNames[k]
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := KIND_LIST; k < kindCount; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// LookupKind maps an interior node class name to its Kind.
// Atom classes are not addressable by name.
func LookupKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// IsAtom reports whether nodes of this class have no children
func (k Kind) IsAtom() bool {
	return k == KIND_NUMBER || k == KIND_IDENTIFIER || k == KIND_STRING || k == KIND_TARGET
}

// IsRelation reports whether the class yields a truth value
func (k Kind) IsRelation() bool {
	return k >= KIND_EQ && k <= KIND_OR
}
