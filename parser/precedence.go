package parser

import "github.com/NickTomlin/boa/token"

// Operator precedence levels, lowest binds loosest. Member access binds
// tighter than calls so that "new a.b.c()" resolves the constructor
// before applying the argument list.
const (
	LOWEST int = iota
	ASSIGN             // = += -= and friends
	CONDITIONAL        // ?:
	NULLISH            // ??
	LOGICAL_OR         // ||
	LOGICAL_AND        // &&
	BITWISE_OR         // |
	BITWISE_XOR        // ^
	BITWISE_AND        // &
	EQUALITY           // == != === !==
	RELATIONAL         // < > <= >= in instanceof
	SHIFT              // << >> >>>
	ADDITIVE           // + -
	MULTIPLICATIVE     // * / %
	EXPONENT           // **
	UNARY              // ! ~ + - typeof void delete await ++x --x
	POSTFIX            // x++ x--
	CALL               // f(x)
	MEMBER             // a.b a[b]
)

// precedences maps token types to the binding power of their infix role.
var precedences = map[token.Type]int{
	token.ASSIGN:          ASSIGN,
	token.PLUS_EQUALS:     ASSIGN,
	token.MINUS_EQUALS:    ASSIGN,
	token.ASTERISK_EQUALS: ASSIGN,
	token.SLASH_EQUALS:    ASSIGN,
	token.MOD_EQUALS:      ASSIGN,
	token.POW_EQUALS:      ASSIGN,
	token.LT_LT_EQUALS:    ASSIGN,
	token.GT_GT_EQUALS:    ASSIGN,
	token.GT_GT_GT_EQUALS: ASSIGN,
	token.AND_EQUALS:      ASSIGN,
	token.OR_EQUALS:       ASSIGN,
	token.CARET_EQUALS:    ASSIGN,

	token.QUESTION: CONDITIONAL,

	token.NULLISH: NULLISH,
	token.OR:      LOGICAL_OR,
	token.AND:     LOGICAL_AND,

	token.BITOR:     BITWISE_OR,
	token.CARET:     BITWISE_XOR,
	token.AMPERSAND: BITWISE_AND,

	token.EQ:            EQUALITY,
	token.NOT_EQ:        EQUALITY,
	token.STRICT_EQ:     EQUALITY,
	token.STRICT_NOT_EQ: EQUALITY,

	token.LT:         RELATIONAL,
	token.GT:         RELATIONAL,
	token.LT_EQUALS:  RELATIONAL,
	token.GT_EQUALS:  RELATIONAL,
	token.IN:         RELATIONAL,
	token.INSTANCEOF: RELATIONAL,

	token.LT_LT:    SHIFT,
	token.GT_GT:    SHIFT,
	token.GT_GT_GT: SHIFT,

	token.PLUS:  ADDITIVE,
	token.MINUS: ADDITIVE,

	token.ASTERISK: MULTIPLICATIVE,
	token.SLASH:    MULTIPLICATIVE,
	token.MOD:      MULTIPLICATIVE,

	token.POW: EXPONENT,

	token.LPAREN: CALL,

	token.PERIOD:   MEMBER,
	token.LBRACKET: MEMBER,
}

// rightAssociative marks infix operators that group right to left.
var rightAssociative = map[token.Type]bool{
	token.POW:             true,
	token.ASSIGN:          true,
	token.PLUS_EQUALS:     true,
	token.MINUS_EQUALS:    true,
	token.ASTERISK_EQUALS: true,
	token.SLASH_EQUALS:    true,
	token.MOD_EQUALS:      true,
	token.POW_EQUALS:      true,
	token.LT_LT_EQUALS:    true,
	token.GT_GT_EQUALS:    true,
	token.GT_GT_GT_EQUALS: true,
	token.AND_EQUALS:      true,
	token.OR_EQUALS:       true,
	token.CARET_EQUALS:    true,
	token.QUESTION:        true,
}

// assignmentOps maps compound and plain assignment token types to their
// operator spelling.
var assignmentOps = map[token.Type]bool{
	token.ASSIGN:          true,
	token.PLUS_EQUALS:     true,
	token.MINUS_EQUALS:    true,
	token.ASTERISK_EQUALS: true,
	token.SLASH_EQUALS:    true,
	token.MOD_EQUALS:      true,
	token.POW_EQUALS:      true,
	token.LT_LT_EQUALS:    true,
	token.GT_GT_EQUALS:    true,
	token.GT_GT_GT_EQUALS: true,
	token.AND_EQUALS:      true,
	token.OR_EQUALS:       true,
	token.CARET_EQUALS:    true,
}
