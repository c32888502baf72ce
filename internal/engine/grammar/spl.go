package grammar

import "sync"

var splProductions = []Production{
	{0, "PROG", []string{"main", "GLOBVARS", "ALGO", "FUNCTIONS"}},
	{1, "GLOBVARS", nil},
	{2, "GLOBVARS", []string{"VTYP", "VNAME", ",", "GLOBVARS"}},
	{3, "VTYP", []string{"num"}},
	{4, "VTYP", []string{"text"}},
	{5, "VNAME", []string{"V"}},
	{6, "ALGO", []string{"begin", "INSTRUC", "end"}},
	{7, "INSTRUC", nil},
	{8, "INSTRUC", []string{"COMMAND", ";", "INSTRUC"}},
	{9, "COMMAND", []string{"skip"}},
	{10, "COMMAND", []string{"halt"}},
	{11, "COMMAND", []string{"print", "ATOMIC"}},
	{12, "COMMAND", []string{"ASSIGN"}},
	{13, "COMMAND", []string{"CALL"}},
	{14, "COMMAND", []string{"BRANCH"}},
	{15, "ATOMIC", []string{"VNAME"}},
	{16, "ATOMIC", []string{"CONST"}},
	{17, "CONST", []string{"N"}},
	{18, "CONST", []string{"T"}},
	{19, "ASSIGN", []string{"VNAME", "<", "input"}},
	{20, "ASSIGN", []string{"VNAME", "=", "TERM"}},
	{21, "CALL", []string{"FNAME", "(", "ATOMIC", ",", "ATOMIC", ",", "ATOMIC", ")"}},
	{22, "BRANCH", []string{"if", "COND", "then", "ALGO", "else", "ALGO"}},
	{23, "TERM", []string{"ATOMIC"}},
	{24, "TERM", []string{"CALL"}},
	{25, "TERM", []string{"OP"}},
	{26, "OP", []string{"UNOP", "(", "ARG", ")"}},
	{27, "OP", []string{"BINOP", "(", "ARG", ",", "ARG", ")"}},
	{28, "ARG", []string{"ATOMIC"}},
	{29, "ARG", []string{"OP"}},
	{30, "COND", []string{"SIMPLE"}},
	{31, "COND", []string{"COMPOSIT"}},
	{32, "SIMPLE", []string{"BINOP", "(", "ATOMIC", ",", "ATOMIC", ")"}},
	{33, "COMPOSIT", []string{"BINOP", "(", "SIMPLE", ",", "SIMPLE", ")"}},
	{34, "COMPOSIT", []string{"UNOP", "(", "SIMPLE", ")"}},
	{35, "UNOP", []string{"not"}},
	{36, "UNOP", []string{"sqrt"}},
	{37, "BINOP", []string{"or"}},
	{38, "BINOP", []string{"and"}},
	{39, "BINOP", []string{"eq"}},
	{40, "BINOP", []string{"grt"}},
	{41, "BINOP", []string{"add"}},
	{42, "BINOP", []string{"sub"}},
	{43, "BINOP", []string{"mul"}},
	{44, "BINOP", []string{"div"}},
	{45, "FNAME", []string{"F"}},
	{46, "FUNCTIONS", nil},
	{47, "FUNCTIONS", []string{"DECL", "FUNCTIONS"}},
	{48, "DECL", []string{"HEADER", "BODY"}},
	{49, "HEADER", []string{"FTYP", "FNAME", "(", "VNAME", ",", "VNAME", ",", "VNAME", ")"}},
	{50, "FTYP", []string{"num"}},
	{51, "FTYP", []string{"void"}},
	{52, "BODY", []string{"PROLOG", "LOCVARS", "ALGO", "EPILOG", "SUBFUNCS", "end"}},
	{53, "PROLOG", []string{"{"}},
	{54, "EPILOG", []string{"}"}},
	{55, "LOCVARS", []string{"VTYP", "VNAME", ",", "VTYP", "VNAME", ",", "VTYP", "VNAME", ","}},
	{56, "SUBFUNCS", []string{"FUNCTIONS"}},
	{57, "COMMAND", []string{"return", "ATOMIC"}},
}

var splTerminals = []string{
	"main", ",", "num", "text", "V", "begin", "end", ";", "skip", "halt", "print", "return",
	"N", "T", "<", "input", "=", "(", ")", "if", "then", "else", "not", "sqrt",
	"or", "and", "eq", "grt", "add", "sub", "mul", "div", "F", "void", "{", "}", "$",
}

var splNonterminals = []string{
	"PROG", "GLOBVARS", "VTYP", "VNAME", "ALGO", "INSTRUC", "COMMAND", "ATOMIC", "CONST",
	"ASSIGN", "CALL", "BRANCH", "TERM", "OP", "ARG", "COND", "SIMPLE", "COMPOSIT", "UNOP",
	"BINOP", "FNAME", "FUNCTIONS", "DECL", "HEADER", "FTYP", "BODY", "PROLOG", "EPILOG",
	"LOCVARS", "SUBFUNCS",
}

var (
	splOnce  sync.Once
	splTable *Table
)

// SPL returns the compiled-in LALR table for SPL. The table is built once and
// shared; it is never mutated after construction.
func SPL() *Table {
	splOnce.Do(func() {
		t, err := New("spl", splProductions, splRows, splTerminals, splNonterminals)
		if err != nil {
			panic(err)
		}
		splTable = t
	})
	return splTable
}

var splRows = []Row{
	0: {
		Actions: map[string]Action{"main": Shift(1)},
	},
	1: {
		Actions: map[string]Action{"num": Shift(4), "text": Shift(5), "begin": Reduce(1)},
		Gotos:   map[string]int{"GLOBVARS": 2, "VTYP": 3},
	},
	2: {
		Actions: map[string]Action{"begin": Shift(7)},
		Gotos:   map[string]int{"ALGO": 6},
	},
	3: {
		Actions: map[string]Action{"V": Shift(9)},
		Gotos:   map[string]int{"VNAME": 8},
	},
	4: {
		Actions: map[string]Action{"V": Reduce(3)},
	},
	5: {
		Actions: map[string]Action{"V": Reduce(4)},
	},
	6: {
		Actions: map[string]Action{
			"num": Shift(14), "end": Reduce(46), "void": Shift(15), "$": Reduce(46),
		},
		Gotos: map[string]int{"FUNCTIONS": 10, "DECL": 11, "HEADER": 12, "FTYP": 13},
	},
	7: {
		Actions: map[string]Action{
			"V": Shift(9), "end": Reduce(7), "skip": Shift(18), "halt": Shift(19),
			"print": Shift(20), "if": Shift(27), "F": Shift(28), "return": Shift(24),
		},
		Gotos: map[string]int{"VNAME": 25, "INSTRUC": 16, "COMMAND": 17, "ASSIGN": 21, "CALL": 22, "BRANCH": 23, "FNAME": 26},
	},
	8: {
		Actions: map[string]Action{",": Shift(29)},
	},
	9: {
		Actions: map[string]Action{
			",": Reduce(5), ";": Reduce(5), "<": Reduce(5), "=": Reduce(5),
			")": Reduce(5),
		},
	},
	10: {
		Actions: map[string]Action{"$": Accept()},
	},
	11: {
		Actions: map[string]Action{
			"num": Shift(14), "end": Reduce(46), "void": Shift(15), "$": Reduce(46),
		},
		Gotos: map[string]int{"FUNCTIONS": 30, "DECL": 11, "HEADER": 12, "FTYP": 13},
	},
	12: {
		Actions: map[string]Action{"{": Shift(33)},
		Gotos:   map[string]int{"BODY": 31, "PROLOG": 32},
	},
	13: {
		Actions: map[string]Action{"F": Shift(28)},
		Gotos:   map[string]int{"FNAME": 34},
	},
	14: {
		Actions: map[string]Action{"F": Reduce(50)},
	},
	15: {
		Actions: map[string]Action{"F": Reduce(51)},
	},
	16: {
		Actions: map[string]Action{"end": Shift(35)},
	},
	17: {
		Actions: map[string]Action{";": Shift(36)},
	},
	18: {
		Actions: map[string]Action{";": Reduce(9)},
	},
	19: {
		Actions: map[string]Action{";": Reduce(10)},
	},
	20: {
		Actions: map[string]Action{"V": Shift(9), "N": Shift(40), "T": Shift(41)},
		Gotos:   map[string]int{"VNAME": 38, "ATOMIC": 37, "CONST": 39},
	},
	21: {
		Actions: map[string]Action{";": Reduce(12)},
	},
	22: {
		Actions: map[string]Action{";": Reduce(13)},
	},
	23: {
		Actions: map[string]Action{";": Reduce(14)},
	},
	24: {
		Actions: map[string]Action{"V": Shift(9), "N": Shift(40), "T": Shift(41)},
		Gotos:   map[string]int{"VNAME": 38, "ATOMIC": 42, "CONST": 39},
	},
	25: {
		Actions: map[string]Action{"<": Shift(43), "=": Shift(44)},
	},
	26: {
		Actions: map[string]Action{"(": Shift(45)},
	},
	27: {
		Actions: map[string]Action{
			"not": Shift(59), "sqrt": Shift(60), "or": Shift(51), "and": Shift(52),
			"eq": Shift(53), "grt": Shift(54), "add": Shift(55), "sub": Shift(56),
			"mul": Shift(57), "div": Shift(58),
		},
		Gotos: map[string]int{"COND": 46, "SIMPLE": 47, "COMPOSIT": 48, "UNOP": 50, "BINOP": 49},
	},
	28: {
		Actions: map[string]Action{"(": Reduce(45)},
	},
	29: {
		Actions: map[string]Action{"num": Shift(4), "text": Shift(5), "begin": Reduce(1)},
		Gotos:   map[string]int{"GLOBVARS": 61, "VTYP": 3},
	},
	30: {
		Actions: map[string]Action{"end": Reduce(47), "$": Reduce(47)},
	},
	31: {
		Actions: map[string]Action{
			"num": Reduce(48), "end": Reduce(48), "void": Reduce(48), "$": Reduce(48),
		},
	},
	32: {
		Actions: map[string]Action{"num": Shift(4), "text": Shift(5)},
		Gotos:   map[string]int{"VTYP": 63, "LOCVARS": 62},
	},
	33: {
		Actions: map[string]Action{"num": Reduce(53), "text": Reduce(53)},
	},
	34: {
		Actions: map[string]Action{"(": Shift(64)},
	},
	35: {
		Actions: map[string]Action{
			"num": Reduce(6), ";": Reduce(6), "else": Reduce(6), "void": Reduce(6),
			"}": Reduce(6), "$": Reduce(6),
		},
	},
	36: {
		Actions: map[string]Action{
			"V": Shift(9), "end": Reduce(7), "skip": Shift(18), "halt": Shift(19),
			"print": Shift(20), "if": Shift(27), "F": Shift(28), "return": Shift(24),
		},
		Gotos: map[string]int{"VNAME": 25, "INSTRUC": 65, "COMMAND": 17, "ASSIGN": 21, "CALL": 22, "BRANCH": 23, "FNAME": 26},
	},
	37: {
		Actions: map[string]Action{";": Reduce(11)},
	},
	38: {
		Actions: map[string]Action{",": Reduce(15), ";": Reduce(15), ")": Reduce(15)},
	},
	39: {
		Actions: map[string]Action{",": Reduce(16), ";": Reduce(16), ")": Reduce(16)},
	},
	40: {
		Actions: map[string]Action{",": Reduce(17), ";": Reduce(17), ")": Reduce(17)},
	},
	41: {
		Actions: map[string]Action{",": Reduce(18), ";": Reduce(18), ")": Reduce(18)},
	},
	42: {
		Actions: map[string]Action{";": Reduce(57)},
	},
	43: {
		Actions: map[string]Action{"input": Shift(66)},
	},
	44: {
		Actions: map[string]Action{
			"V": Shift(9), "N": Shift(40), "T": Shift(41), "not": Shift(59),
			"sqrt": Shift(60), "or": Shift(51), "and": Shift(52), "eq": Shift(53),
			"grt": Shift(54), "add": Shift(55), "sub": Shift(56), "mul": Shift(57),
			"div": Shift(58), "F": Shift(28),
		},
		Gotos: map[string]int{"VNAME": 38, "ATOMIC": 68, "CONST": 39, "CALL": 69, "TERM": 67, "OP": 70, "UNOP": 71, "BINOP": 72, "FNAME": 26},
	},
	45: {
		Actions: map[string]Action{"V": Shift(9), "N": Shift(40), "T": Shift(41)},
		Gotos:   map[string]int{"VNAME": 38, "ATOMIC": 73, "CONST": 39},
	},
	46: {
		Actions: map[string]Action{"then": Shift(74)},
	},
	47: {
		Actions: map[string]Action{"then": Reduce(30)},
	},
	48: {
		Actions: map[string]Action{"then": Reduce(31)},
	},
	49: {
		Actions: map[string]Action{"(": Shift(75)},
	},
	50: {
		Actions: map[string]Action{"(": Shift(76)},
	},
	51: {
		Actions: map[string]Action{"(": Reduce(37)},
	},
	52: {
		Actions: map[string]Action{"(": Reduce(38)},
	},
	53: {
		Actions: map[string]Action{"(": Reduce(39)},
	},
	54: {
		Actions: map[string]Action{"(": Reduce(40)},
	},
	55: {
		Actions: map[string]Action{"(": Reduce(41)},
	},
	56: {
		Actions: map[string]Action{"(": Reduce(42)},
	},
	57: {
		Actions: map[string]Action{"(": Reduce(43)},
	},
	58: {
		Actions: map[string]Action{"(": Reduce(44)},
	},
	59: {
		Actions: map[string]Action{"(": Reduce(35)},
	},
	60: {
		Actions: map[string]Action{"(": Reduce(36)},
	},
	61: {
		Actions: map[string]Action{"begin": Reduce(2)},
	},
	62: {
		Actions: map[string]Action{"begin": Shift(7)},
		Gotos:   map[string]int{"ALGO": 77},
	},
	63: {
		Actions: map[string]Action{"V": Shift(9)},
		Gotos:   map[string]int{"VNAME": 78},
	},
	64: {
		Actions: map[string]Action{"V": Shift(9)},
		Gotos:   map[string]int{"VNAME": 79},
	},
	65: {
		Actions: map[string]Action{"end": Reduce(8)},
	},
	66: {
		Actions: map[string]Action{";": Reduce(19)},
	},
	67: {
		Actions: map[string]Action{";": Reduce(20)},
	},
	68: {
		Actions: map[string]Action{";": Reduce(23)},
	},
	69: {
		Actions: map[string]Action{";": Reduce(24)},
	},
	70: {
		Actions: map[string]Action{";": Reduce(25)},
	},
	71: {
		Actions: map[string]Action{"(": Shift(80)},
	},
	72: {
		Actions: map[string]Action{"(": Shift(81)},
	},
	73: {
		Actions: map[string]Action{",": Shift(82)},
	},
	74: {
		Actions: map[string]Action{"begin": Shift(7)},
		Gotos:   map[string]int{"ALGO": 83},
	},
	75: {
		Actions: map[string]Action{
			"V": Shift(9), "N": Shift(40), "T": Shift(41), "or": Shift(51),
			"and": Shift(52), "eq": Shift(53), "grt": Shift(54), "add": Shift(55),
			"sub": Shift(56), "mul": Shift(57), "div": Shift(58),
		},
		Gotos: map[string]int{"VNAME": 38, "ATOMIC": 84, "CONST": 39, "SIMPLE": 85, "BINOP": 86},
	},
	76: {
		Actions: map[string]Action{
			"or": Shift(51), "and": Shift(52), "eq": Shift(53), "grt": Shift(54),
			"add": Shift(55), "sub": Shift(56), "mul": Shift(57), "div": Shift(58),
		},
		Gotos: map[string]int{"SIMPLE": 87, "BINOP": 86},
	},
	77: {
		Actions: map[string]Action{"}": Shift(89)},
		Gotos:   map[string]int{"EPILOG": 88},
	},
	78: {
		Actions: map[string]Action{",": Shift(90)},
	},
	79: {
		Actions: map[string]Action{",": Shift(91)},
	},
	80: {
		Actions: map[string]Action{
			"V": Shift(9), "N": Shift(40), "T": Shift(41), "not": Shift(59),
			"sqrt": Shift(60), "or": Shift(51), "and": Shift(52), "eq": Shift(53),
			"grt": Shift(54), "add": Shift(55), "sub": Shift(56), "mul": Shift(57),
			"div": Shift(58),
		},
		Gotos: map[string]int{"VNAME": 38, "ATOMIC": 93, "CONST": 39, "OP": 94, "ARG": 92, "UNOP": 71, "BINOP": 72},
	},
	81: {
		Actions: map[string]Action{
			"V": Shift(9), "N": Shift(40), "T": Shift(41), "not": Shift(59),
			"sqrt": Shift(60), "or": Shift(51), "and": Shift(52), "eq": Shift(53),
			"grt": Shift(54), "add": Shift(55), "sub": Shift(56), "mul": Shift(57),
			"div": Shift(58),
		},
		Gotos: map[string]int{"VNAME": 38, "ATOMIC": 93, "CONST": 39, "OP": 94, "ARG": 95, "UNOP": 71, "BINOP": 72},
	},
	82: {
		Actions: map[string]Action{"V": Shift(9), "N": Shift(40), "T": Shift(41)},
		Gotos:   map[string]int{"VNAME": 38, "ATOMIC": 96, "CONST": 39},
	},
	83: {
		Actions: map[string]Action{"else": Shift(97)},
	},
	84: {
		Actions: map[string]Action{",": Shift(98)},
	},
	85: {
		Actions: map[string]Action{",": Shift(99)},
	},
	86: {
		Actions: map[string]Action{"(": Shift(100)},
	},
	87: {
		Actions: map[string]Action{")": Shift(101)},
	},
	88: {
		Actions: map[string]Action{
			"num": Shift(14), "end": Reduce(46), "void": Shift(15), "$": Reduce(46),
		},
		Gotos: map[string]int{"FUNCTIONS": 103, "DECL": 11, "HEADER": 12, "FTYP": 13, "SUBFUNCS": 102},
	},
	89: {
		Actions: map[string]Action{
			"num": Reduce(54), "end": Reduce(54), "void": Reduce(54), "$": Reduce(54),
		},
	},
	90: {
		Actions: map[string]Action{"num": Shift(4), "text": Shift(5)},
		Gotos:   map[string]int{"VTYP": 104},
	},
	91: {
		Actions: map[string]Action{"V": Shift(9)},
		Gotos:   map[string]int{"VNAME": 105},
	},
	92: {
		Actions: map[string]Action{")": Shift(106)},
	},
	93: {
		Actions: map[string]Action{",": Reduce(28), ")": Reduce(28)},
	},
	94: {
		Actions: map[string]Action{",": Reduce(29), ")": Reduce(29)},
	},
	95: {
		Actions: map[string]Action{",": Shift(107)},
	},
	96: {
		Actions: map[string]Action{",": Shift(108)},
	},
	97: {
		Actions: map[string]Action{"begin": Shift(7)},
		Gotos:   map[string]int{"ALGO": 109},
	},
	98: {
		Actions: map[string]Action{"V": Shift(9), "N": Shift(40), "T": Shift(41)},
		Gotos:   map[string]int{"VNAME": 38, "ATOMIC": 110, "CONST": 39},
	},
	99: {
		Actions: map[string]Action{
			"or": Shift(51), "and": Shift(52), "eq": Shift(53), "grt": Shift(54),
			"add": Shift(55), "sub": Shift(56), "mul": Shift(57), "div": Shift(58),
		},
		Gotos: map[string]int{"SIMPLE": 111, "BINOP": 86},
	},
	100: {
		Actions: map[string]Action{"V": Shift(9), "N": Shift(40), "T": Shift(41)},
		Gotos:   map[string]int{"VNAME": 38, "ATOMIC": 84, "CONST": 39},
	},
	101: {
		Actions: map[string]Action{"then": Reduce(34)},
	},
	102: {
		Actions: map[string]Action{"end": Shift(112)},
	},
	103: {
		Actions: map[string]Action{"end": Reduce(56)},
	},
	104: {
		Actions: map[string]Action{"V": Shift(9)},
		Gotos:   map[string]int{"VNAME": 113},
	},
	105: {
		Actions: map[string]Action{",": Shift(114)},
	},
	106: {
		Actions: map[string]Action{",": Reduce(26), ";": Reduce(26), ")": Reduce(26)},
	},
	107: {
		Actions: map[string]Action{
			"V": Shift(9), "N": Shift(40), "T": Shift(41), "not": Shift(59),
			"sqrt": Shift(60), "or": Shift(51), "and": Shift(52), "eq": Shift(53),
			"grt": Shift(54), "add": Shift(55), "sub": Shift(56), "mul": Shift(57),
			"div": Shift(58),
		},
		Gotos: map[string]int{"VNAME": 38, "ATOMIC": 93, "CONST": 39, "OP": 94, "ARG": 115, "UNOP": 71, "BINOP": 72},
	},
	108: {
		Actions: map[string]Action{"V": Shift(9), "N": Shift(40), "T": Shift(41)},
		Gotos:   map[string]int{"VNAME": 38, "ATOMIC": 116, "CONST": 39},
	},
	109: {
		Actions: map[string]Action{";": Reduce(22)},
	},
	110: {
		Actions: map[string]Action{")": Shift(117)},
	},
	111: {
		Actions: map[string]Action{")": Shift(118)},
	},
	112: {
		Actions: map[string]Action{
			"num": Reduce(52), "end": Reduce(52), "void": Reduce(52), "$": Reduce(52),
		},
	},
	113: {
		Actions: map[string]Action{",": Shift(119)},
	},
	114: {
		Actions: map[string]Action{"V": Shift(9)},
		Gotos:   map[string]int{"VNAME": 120},
	},
	115: {
		Actions: map[string]Action{")": Shift(121)},
	},
	116: {
		Actions: map[string]Action{")": Shift(122)},
	},
	117: {
		Actions: map[string]Action{",": Reduce(32), ")": Reduce(32), "then": Reduce(32)},
	},
	118: {
		Actions: map[string]Action{"then": Reduce(33)},
	},
	119: {
		Actions: map[string]Action{"num": Shift(4), "text": Shift(5)},
		Gotos:   map[string]int{"VTYP": 123},
	},
	120: {
		Actions: map[string]Action{")": Shift(124)},
	},
	121: {
		Actions: map[string]Action{",": Reduce(27), ";": Reduce(27), ")": Reduce(27)},
	},
	122: {
		Actions: map[string]Action{";": Reduce(21)},
	},
	123: {
		Actions: map[string]Action{"V": Shift(9)},
		Gotos:   map[string]int{"VNAME": 125},
	},
	124: {
		Actions: map[string]Action{"{": Reduce(49)},
	},
	125: {
		Actions: map[string]Action{",": Shift(126)},
	},
	126: {
		Actions: map[string]Action{"begin": Reduce(55)},
	},
}
