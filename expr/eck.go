// Package expr provides the predefined operator code table of the
// modeling suite and read accessors for existing expressions.
package expr

import "fmt"

// Eck is the code of a predefined operator, as stored in the
// PredefOpr attribute of a call expression. The numeric values are
// fixed by the host and documented in its scripting reference; the
// gaps in the numbering are the host's, not ours.
type Eck int

// Predefined operator codes.
const (
	EckNone           Eck = 1
	EckAnd            Eck = 2
	EckOr             Eck = 3
	EckXor            Eck = 4
	EckNot            Eck = 5
	EckSharp          Eck = 6
	EckPlus           Eck = 7
	EckSub            Eck = 8
	EckNeg            Eck = 9
	EckMul            Eck = 10
	EckReal2Int       Eck = 11
	EckInt2Real       Eck = 12
	EckSlash          Eck = 14
	EckDiv            Eck = 15
	EckMod            Eck = 16
	EckPrj            Eck = 18
	EckChangeIth      Eck = 19
	EckLess           Eck = 20
	EckLEqual         Eck = 21
	EckGreat          Eck = 22
	EckGEqual         Eck = 23
	EckEqual          Eck = 24
	EckNEqual         Eck = 25
	EckPre            Eck = 26
	EckWhen           Eck = 28
	EckFollow         Eck = 29
	EckFby            Eck = 30
	EckIf             Eck = 31
	EckCase           Eck = 32
	EckSeqExpr        Eck = 33
	EckBldStruct      Eck = 34
	EckMap            Eck = 35
	EckFold           Eck = 36
	EckMapFold        Eck = 37
	EckMapi           Eck = 38
	EckFoldi          Eck = 39
	EckScalarToVector Eck = 40
	EckBldVector      Eck = 41
	EckPrjDyn         Eck = 42
	EckMake           Eck = 43
	EckFlatten        Eck = 44
	EckMerge          Eck = 45
	EckReverse        Eck = 46
	EckTranspose      Eck = 47
	EckTimes          Eck = 49
	EckMatch          Eck = 50
	EckSlice          Eck = 51
	EckConcat         Eck = 52
	EckActivate       Eck = 53
	EckRestart        Eck = 54
	EckFoldw          Eck = 55
	EckFoldwi         Eck = 56
	EckActivateNoInit Eck = 57
	EckClockedAct     Eck = 58
	EckClockedNot     Eck = 59
	EckPos            Eck = 60
	EckMapw           Eck = 61
	EckMapwi          Eck = 62
	EckNumericCast    Eck = 63
	EckMapFoldi       Eck = 64
	EckMapFoldw       Eck = 65
	EckMapFoldwi      Eck = 66
	EckLand           Eck = 67
	EckLor            Eck = 68
	EckLxor           Eck = 69
	EckLnot           Eck = 70
	EckLsl            Eck = 71
	EckLsr            Eck = 72
)

var eckNames = map[Eck]string{
	EckNone:           "NONE",
	EckAnd:            "AND",
	EckOr:             "OR",
	EckXor:            "XOR",
	EckNot:            "NOT",
	EckSharp:          "SHARP",
	EckPlus:           "PLUS",
	EckSub:            "SUB",
	EckNeg:            "NEG",
	EckMul:            "MUL",
	EckReal2Int:       "REAL2INT",
	EckInt2Real:       "INT2REAL",
	EckSlash:          "SLASH",
	EckDiv:            "DIV",
	EckMod:            "MOD",
	EckPrj:            "PRJ",
	EckChangeIth:      "CHANGE_ITH",
	EckLess:           "LESS",
	EckLEqual:         "LEQUAL",
	EckGreat:          "GREAT",
	EckGEqual:         "GEQUAL",
	EckEqual:          "EQUAL",
	EckNEqual:         "NEQUAL",
	EckPre:            "PRE",
	EckWhen:           "WHEN",
	EckFollow:         "FOLLOW",
	EckFby:            "FBY",
	EckIf:             "IF",
	EckCase:           "CASE",
	EckSeqExpr:        "SEQ_EXPR",
	EckBldStruct:      "BLD_STRUCT",
	EckMap:            "MAP",
	EckFold:           "FOLD",
	EckMapFold:        "MAPFOLD",
	EckMapi:           "MAPI",
	EckFoldi:          "FOLDI",
	EckScalarToVector: "SCALAR_TO_VECTOR",
	EckBldVector:      "BLD_VECTOR",
	EckPrjDyn:         "PRJ_DYN",
	EckMake:           "MAKE",
	EckFlatten:        "FLATTEN",
	EckMerge:          "MERGE",
	EckReverse:        "REVERSE",
	EckTranspose:      "TRANSPOSE",
	EckTimes:          "TIMES",
	EckMatch:          "MATCH",
	EckSlice:          "SLICE",
	EckConcat:         "CONCAT",
	EckActivate:       "ACTIVATE",
	EckRestart:        "RESTART",
	EckFoldw:          "FOLDW",
	EckFoldwi:         "FOLDWI",
	EckActivateNoInit: "ACTIVATE_NOINIT",
	EckClockedAct:     "CLOCKED_ACTIVATE",
	EckClockedNot:     "CLOCKED_NOT",
	EckPos:            "POS",
	EckMapw:           "MAPW",
	EckMapwi:          "MAPWI",
	EckNumericCast:    "NUMERIC_CAST",
	EckMapFoldi:       "MAPFOLDI",
	EckMapFoldw:       "MAPFOLDW",
	EckMapFoldwi:      "MAPFOLDWI",
	EckLand:           "LAND",
	EckLor:            "LOR",
	EckLxor:           "LXOR",
	EckLnot:           "LNOT",
	EckLsl:            "LSL",
	EckLsr:            "LSR",
}

var eckByName = func() map[string]Eck {
	m := make(map[string]Eck, len(eckNames))
	for k, v := range eckNames {
		m[v] = k
	}
	return m
}()

// String returns the symbolic name of the code.
func (e Eck) String() string {
	if name, ok := eckNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Eck(%d)", int(e))
}

// Code returns the numeric value stored in the host model.
func (e Eck) Code() int { return int(e) }

// Valid reports whether the code is part of the documented table.
func (e Eck) Valid() bool {
	_, ok := eckNames[e]
	return ok
}

// EckFromCode maps a host code to its Eck, rejecting codes outside the
// documented table.
func EckFromCode(code int) (Eck, error) {
	e := Eck(code)
	if !e.Valid() {
		return EckNone, fmt.Errorf("expr: unknown predefined operator code %d", code)
	}
	return e, nil
}

// EckFromName maps a symbolic name such as "PLUS" to its Eck.
func EckFromName(name string) (Eck, error) {
	e, ok := eckByName[name]
	if !ok {
		return EckNone, fmt.Errorf("expr: unknown predefined operator %q", name)
	}
	return e, nil
}
