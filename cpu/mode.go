package cpu

import (
	"strings"
)

// FlagMode selects how CMP treats flags left by an earlier comparison.
type FlagMode int

const (
	FLAG_MODE_REPLACE = FlagMode(0) // CMP clears the comparison flags before setting one.
	FLAG_MODE_STICKY  = FlagMode(1) // CMP only sets flags; earlier bits remain.
)

var flagModeName = map[FlagMode]string{
	FLAG_MODE_REPLACE: "replace",
	FLAG_MODE_STICKY:  "sticky",
}

func (mode FlagMode) String() string {
	name, ok := flagModeName[mode]
	if !ok {
		return "invalid"
	}
	return name
}

// ParseFlagMode parses a flag mode name.
func ParseFlagMode(name string) (mode FlagMode, err error) {
	for mode, text := range flagModeName {
		if strings.EqualFold(name, text) {
			return mode, nil
		}
	}

	err = ErrModeInvalid
	return
}

// ReturnMode selects where RET takes its return address from.
//
// CALL records the return address twice: on the stack, and in the
// linkage register. RETURN_MODE_LINKAGE trusts the linkage register,
// which supports a single live call frame only; a nested CALL
// overwrites the outer frame's return address. RETURN_MODE_STACK
// returns to the address popped from the stack.
type ReturnMode int

const (
	RETURN_MODE_LINKAGE = ReturnMode(0)
	RETURN_MODE_STACK   = ReturnMode(1)
)

var returnModeName = map[ReturnMode]string{
	RETURN_MODE_LINKAGE: "linkage",
	RETURN_MODE_STACK:   "stack",
}

func (mode ReturnMode) String() string {
	name, ok := returnModeName[mode]
	if !ok {
		return "invalid"
	}
	return name
}

// ParseReturnMode parses a return mode name.
func ParseReturnMode(name string) (mode ReturnMode, err error) {
	for mode, text := range returnModeName {
		if strings.EqualFold(name, text) {
			return mode, nil
		}
	}

	err = ErrModeInvalid
	return
}
