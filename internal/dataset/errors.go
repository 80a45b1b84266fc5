package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

var (
	ErrConfigDefect        = errors.New("config defect")
	ErrDuplicateAssignment = errors.New("duplicate assignment")
)

// ConfigDefectError reports game data that can never be randomized, such as
// a requirement on a flag that no item or event grants.
type ConfigDefectError struct {
	Missing     []logic.Flag
	Suggestions map[logic.Flag][]string
	Cause       error
}

func (e *ConfigDefectError) Error() string {
	if e.Cause != nil {
		return "config defect: " + e.Cause.Error()
	}
	parts := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		parts[i] = string(f)
		if s := e.Suggestions[f]; len(s) > 0 {
			parts[i] += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, " or "))
		}
	}
	return "config defect: no item or event grants " + strings.Join(parts, ", ")
}

func (e *ConfigDefectError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConfigDefect, e.Cause}
	}
	return []error{ErrConfigDefect}
}

type DuplicateAssignmentError struct {
	Flag   logic.Flag
	First  string
	Second string
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("duplicate assignment: %s at %s and %s", e.Flag, e.First, e.Second)
}

func (e *DuplicateAssignmentError) Unwrap() error { return ErrDuplicateAssignment }
