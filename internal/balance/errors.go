package balance

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrDomain marks inputs outside the mathematically valid domain.
	ErrDomain = errors.New("domain error")
	// ErrUnknownCategory marks a bonus category the ladder does not define.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownTier marks a producer name the tuning does not define.
	ErrUnknownTier = errors.New("unknown producer tier")
)

// DomainError reports which operation rejected its input and why.
type DomainError struct {
	Op  string
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrDomain, e.Msg)
}

func (e *DomainError) Is(target error) bool { return target == ErrDomain }

func domainErr(op, format string, args ...any) error {
	return &DomainError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// UnknownCategoryError names the missing category and, when one is close
// enough, the category the caller probably meant.
type UnknownCategoryError struct {
	Category   string
	Suggestion string
}

func (e *UnknownCategoryError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s %q (did you mean %q?)", ErrUnknownCategory, e.Category, e.Suggestion)
	}
	return fmt.Sprintf("%s %q", ErrUnknownCategory, e.Category)
}

func (e *UnknownCategoryError) Is(target error) bool { return target == ErrUnknownCategory }

// Suggest returns the candidate closest to name by edit distance, or "" when
// nothing is within a third of the name's length.
func Suggest(name string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > (len(name)+2)/3 {
		return ""
	}
	return best
}
