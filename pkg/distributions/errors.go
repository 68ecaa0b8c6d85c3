package distributions

import "fmt"

// Error messages shared by the family implementations.
const (
	errNonPositiveScaleFmt   = "scale must be positive, got %v"
	errFixedScaleConflictFmt = "dispersion is fixed at 1 by definition, got scale %v"
	errLevelsNotBinomial     = "levels is only valid for the binomial family"
	errNonPositiveLevelsFmt  = "levels must be a positive integer, got %d"
	errUnknownFamilyFmt      = "unknown family: '%s'"

	errNonPositiveFmt   = "%s must be strictly positive"
	errNegativeFmt      = "%s must be non-negative"
	errOutOfRangeFmt    = "%s must lie in [0, levels=%d]"
	errNonIntegerCount  = "y must contain non-negative integer counts"
	errDegenerateDofFmt = "dispersion denominator n - edof = %v is not positive (n = %d, edof = %v)"
	errEmptyMeans       = "mu must contain at least one value"
)

// ConfigError reports an invalid construction of a family, such as a
// non-positive scale or a conflicting fixed dispersion.
type ConfigError struct {
	Family string
	Msg    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("distributions: %s: %s", e.Family, e.Msg)
}

// DomainError reports an argument outside the family's valid domain, caught
// before any log or power operation can produce a NaN or an infinity.
type DomainError struct {
	Family string
	Op     string
	Msg    string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("distributions: %s: %s: %s", e.Family, e.Op, e.Msg)
}

// ShapeError reports y and mu of incompatible lengths passed to an
// elementwise operation.
type ShapeError struct {
	Op   string
	LenY int
	LenM int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("distributions: %s: mismatched lengths: len(y) = %d, len(mu) = %d",
		e.Op, e.LenY, e.LenM)
}
