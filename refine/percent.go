package refine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PercentError reports an invalid percent operation: a complement of an
// overflowed value, or arithmetic leaving the representable range.
type PercentError struct {
	Op       string
	Lhs, Rhs uint16
}

func (e *PercentError) Error() string {
	return fmt.Sprintf("percent arithmetic out of bound: %d %s %d", e.Lhs, e.Op, e.Rhs)
}

// Percent is an integer percentage. Values above 100 are representable so
// that impact sums can exceed a whole schedule, but they are flagged as
// overflow and excluded from Complement.
type Percent uint16

// PercentOne is 100%.
const PercentOne Percent = 100

// PercentFromRatio converts a ratio (1.0 == 100%) to the nearest integer
// percent. Negative ratios and ratios beyond the uint16 range are rejected.
func PercentFromRatio(ratio float64) (Percent, error) {
	rounded := math.Round(100 * ratio)
	if rounded < 0 || rounded > float64(math.MaxUint16) {
		return 0, &PercentError{Op: "ratio", Lhs: 0, Rhs: 0}
	}
	return Percent(rounded), nil
}

// ParsePercent parses strings like "85", "85%", or "0.85" (without the
// percent sign the value is interpreted as a ratio only when it contains a
// decimal point).
func ParsePercent(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	if trimmed, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as percent: %w", s, err)
		}
		return PercentFromRatio(f / 100)
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as percent: %w", s, err)
		}
		return PercentFromRatio(f)
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as percent: %w", s, err)
	}
	return Percent(n), nil
}

// IsOverflow reports whether the value is beyond 100%.
func (p Percent) IsOverflow() bool { return p > 100 }

// Complement returns 100% minus p. Overflowed values have no complement.
func (p Percent) Complement() (Percent, error) {
	if p.IsOverflow() {
		return 0, &PercentError{Op: "complement", Lhs: uint16(p), Rhs: 100}
	}
	return 100 - p, nil
}

// Add returns p plus q, or an error when the sum leaves the uint16 range.
func (p Percent) Add(q Percent) (Percent, error) {
	sum := uint32(p) + uint32(q)
	if sum > math.MaxUint16 {
		return 0, &PercentError{Op: "+", Lhs: uint16(p), Rhs: uint16(q)}
	}
	return Percent(sum), nil
}

// Sub returns p minus q, or an error when q exceeds p.
func (p Percent) Sub(q Percent) (Percent, error) {
	if q > p {
		return 0, &PercentError{Op: "-", Lhs: uint16(p), Rhs: uint16(q)}
	}
	return p - q, nil
}

// Clamp caps the value at 100%.
func (p Percent) Clamp() Percent {
	if p > 100 {
		return 100
	}
	return p
}

func (p Percent) String() string { return fmt.Sprintf("%d%%", uint16(p)) }
