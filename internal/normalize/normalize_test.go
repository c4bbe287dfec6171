package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamepulse/gamepulse/internal/domain"
)

func TestParseOwnership_Range(t *testing.T) {
	got := ParseOwnership("20,000,000 .. 50,000,000")
	assert.Equal(t, domain.OwnershipRange{
		Min:     20000000,
		Max:     50000000,
		Average: 35000000,
	}, got)
}

func TestParseOwnership_RangeWithoutSeparators(t *testing.T) {
	got := ParseOwnership("100 .. 200")
	assert.Equal(t, int64(100), got.Min)
	assert.Equal(t, int64(200), got.Max)
	assert.Equal(t, int64(150), got.Average)
}

func TestParseOwnership_BareNumber(t *testing.T) {
	got := ParseOwnership("50,000")
	assert.Equal(t, domain.OwnershipRange{Min: 50000, Max: 50000, Average: 50000}, got)
}

func TestParseOwnership_Garbage(t *testing.T) {
	for _, input := range []string{"", "   ", "a lot", "10 .. banana", "-5 .. 10", "200 .. 100", ".."} {
		assert.Equal(t, domain.OwnershipRange{}, ParseOwnership(input), "input %q", input)
	}
}

func TestParseOwnership_AverageIsMidpoint(t *testing.T) {
	// Odd sums truncate toward zero; the invariant min <= avg <= max
	// must still hold.
	got := ParseOwnership("1 .. 2")
	assert.LessOrEqual(t, got.Min, got.Average)
	assert.LessOrEqual(t, got.Average, got.Max)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(0), MinorUnits(-100))
	assert.Equal(t, int64(1999), MinorUnits(1999))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(-5))
	assert.Equal(t, 100, Percent(250))
	assert.Equal(t, 33, Percent(33))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Unknown", Label(""))
	assert.Equal(t, "Unknown", Label("   "))
	assert.Equal(t, "Valve", Label("Valve"))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"Action", "RPG"}, Dedupe([]string{"Action", "RPG", "Action", " ", ""}))
	assert.Nil(t, Dedupe(nil))
}
