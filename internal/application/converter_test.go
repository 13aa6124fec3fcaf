package application

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"cryptoswap-service/internal/domain"

	"github.com/stretchr/testify/require"
)

const seed = 0.000016

func TestFromPrimary_Scenario(t *testing.T) {
	got, err := FromPrimary("100", seed)
	require.NoError(t, err)
	require.Equal(t, "0.00160000", got)
}

func TestFromSecondary_Scenario(t *testing.T) {
	got, err := FromSecondary("0.5", seed)
	require.NoError(t, err)
	require.Equal(t, "31250.00", got)
}

func TestConversions_ClearOnBadInput(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1,000", "NaN", "Infinity", "--1", "1e400", "-1e400", "2e308", "1e2000000000"} {
		got, err := FromPrimary(in, seed)
		require.NoError(t, err, in)
		require.Equal(t, "", got, in)

		got, err = FromSecondary(in, seed)
		require.NoError(t, err, in)
		require.Equal(t, "", got, in)
	}
}

func TestConversions_AcceptNumberForms(t *testing.T) {
	cases := map[string]string{
		" 100 ":         "0.00160000",
		"1e2":           "0.00160000",
		".5":            "0.00000800",
		"0":             "0.00000000",
		"1e-400":        "0.00000000",
		"1e-2000000000": "0.00000000",
		"0e2000000000":  "0.00000000",
		"1e300":         "16" + strings.Repeat("0", 294) + ".00000000",
	}
	for in, want := range cases {
		got, err := FromPrimary(in, seed)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestConversions_RoundHalfAwayFromZero(t *testing.T) {
	got, err := FromSecondary("0.125", 1)
	require.NoError(t, err)
	require.Equal(t, "0.13", got)

	got, err = FromSecondary("-0.125", 1)
	require.NoError(t, err)
	require.Equal(t, "-0.13", got)

	got, err = FromPrimary("0.000000005", 1)
	require.NoError(t, err)
	require.Equal(t, "0.00000001", got)
}

func TestFromSecondary_DivisionError(t *testing.T) {
	for _, rate := range []float64{0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FromSecondary("1", rate)
		require.ErrorIs(t, err, domain.ErrDivision)
		require.True(t, IsRateError(err))
	}
	// Nothing to divide: the paired field is simply cleared.
	got, err := FromSecondary("", 0)
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestFromPrimary_NonFiniteRate(t *testing.T) {
	_, err := FromPrimary("1", math.NaN())
	require.ErrorIs(t, err, domain.ErrInvalidRate)

	got, err := FromPrimary("1", 0)
	require.NoError(t, err)
	require.Equal(t, "0.00000000", got)
}

func TestConversions_RoundTrip(t *testing.T) {
	rates := []float64{0.000016, 0.0000158, 0.5, 1, 3.75, 43250}
	amounts := []float64{0, 0.01, 1, 12.34, 100, 1250, 31250, 99999.99}
	for _, rate := range rates {
		for _, a := range amounts {
			in := strconv.FormatFloat(a, 'f', -1, 64)
			b, err := FromPrimary(in, rate)
			require.NoError(t, err)
			back, err := FromSecondary(b, rate)
			require.NoError(t, err)
			got, err := strconv.ParseFloat(back, 64)
			require.NoError(t, err)
			// 8-decimal rounding of b bounds the error by 0.5e-8/rate, plus the
			// final 2-decimal rounding.
			tol := 0.5e-8/rate + 0.005 + 1e-9
			require.InDelta(t, a, got, tol, "a=%v rate=%v b=%s back=%s", a, rate, b, back)
		}
	}
}

func TestConvert_Dispatch(t *testing.T) {
	got, err := Convert(domain.SidePrimary, "100", seed)
	require.NoError(t, err)
	require.Equal(t, "0.00160000", got)

	got, err = Convert(domain.SideSecondary, "0.5", seed)
	require.NoError(t, err)
	require.Equal(t, "31250.00", got)

	_, err = Convert("sideways", "1", seed)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "0.00001600", FormatRate(seed))
	require.Equal(t, "", FormatRate(math.NaN()))
	require.Equal(t, "+2.34%", FormatChange(2.34))
	require.Equal(t, "-0.57%", FormatChange(-0.567))
	require.Equal(t, "+0.00%", FormatChange(0))
	require.Equal(t, "$2998.50", FormatUSD(decimal2("2998.5")))
	require.Equal(t, "-$1.25", FormatUSD(decimal2("-1.25")))
}
