package utils

import (
	"math"
	"strconv"
)

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

type Fl = float64

// FlooredMod returns d modulo m, with the sign of m,
// so that FlooredMod(-1, 2) == 1.
func FlooredMod(d, m int) int {
	res := d % m
	if (res < 0 && m > 0) || (res > 0 && m < 0) {
		return res + m
	}
	return res
}

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return math.Round(f*n10) / n10
}

// Round rounds f with 6 digits precision
func Round(f Fl) Fl {
	return RoundPrec(f, 6)
}

// FormatFloat returns the shortest representation of `f`,
// after rounding to 6 digits.
func FormatFloat(f Fl) string {
	return strconv.FormatFloat(Round(f), 'f', -1, 64)
}
