package domain

import (
	"regexp"
	"strings"
)

type Pair string

var SupportedAsset = map[string]bool{
	"XRP": true,
	"BTC": true,
}

var pairRe = regexp.MustCompile(`^[A-Z]{3,5}/[A-Z]{3,5}$`)

func NewPair(base, quote string) Pair {
	return Pair(strings.ToUpper(base) + "/" + strings.ToUpper(quote))
}

// ValidatePair checks the BASE/QUOTE format, that both assets are supported
// and that they differ.
func ValidatePair(p string) bool {
	if !pairRe.MatchString(p) {
		return false
	}
	base, quote, _ := strings.Cut(p, "/")
	return SupportedAsset[base] && SupportedAsset[quote] && base != quote
}

// Base is the primary asset of the pair.
func (p Pair) Base() string {
	base, _, _ := strings.Cut(string(p), "/")
	return base
}

// Quote is the secondary asset of the pair.
func (p Pair) Quote() string {
	_, quote, _ := strings.Cut(string(p), "/")
	return quote
}
