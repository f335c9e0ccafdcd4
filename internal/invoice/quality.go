// Package invoice splits multi-invoice OCR blobs into per-invoice segments
// and gates each segment behind a heuristic quality score.
package invoice

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/entity"
)

// QualityConfig carries the scorer tunables. Zero values fall back to the
// named defaults in common.
type QualityConfig struct {
	Threshold float64 // acceptance floor for the combined score
	MinLength int     // segments shorter than this are capped low
}

func (c QualityConfig) withDefaults() QualityConfig {
	if c.Threshold <= 0 {
		c.Threshold = common.DefaultQualityThreshold
	}
	if c.MinLength <= 0 {
		c.MinLength = common.DefaultMinSegmentLength
	}
	return c
}

// Fixed weights, summing to 1.0: character legibility plus four structural
// markers a real invoice carries.
const (
	weightLegibility = 0.40
	weightDate       = 0.15
	weightTotal      = 0.15
	weightPrice      = 0.15
	weightSupplier   = 0.15
)

// score cap applied to segments under the length floor
const shortSegmentCap = 0.3

var (
	reQualityDate  = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)
	reQualityTotal = regexp.MustCompile(`(?i)\b(total|net\s+[àa]\s+payer|montant|ttc|ht)\b`)
	reQualityPrice = regexp.MustCompile(`\d+[.,]\d{2}`)
	reSupplierName = regexp.MustCompile(`(?i)\b(sarl|sas|eurl|sasu|ets|etablissements|fournisseur)\b|\b\p{Lu}{3,}\b`)
)

// common punctuation for the garbled-character ratio; OCR noise characters
// like '?', '#' and '|' are deliberately not in this set
const commonPunct = " .,;:'\"()&@°%/€$£+*=\n\r\t-"

// CheckQuality scores a text segment for "is this a well-formed invoice".
// The verdict is data, not an error: rejected segments keep their score and
// the reasons they failed.
func CheckQuality(text string, cfg QualityConfig) entity.QualityResult {
	cfg = cfg.withDefaults()

	var issues []string
	score := weightLegibility * (1.0 - garbledRatio(text))

	if reQualityDate.MatchString(text) {
		score += weightDate
	} else {
		issues = append(issues, "no date-like token")
	}
	if reQualityTotal.MatchString(text) {
		score += weightTotal
	} else {
		issues = append(issues, "no total-like token")
	}
	if reQualityPrice.MatchString(text) {
		score += weightPrice
	} else {
		issues = append(issues, "no price-like token")
	}
	if reSupplierName.MatchString(text) {
		score += weightSupplier
	} else {
		issues = append(issues, "no plausible supplier name")
	}

	if len(text) < cfg.MinLength {
		issues = append(issues, fmt.Sprintf("segment shorter than %d chars", cfg.MinLength))
		if score > shortSegmentCap {
			score = shortSegmentCap
		}
	}

	if ratio := garbledRatio(text); ratio > 0.3 {
		issues = append(issues, fmt.Sprintf("garbled character ratio %.2f", ratio))
	}

	return entity.QualityResult{
		IsAcceptable: score >= cfg.Threshold,
		Score:        score,
		Issues:       issues,
	}
}

// garbledRatio is the fraction of characters that are neither alphanumeric
// nor common punctuation.
func garbledRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total, garbled := 0, 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if strings.ContainsRune(commonPunct, r) {
			continue
		}
		garbled++
	}
	return float64(garbled) / float64(total)
}
