// Package zreport turns the OCR text of an end-of-day closure report into a
// category/production hierarchy with per-family aggregates and a total
// reconciliation check.
//
// The engine leans on one structural fact of these receipts: indentation.
// A sales line at column zero is a category; the same line shifted right is
// a production nested under the most recent category. Leading whitespace is
// therefore captured before any cleanup.
package zreport

import (
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/entity"
	"github.com/mlaurent/restodoc/internal/fields"
	"github.com/mlaurent/restodoc/internal/ocr"
)

// Header fields are searched independently over the whole text; a miss is
// a nil field, never an error.
var (
	reHeaderDate   = regexp.MustCompile(`(?i)Date\s*:\s*(\d{2}/\d{2}/\d{4})`)
	reHeaderTime   = regexp.MustCompile(`(?i)Heure\s*:\s*(\d{2}:\d{2}:\d{2})`)
	reHeaderCovers = regexp.MustCompile(`(?i)Nombre\s+de\s+couverts\s*:\s*(\d[\d .,]*)`)
	reHeaderHT     = regexp.MustCompile(`(?i)Total\s+HT\s*:\s*(\d[\d .,]*)`)
	reHeaderTTC    = regexp.MustCompile(`(?i)Total\s+TTC\s*:\s*(\d[\d .,]*)`)
)

// Sales line pattern after noise stripping: optional "x", quantity, ")",
// name, price with two decimals. Quantity and price may use the French
// decimal comma.
var reSalesLine = regexp.MustCompile(`^x?(\d+(?:,\d+)?)\)\s*(.+?)\s+(\d+[.,]\d{2})$`)

// noise characters stripped from line edges before pattern matching
const lineNoise = " \t_"

// forbiddenTokens are receipt metadata, never sales items. Any candidate
// containing one of them is rejected.
var forbiddenTokens = []string{
	"tva", "total", "sous-total", "remise", "service", "heure", "solde", "caisse",
}

// Family keyword sets, evaluated in this order. The drink vocabulary runs
// first so top-level bottle/cocktail/hot-drink categories land in Bar even
// when a dish keyword also appears in the name.
var familySets = []struct {
	family   constants.Family
	keywords []string
}{
	{constants.FamilyBar, []string{
		"bar", "boisson", "bouteille", "btl", "cocktail", "apéritif", "aperitif",
		"digestif", "bière", "biere", "vin", "champagne", "café", "cafe",
		"thé", "the chaud", "chocolat chaud", "soft", "jus", "eau", "spiritueux",
	}},
	{constants.FamilyEntrees, []string{
		"entrée", "entree", "salade", "soupe", "potage", "velouté", "veloute",
		"carpaccio", "tartare", "starter",
	}},
	{constants.FamilyPlats, []string{
		"plat", "principal", "viande", "poisson", "burger", "pizza",
		"pâtes", "pates", "risotto", "grillade",
	}},
	{constants.FamilyDesserts, []string{
		"dessert", "glace", "sorbet", "tarte", "gâteau", "gateau", "mousse",
		"fondant", "crème brûlée", "creme brulee", "patisserie", "pâtisserie",
	}},
}

// Engine is the Z-report structuring engine. It holds no per-document
// state; one Engine may serve concurrent Parse calls.
type Engine struct {
	log *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{log: logger}
}

// Parse structures the full OCR text of one Z-report. Malformed input
// degrades to a partial result; Parse never fails.
func (e *Engine) Parse(text string) *entity.ZReportResult {
	result := &entity.ZReportResult{
		Categories:  []entity.CategoryEntry{},
		Productions: []entity.ProductionEntry{},
		Families:    map[constants.Family]entity.FamilyAggregate{},
	}

	e.extractHeader(text, result)
	e.classifyLines(text, result)
	e.boundPlatsZone(result)
	e.aggregate(result)
	e.reconcile(result)

	e.log.Info("zreport.parse.done",
		"categories", len(result.Categories),
		"productions", len(result.Productions),
		"computed_total", result.Reconciliation.ComputedTotal,
	)
	return result
}

func (e *Engine) extractHeader(text string, result *entity.ZReportResult) {
	if m := reHeaderDate.FindStringSubmatch(text); m != nil {
		result.ClosureDate = m[1]
	}
	if m := reHeaderTime.FindStringSubmatch(text); m != nil {
		result.ClosureTime = m[1]
	}
	if m := reHeaderCovers.FindStringSubmatch(text); m != nil {
		result.CoversCount = fields.NormalizeNumber(m[1])
	}
	if m := reHeaderHT.FindStringSubmatch(text); m != nil {
		result.TotalExclTax = fields.NormalizeNumber(m[1])
	}
	if m := reHeaderTTC.FindStringSubmatch(text); m != nil {
		result.TotalInclTax = fields.NormalizeNumber(m[1])
	}
}

// classifyLines walks the text line by line, capturing raw indentation
// before any stripping, and emits category and production entries.
func (e *Engine) classifyLines(text string, result *entity.ZReportResult) {
	var lastCategory *entity.CategoryEntry

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rawIndent := ocr.Indent(line)
		stripped := strings.Trim(line, lineNoise)

		m := reSalesLine.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		if containsForbiddenToken(stripped) {
			continue
		}

		qty := 0
		if v := fields.NormalizeNumber(m[1]); v != nil {
			qty = int(*v)
		}
		name := strings.TrimSpace(m[2])
		price := 0.0
		if v := fields.NormalizeNumber(m[3]); v != nil {
			price = *v
		}
		if qty < 0 || price < 0 || name == "" {
			continue
		}

		lineNumber := i + 1
		if rawIndent == 0 {
			cat := entity.CategoryEntry{
				Name:        name,
				Quantity:    qty,
				TotalPrice:  price,
				IndentLevel: 0,
				Family:      resolveFamily(name),
				RawLine:     line,
				LineNumber:  lineNumber,
			}
			result.Categories = append(result.Categories, cat)
			lastCategory = &result.Categories[len(result.Categories)-1]
			continue
		}

		prod := entity.ProductionEntry{
			Name:        name,
			Quantity:    qty,
			TotalPrice:  price,
			IndentLevel: rawIndent,
			Family:      constants.FamilyAutres,
			RawLine:     line,
			LineNumber:  lineNumber,
		}
		if lastCategory != nil {
			prod.Family = lastCategory.Family
			prod.Category = lastCategory.Name
		}
		result.Productions = append(result.Productions, prod)
	}
}

// boundPlatsZone applies the sequential false-positive guard: a weakly
// classified production lying strictly between the end of the Entrées block
// and the start of the Desserts block is treated as a Plats production.
// Candidates outside that window are never force-classified as Plats.
func (e *Engine) boundPlatsZone(result *entity.ZReportResult) {
	entreesEnd, dessertsStart := 0, 0

	for _, cat := range result.Categories {
		if cat.Family == constants.FamilyEntrees && cat.LineNumber > entreesEnd {
			entreesEnd = cat.LineNumber
		}
		if cat.Family == constants.FamilyDesserts && (dessertsStart == 0 || cat.LineNumber < dessertsStart) {
			dessertsStart = cat.LineNumber
		}
	}
	for _, prod := range result.Productions {
		if prod.Family == constants.FamilyEntrees && prod.LineNumber > entreesEnd {
			entreesEnd = prod.LineNumber
		}
	}
	if entreesEnd == 0 || dessertsStart == 0 || dessertsStart <= entreesEnd {
		return
	}

	for i := range result.Productions {
		prod := &result.Productions[i]
		if prod.Family != constants.FamilyAutres {
			continue
		}
		if prod.LineNumber > entreesEnd && prod.LineNumber < dessertsStart {
			e.log.Debug("zreport.plats_zone.reclassify",
				"name", prod.Name, "line", prod.LineNumber)
			prod.Family = constants.FamilyPlats
		}
	}
}

// aggregate sums article counts and sales per family. Articles are the
// production entries; category revenue carries the family's sales figure.
func (e *Engine) aggregate(result *entity.ZReportResult) {
	for _, f := range constants.AllFamilies() {
		result.Families[f] = entity.FamilyAggregate{Family: f}
	}

	for _, cat := range result.Categories {
		agg := result.Families[cat.Family]
		agg.TotalSales = round2(agg.TotalSales + cat.TotalPrice)
		agg.Details = append(agg.Details, cat.Name)
		result.Families[cat.Family] = agg
	}
	for _, prod := range result.Productions {
		agg := result.Families[prod.Family]
		agg.ArticleCount++
		agg.Details = append(agg.Details, prod.Name)
		// a production reclassified away from its category's family brings
		// its own revenue along
		if prod.Category == "" || prod.Family != categoryFamily(result, prod.Category) {
			agg.TotalSales = round2(agg.TotalSales + prod.TotalPrice)
		}
		result.Families[prod.Family] = agg
	}
}

func (e *Engine) reconcile(result *entity.ZReportResult) {
	computed := 0.0
	for _, cat := range result.Categories {
		computed += cat.TotalPrice
	}
	result.Reconciliation.ComputedTotal = round2(computed)

	if result.TotalInclTax != nil {
		displayed := *result.TotalInclTax
		delta := round2(computed - displayed)
		result.Reconciliation.DisplayedTotal = &displayed
		result.Reconciliation.Delta = &delta
	}
}

// resolveFamily matches a category name against the family keyword sets;
// first matching set wins, unmatched names default to Autres. Keywords
// match on word boundaries so "eau" never fires inside "gâteau".
func resolveFamily(name string) constants.Family {
	lower := strings.ToLower(name)
	for _, set := range familySets {
		for _, kw := range set.keywords {
			if hasKeyword(lower, kw) {
				return set.family
			}
		}
	}
	return constants.FamilyAutres
}

// hasKeyword reports whether kw occurs in lower bounded by non-letters.
// A keyword may be a prefix of a longer word ("entrée" matches "entrées")
// but never an infix of one.
func hasKeyword(lower, kw string) bool {
	from := 0
	for {
		j := strings.Index(lower[from:], kw)
		if j < 0 {
			return false
		}
		j += from
		if j == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(lower[:j])
		if !unicode.IsLetter(prev) {
			return true
		}
		from = j + len(kw)
	}
}

func containsForbiddenToken(line string) bool {
	lower := strings.ToLower(line)
	for _, tok := range forbiddenTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

func categoryFamily(result *entity.ZReportResult, name string) constants.Family {
	for _, cat := range result.Categories {
		if cat.Name == name {
			return cat.Family
		}
	}
	return constants.FamilyAutres
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
