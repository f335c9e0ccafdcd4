package invoice

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/entity"
)

type detectorKind int

const (
	kindHeader detectorKind = iota
	kindFooter
)

type detector struct {
	kind    detectorKind
	pattern *regexp.Regexp
}

// Ordered detector list: supplier literals, then invoice/delivery-note
// headers, then closing totals. Order matters only for header labeling;
// clustering works on offsets.
var detectors = []detector{
	{kindHeader, regexp.MustCompile(`(?i)\b(METRO|TRANSGOURMET|PROMOCASH|POMONA|SYSCO|BRAKE|DAVIGEL|TERRE\s+AZUR)\b`)},
	{kindHeader, regexp.MustCompile(`(?i)\bFACTURE\s*(?:N\s*[°O0]?\s*)?[:#]?\s*[A-Z0-9-]*`)},
	{kindHeader, regexp.MustCompile(`(?i)\bINVOICE\s*(?:N\s*[°O0]?\s*)?[:#]?\s*[A-Z0-9-]*`)},
	{kindHeader, regexp.MustCompile(`(?i)\bBON\s+DE\s+LIVRAISON\s*(?:N\s*[°O0]?)?`)},
	{kindHeader, regexp.MustCompile(`(?i)\bBL\s*N\s*[°O0]?\s*[A-Z0-9-]+`)},
	{kindFooter, regexp.MustCompile(`(?i)\bNET\s+[ÀA]\s+PAYER\b`)},
	{kindFooter, regexp.MustCompile(`(?i)\bTOTAL\s+TTC\b`)},
	{kindFooter, regexp.MustCompile(`(?i)\bMONTANT\s+TOTAL\b`)},
}

type match struct {
	offset int
	text   string
	kind   detectorKind
}

// SegmenterConfig carries the clustering tunables.
type SegmenterConfig struct {
	ProximityWindow int // max char gap inside one invoice cluster
	Quality         QualityConfig
}

func (c SegmenterConfig) withDefaults() SegmenterConfig {
	if c.ProximityWindow <= 0 {
		c.ProximityWindow = common.DefaultProximityWindow
	}
	return c
}

// Segmenter splits one OCR text blob into candidate invoice segments and
// quality-scores each of them.
type Segmenter struct {
	cfg SegmenterConfig
	log *slog.Logger
}

func NewSegmenter(cfg SegmenterConfig, logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Segmenter{cfg: cfg.withDefaults(), log: logger}
}

// Detect returns the invoice segments of text in ascending offset order,
// each carrying its quality verdict. A text with fewer than two detector
// matches is one single segment spanning the whole document.
func (s *Segmenter) Detect(text string) []entity.InvoiceSegment {
	matches := collectMatches(text)
	s.log.Debug("invoice.segment.matches", "count", len(matches))

	if len(matches) < 2 {
		seg := entity.InvoiceSegment{
			Index:       0,
			HeaderLabel: headerLabel(matches),
			Text:        text,
			StartOffset: 0,
			EndOffset:   len(text),
		}
		seg.Quality = CheckQuality(seg.Text, s.cfg.Quality)
		return []entity.InvoiceSegment{seg}
	}

	// proximity clustering: a gap wider than the window starts a new invoice
	var clusters [][]match
	current := []match{matches[0]}
	for _, m := range matches[1:] {
		if m.offset-current[len(current)-1].offset > s.cfg.ProximityWindow {
			clusters = append(clusters, current)
			current = []match{m}
			continue
		}
		current = append(current, m)
	}
	clusters = append(clusters, current)

	segments := make([]entity.InvoiceSegment, 0, len(clusters))
	for i, cluster := range clusters {
		start := cluster[0].offset
		end := len(text)
		if i+1 < len(clusters) {
			end = clusters[i+1][0].offset
		}
		seg := entity.InvoiceSegment{
			Index:       i,
			HeaderLabel: headerLabel(cluster),
			Text:        text[start:end],
			StartOffset: start,
			EndOffset:   end,
		}
		seg.Quality = CheckQuality(seg.Text, s.cfg.Quality)
		segments = append(segments, seg)
	}

	s.log.Info("invoice.segment.done", "segments", len(segments))
	return segments
}

func collectMatches(text string) []match {
	var out []match
	for _, d := range detectors {
		for _, loc := range d.pattern.FindAllStringIndex(text, -1) {
			out = append(out, match{
				offset: loc[0],
				text:   text[loc[0]:loc[1]],
				kind:   d.kind,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].offset < out[j].offset })
	return out
}

// headerLabel picks the first header-kind match of a cluster, falling back
// to the first match of any kind.
func headerLabel(cluster []match) string {
	for _, m := range cluster {
		if m.kind == kindHeader {
			return m.text
		}
	}
	if len(cluster) > 0 {
		return cluster[0].text
	}
	return ""
}
