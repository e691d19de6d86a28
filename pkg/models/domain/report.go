package domain

import "fmt"

type ReportID string

const (
	ReportHome              ReportID = "home"
	ReportVolatility        ReportID = "volatility"
	ReportCumulativeReturn  ReportID = "cumulative-return"
	ReportSectorPerformance ReportID = "sector-performance"
	ReportCorrelation       ReportID = "correlation"
	ReportGainersLosers     ReportID = "gainers-losers"
)

// ReportIDs lists the reports in menu order.
var ReportIDs = []ReportID{
	ReportHome,
	ReportVolatility,
	ReportCumulativeReturn,
	ReportSectorPerformance,
	ReportCorrelation,
	ReportGainersLosers,
}

func ParseReportID(s string) (ReportID, error) {
	for _, id := range ReportIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReport, s)
}

// ReportRequest is created per UI interaction. Month only applies to
// gainers-losers; an empty month selects the most recent one.
type ReportRequest struct {
	ID    ReportID
	Month string
}

type BannerLevel string

const (
	BannerWarning BannerLevel = "warning"
	BannerError   BannerLevel = "error"
)

type BannerKind string

const (
	BannerDataUnavailable BannerKind = "DataUnavailable"
	BannerSchemaMismatch  BannerKind = "SchemaMismatch"
	BannerRenderFailure   BannerKind = "RenderFailure"
)

type Banner struct {
	Level   BannerLevel
	Kind    BannerKind
	Message string
}

// Metric is a headline figure shown above a report's table.
type Metric struct {
	Label string
	Value string
	Delta string
}

// TableDisplay is a titled table handed to the renderer as-is.
type TableDisplay struct {
	Title string
	Table ResultTable
}

type ReportState string

const (
	StateResolving ReportState = "resolving"
	StateError     ReportState = "error"
	StateReady     ReportState = "ready"
	StateRendered  ReportState = "rendered"
)

// ReportResult is everything the UI shell needs to draw one report.
type ReportResult struct {
	ID      ReportID
	Title   string
	State   ReportState
	Month   string
	Months  []string
	Tables  []TableDisplay
	Charts  []ChartSpec
	Metrics []Metric
	Banners []Banner
}

func (r *ReportResult) Warn(kind BannerKind, msg string) {
	r.Banners = append(r.Banners, Banner{Level: BannerWarning, Kind: kind, Message: msg})
}

func (r *ReportResult) Fail(kind BannerKind, msg string) {
	r.Banners = append(r.Banners, Banner{Level: BannerError, Kind: kind, Message: msg})
}
