package entity

import "time"

// Report is the final aggregated output of one analysis run.
type Report struct {
	ReportType string        `json:"report_type"`
	Timestamp  time.Time     `json:"timestamp"`
	Topic      string        `json:"topic,omitempty"`
	Content    ReportContent `json:"content"`
}

type ReportContent struct {
	Summary          string           `json:"summary"`
	DetailedAnalysis DetailedAnalysis `json:"detailed_analysis"`
	Recommendations  []string         `json:"recommendations"`
	Visualizations   []Visualization  `json:"visualizations"`
}

type DetailedAnalysis struct {
	MarketData MarketSnapshot   `json:"market_data"`
	Trends     []Trend          `json:"trends"`
	Sentiment  SentimentSummary `json:"sentiment"`
	// NewsCoverage counts the articles each analyst contributed.
	NewsCoverage NewsCoverage `json:"news_coverage"`
}

type NewsCoverage struct {
	Market int `json:"market"`
	News   int `json:"news"`
}

// Visualization is a structured chart description for downstream
// renderers. The report writer currently emits none but the slot is
// part of the report contract.
type Visualization struct {
	Kind   string         `json:"kind"`
	Title  string         `json:"title"`
	Series map[string]any `json:"series,omitempty"`
}
