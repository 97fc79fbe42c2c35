// Package companyintel builds short company intelligence reports. It fetches
// a company's landing page and a bounded set of relevant linked pages, sends
// the extracted text to a hosted language model once, and returns the
// model's markdown report with token usage and cost.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package companyintel
