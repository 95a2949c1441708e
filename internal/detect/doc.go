// Package detect is the sensitive information detection engine: an immutable
// registry of per-category pattern specs, matchers that turn text into raw
// candidates, validators that checksum and score them, and an aggregator that
// deduplicates overlaps and assembles per-source reports.
//
// The registry is built once and shared read-only across concurrent scans.
// Matching is shape-only and deliberately loose where OCR noise demands it;
// precision comes from the validators (GB 11643 check digit, Luhn, label
// corroboration in a context window).
package detect
