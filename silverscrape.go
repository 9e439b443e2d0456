// Package silverscrape extracts structured product records from the
// Silver.com catalog, reachable either through its SearchSpring search
// API or by walking HTML listing and detail pages. It classifies each
// input URL, selects the matching extraction strategy, follows
// pagination without loops or duplicate work, and reconciles fields
// from the API and the detail-page scrape into one canonical record
// per product, bounded by a run-wide item quota.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// searchspring/, sqlite/).
package silverscrape
