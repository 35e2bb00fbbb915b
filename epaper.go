// Package epaper turns newspaper index pages into ordered lists of
// downloadable editions. It resolves the redirects a newspaper site puts in
// front of its current issue, runs a fixed set of layout heuristics over the
// resolved page and keeps the mapping with the most editions.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmlquery/, sqlite/, rod/).
package epaper
