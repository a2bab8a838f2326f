// Package docsmaker provides a local documentation crawler and semantic
// search tool. It crawls documentation sites, restructures pages into a
// section hierarchy, embeds sections into vector space, and answers
// free-text queries by cosine similarity over the embedded corpus.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, fs/, gemini/).
package docsmaker
