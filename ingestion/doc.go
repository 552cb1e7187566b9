// Package ingestion manages the write path for the resource library.
//
// A Pipeline validates and persists resources synchronously, then enriches
// them in the background: attachment text extraction and model-driven tag
// suggestion both run on worker pools, and their failures are logged rather
// than surfaced. The searchable corpus therefore grows over time without the
// caller waiting on a PDF parse or a model round trip.
package ingestion
