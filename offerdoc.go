// Package offerdoc provides a local, CLI-based editor for HTML offer
// templates stored in a remote content-management API. Templates are pulled
// into a local workspace as drafts, edited structurally and textually, pushed
// back in batch, and rendered to PDF.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, wkhtmltopdf/).
package offerdoc
