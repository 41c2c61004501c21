// Package parser builds a core.Document from an SCXML byte stream.
//
// Parse is a SAX-style consumer over encoding/xml.Decoder: it never
// materializes a DOM, tracking only the open-element stack needed to
// attach children, transitions, and datamodel items to the right
// state as it goes. Unknown elements and attributes are tolerated and
// skipped rather than rejected, since this package's job is to
// recover structure, not to enforce the full SCXML schema; that's
// Validate's job once a Document exists.
package parser
