// Package token manages single-use generation tokens: the secrets that authorize
// creating exactly one document. Tokens are issued in batches by staff, checked by
// callers before they fill in a document, and consumed (UNUSED -> USED, terminal)
// by the document package when the document is stored.
package token
