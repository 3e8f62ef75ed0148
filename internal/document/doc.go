// Package document stores the documents minted by consuming a generation token and
// the access links that let recipients retrieve them. A link is inert once it has
// expired or used up its view quota; both conditions are recomputed on every
// resolution, and the view counter is advanced with a guarded update so concurrent
// readers never exceed the quota.
package document
