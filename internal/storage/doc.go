// Package storage holds uploaded files in named buckets.
//
// FileStore is the local implementation of Bucket: objects live under
// <root>/<bucket>/<key> and are published at <public_base_url>/<bucket>/<key>.
// Uploader enforces the size limit and sniffs the content type from the
// bytes, so a client cannot label a script as an image.
package storage
