// Package blob implements store.BlobStore on top of Supabase Storage and on
// top of the local filesystem.
package blob
