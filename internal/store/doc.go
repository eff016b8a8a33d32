// Package store defines interfaces for data persistence operations.
// These interfaces abstract the record store and the blob store from the
// service layer, so business rules stay independent of Postgres and of the
// storage backend used for uploaded assets.
package store
