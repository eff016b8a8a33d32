// Package domain contains the entities of the service: equipment with its
// attached reference assets, and the video generation tasks requested for
// it. It has no dependencies on storage or transport.
package domain
