package storage

import "io"

// BlobStore holds opaque artifacts. The gateway archives rendered papers
// under "papers/<batchID>.txt" and serves them back verbatim.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
