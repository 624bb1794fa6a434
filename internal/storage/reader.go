package storage

// Reader gives non-transactional access for list and detail reads.
type Reader struct {
	Tables
}

func NewReader(tables Tables) *Reader {
	return &Reader{Tables: tables}
}
