package domain

// FileKind distinguishes the two inbound attachment shapes the platform
// delivers: photos (resolution variants, no filename) and documents
// (filename, declared size).
type FileKind string

const (
	KindPhoto    FileKind = "photo"
	KindDocument FileKind = "document"
)

// IncomingFile describes one user-submitted attachment. It is created from a
// platform event, consumed once by the pipeline, and not retained.
type IncomingFile struct {
	FileID    string
	Extension string
	Size      int64
	Kind      FileKind

	ChatID    int64
	MessageID int
}

// Classification is the scanned/searchable verdict for one PDF request.
// Computed once per request, never cached.
type Classification struct {
	Scanned      bool
	SampledPages int
}
