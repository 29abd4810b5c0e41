package pdftext

// Extractor pulls plain text out of an uploaded document. Implementations
// never interpret the content; structuring is a separate step.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}
