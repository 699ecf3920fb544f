package data

type Status string

const (
	StatusWritten     Status = "written"
	StatusSkippedLoad Status = "skipped_load"
	StatusSkippedOCR  Status = "skipped_ocr"
)

// ManifestEntry is one row of the run manifest CSV.
type ManifestEntry struct {
	RunID          string
	Image          string
	JSON           string
	DocumentType   DocumentType
	DocumentNumber string
	NumberKind     string
	Status         Status
}

func MapCSVRecord(item ManifestEntry) []string {
	return []string{
		item.RunID,
		item.Image,
		item.JSON,
		string(item.DocumentType),
		item.DocumentNumber,
		item.NumberKind,
		string(item.Status),
	}
}

func GetCSVHeader() []string {
	return []string{"run_id", "image", "json", "document_type", "document_number", "number_kind", "status"}
}
