package data

type DocumentType string

const (
	Aadhaar        DocumentType = "Aadhaar"
	PAN            DocumentType = "PAN"
	Passport       DocumentType = "Passport"
	DrivingLicense DocumentType = "Driving License"
	Unknown        DocumentType = "Unknown"
)

// Record is the per-image annotation. Field order is the JSON key order and
// no key is ever omitted.
type Record struct {
	DocumentType   DocumentType `json:"document_type"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	DateOfBirth    *string      `json:"date_of_birth"`
	Gender         *string      `json:"gender"`
	DocumentNumber *string      `json:"document_number"`
	Address        *string      `json:"address"`
}

// Fields holds what the extractor pulled out of one OCR text.
type Fields struct {
	FirstName      string
	LastName       string
	DateOfBirth    *string
	Gender         *string
	DocumentNumber *string
	// NumberKind is the label of the rule that produced DocumentNumber.
	NumberKind string
}

func (f Fields) Record(docType DocumentType) Record {
	return Record{
		DocumentType:   docType,
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		DateOfBirth:    f.DateOfBirth,
		Gender:         f.Gender,
		DocumentNumber: f.DocumentNumber,
		Address:        nil,
	}
}

// Found lists the names of the non-empty fields, in record order.
func (f Fields) Found() []string {
	var found []string
	if f.FirstName != "" {
		found = append(found, "first_name")
	}
	if f.LastName != "" {
		found = append(found, "last_name")
	}
	if f.DateOfBirth != nil {
		found = append(found, "date_of_birth")
	}
	if f.Gender != nil {
		found = append(found, "gender")
	}
	if f.DocumentNumber != nil {
		found = append(found, "document_number")
	}
	return found
}
