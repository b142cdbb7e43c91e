package models

import "testing"

func TestDestinationCountryRoundTrip(t *testing.T) {
	var client Client

	client.SetDestinationCountries([]string{"Germany", " Canada ", ""})
	got := client.DestinationCountryList()

	if len(got) != 2 || got[0] != "Germany" || got[1] != "Canada" {
		t.Fatalf("unexpected country list: %v", got)
	}
}

func TestDestinationCountryListToleratesBadColumn(t *testing.T) {
	raw := "not json"
	client := Client{DestinationCountries: &raw}

	if got := client.DestinationCountryList(); len(got) != 0 {
		t.Fatalf("expected empty list for malformed column, got %v", got)
	}

	empty := Client{}
	if got := empty.DestinationCountryList(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list for nil column, got %v", got)
	}
}

func TestDocumentMapKeysByType(t *testing.T) {
	docs := []ClientDocument{
		{DocumentID: 1, DocumentType: DocumentTypePassport, OriginalFilename: "passport.pdf", FileURL: "/api/v1/documents/download/1", FileSize: 100, MimeType: "application/pdf"},
		{DocumentID: 2, DocumentType: DocumentTypeCV, OriginalFilename: "cv.pdf", FileURL: "/api/v1/documents/download/2", FileSize: 200, MimeType: "application/pdf"},
	}

	m := DocumentMap(docs)

	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m))
	}
	passport, ok := m[DocumentTypePassport]
	if !ok || passport.FileID != 1 || passport.Name != "passport.pdf" {
		t.Fatalf("unexpected passport entry: %+v", passport)
	}
}
