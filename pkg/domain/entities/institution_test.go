package entities

import (
	"testing"
)

func TestNewInstitution_Validation(t *testing.T) {
	institution, err := NewInstitution("INST-1", "Central School", HighSchool, "Pune", 800)
	if err != nil {
		t.Fatalf("Expected valid institution creation to succeed: %v", err)
	}
	if institution.Type.String() != "High School" {
		t.Errorf("Expected type High School, got %s", institution.Type)
	}

	testCases := []struct {
		name     string
		id       string
		instName string
		students int
	}{
		{"empty id", "", "School", 10},
		{"empty name", "INST-1", "", 10},
		{"negative students", "INST-1", "School", -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewInstitution(tc.id, tc.instName, Library, "X", tc.students); err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
		})
	}
}

func TestInstitution_SubmitAndPendingOrPartial(t *testing.T) {
	institution, err := NewInstitution("INST-1", "Central School", HighSchool, "Pune", 800)
	if err != nil {
		t.Fatal(err)
	}

	first, err := institution.Submit(testISBN, 100, High)
	if err != nil {
		t.Fatalf("Expected submit to succeed: %v", err)
	}
	second, err := institution.Submit(testISBN, 50, Low)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := institution.Submit(testISBN, 0, Low); err == nil {
		t.Error("Expected submit with zero quantity to fail")
	}

	open := institution.PendingOrPartial()
	if len(open) != 2 {
		t.Fatalf("Expected 2 open requests, got %d", len(open))
	}
	// Submission order is preserved
	if open[0].ID != first.ID || open[1].ID != second.ID {
		t.Error("Expected open requests in submission order")
	}

	first.FulfillPartial(100)
	open = institution.PendingOrPartial()
	if len(open) != 1 || open[0].ID != second.ID {
		t.Errorf("Expected only the unfulfilled request to remain open, got %d", len(open))
	}
	if len(institution.Requests()) != 2 {
		t.Error("Fulfilled requests must remain on the institution for audit")
	}
}

func TestInstitution_Receive(t *testing.T) {
	institution, err := NewInstitution("INST-1", "Central School", HighSchool, "Pune", 800)
	if err != nil {
		t.Fatal(err)
	}

	institution.Receive(testISBN, 30)
	institution.Receive(testISBN, 20)
	institution.Receive(testISBN, 0) // no-op

	if got := institution.ReceivedQuantity(testISBN); got != 50 {
		t.Errorf("Expected received 50, got %d", got)
	}
	if got := institution.TotalReceived(); got != 50 {
		t.Errorf("Expected total received 50, got %d", got)
	}
	if got := institution.ReceivedQuantity("unknown"); got != 0 {
		t.Errorf("Expected 0 for unknown ISBN, got %d", got)
	}
}
