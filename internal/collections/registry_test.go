package collections

import "testing"

func TestAllContainsEveryCollection(t *testing.T) {
	want := []string{IBGeneral, IAGuides, IAExamples, MarkSchemes, Syllabus}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("All() returned %d collections, want %d", len(all), len(want))
	}
	for _, name := range want {
		if !Exists(name) {
			t.Errorf("Exists(%q) = false, want true", name)
		}
		if _, ok := Description(name); !ok {
			t.Errorf("Description(%q) missing", name)
		}
	}
}

func TestExistsRejectsUnknown(t *testing.T) {
	if Exists("not_a_collection") {
		t.Error("Exists accepted an unregistered collection name")
	}
}

func TestForDocType(t *testing.T) {
	tests := []struct {
		docType string
		want    string
		ok      bool
	}{
		{"ia_guide", IAGuides, true},
		{"ia_example", IAExamples, true},
		{"mark_scheme", MarkSchemes, true},
		{"syllabus", Syllabus, true},
		{"general_info", IBGeneral, true},
		{"unknown", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ForDocType(tt.docType)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ForDocType(%q) = (%q, %v), want (%q, %v)", tt.docType, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDocTypesRoundTrip(t *testing.T) {
	for _, dt := range DocTypes() {
		if _, ok := ForDocType(dt); !ok {
			t.Errorf("DocTypes() listed %q but ForDocType rejects it", dt)
		}
	}
}
