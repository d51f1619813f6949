// Package collections holds the fixed registry of document collections and the
// routing policy that maps query classifications onto them.
//
// The registry is versioned with the code: adding a collection means editing the
// tables here and the routing table in router.go, and is a reviewed change, not
// runtime configuration.
package collections

// Collection names. Every collection uses the cosine metric and the same
// embedding model at write and read time.
const (
	IBGeneral   = "ib_general"
	IAGuides    = "ia_guides"
	IAExamples  = "ia_examples"
	MarkSchemes = "mark_schemes"
	Syllabus    = "syllabus"
)

// descriptions documents what each collection holds.
var descriptions = map[string]string{
	IBGeneral:   "General IBDP programme information",
	IAGuides:    "Internal Assessment guides by subject",
	IAExamples:  "Example IAs with scores and feedback",
	MarkSchemes: "Mark schemes for past papers",
	Syllabus:    "Subject syllabi and curriculum guides",
}

// docTypeToCollection maps a document type tag to the collection that stores it.
var docTypeToCollection = map[string]string{
	"ia_guide":     IAGuides,
	"ia_example":   IAExamples,
	"mark_scheme":  MarkSchemes,
	"syllabus":     Syllabus,
	"general_info": IBGeneral,
}

// All returns every registered collection name. The returned slice is a copy.
func All() []string {
	return []string{IBGeneral, IAGuides, IAExamples, MarkSchemes, Syllabus}
}

// Exists reports whether name is a registered collection.
func Exists(name string) bool {
	_, ok := descriptions[name]
	return ok
}

// Description returns the human-readable description for a collection.
func Description(name string) (string, bool) {
	desc, ok := descriptions[name]
	return desc, ok
}

// ForDocType returns the collection that stores documents of the given type.
func ForDocType(docType string) (string, bool) {
	name, ok := docTypeToCollection[docType]
	return name, ok
}

// DocTypes returns every registered document type tag.
func DocTypes() []string {
	return []string{"ia_guide", "ia_example", "mark_scheme", "syllabus", "general_info"}
}
