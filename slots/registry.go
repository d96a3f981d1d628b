package slots

import (
	"fmt"
	"strings"
)

// Kind classifies how a slot receives payloads and where its metadata lands.
type Kind int

const (
	// KindSingle accepts exactly one file and writes one course-file column.
	KindSingle Kind = iota
	// KindSingleOrText additionally accepts a raw text field, promoted to a
	// synthetic .txt object.
	KindSingleOrText
	// KindDynamicGroup accepts indexed sub-field uploads (MID-2.QUESTION)
	// targeting a repeatable exam entry.
	KindDynamicGroup
	// KindFinalGroup is the dynamic shape without an index; at most one
	// final-exam entry exists per course file.
	KindFinalGroup
)

// Field names the course-file column a single slot updates. Dispatch over
// these values is always an explicit switch, never constructed at runtime.
type Field string

const (
	FieldFinalGrades   Field = "finalGrades"
	FieldSummaryObe    Field = "summaryObe"
	FieldInsFeedback   Field = "insFeedback"
	FieldCourseOutline Field = "courseOutline"
	FieldAssignment    Field = "assignment"
	FieldLabExperiment Field = "labExperiment"
)

// Group names a dynamic exam group.
type Group string

const (
	GroupMid   Group = "MID"
	GroupQuiz  Group = "QUIZ"
	GroupFinal Group = "FINAL"
)

// Subfield names one of the four artifacts of an exam entry.
type Subfield string

const (
	SubfieldQuestion Subfield = "QUESTION"
	SubfieldHighest  Subfield = "HIGHEST"
	SubfieldAverage  Subfield = "AVERAGE"
	SubfieldMarginal Subfield = "MARGINAL"
)

// Subfields lists every exam artifact; all of them must be present for an
// entry to count as complete.
var Subfields = []Subfield{SubfieldQuestion, SubfieldHighest, SubfieldAverage, SubfieldMarginal}

// Slot is one logical upload destination. Pure configuration: lookup only,
// no side effects.
type Slot struct {
	ID      string
	Kind    Kind
	Field   Field // singles only
	Group   Group // dynamic/final only
	Accept  []string
	MaxSize int64
}

const (
	mb = 1024 * 1024

	pdfMime  = "application/pdf"
	docMime  = "application/msword"
	textMime = "text/plain"
)

var slotsByID = map[string]Slot{
	"FINAL-GRADES": {
		ID:      "FINAL-GRADES",
		Kind:    KindSingle,
		Field:   FieldFinalGrades,
		Accept:  []string{pdfMime, docMime},
		MaxSize: 3 * mb,
	},
	"OBE-SUMMARY": {
		ID:      "OBE-SUMMARY",
		Kind:    KindSingleOrText,
		Field:   FieldSummaryObe,
		Accept:  []string{pdfMime, docMime, textMime},
		MaxSize: 3 * mb,
	},
	"INSTRUCTOR-FEEDBACK": {
		ID:      "INSTRUCTOR-FEEDBACK",
		Kind:    KindSingleOrText,
		Field:   FieldInsFeedback,
		Accept:  []string{pdfMime, docMime, textMime},
		MaxSize: 3 * mb,
	},
	"COURSE-OUTLINE": {
		ID:      "COURSE-OUTLINE",
		Kind:    KindSingle,
		Field:   FieldCourseOutline,
		Accept:  []string{pdfMime, docMime},
		MaxSize: 3 * mb,
	},
	"ASSIGNMENT": {
		ID:      "ASSIGNMENT",
		Kind:    KindSingle,
		Field:   FieldAssignment,
		Accept:  []string{pdfMime, docMime},
		MaxSize: 3 * mb,
	},
	"LAB": {
		ID:      "LAB",
		Kind:    KindSingle,
		Field:   FieldLabExperiment,
		Accept:  []string{pdfMime, docMime},
		MaxSize: 3 * mb,
	},
	"MID-EXAM": {
		ID:      "MID-EXAM",
		Kind:    KindDynamicGroup,
		Group:   GroupMid,
		Accept:  []string{pdfMime, docMime, textMime},
		MaxSize: 5 * mb,
	},
	"QUIZ-EXAM": {
		ID:      "QUIZ-EXAM",
		Kind:    KindDynamicGroup,
		Group:   GroupQuiz,
		Accept:  []string{pdfMime, docMime},
		MaxSize: 3 * mb,
	},
	"FINAL-EXAM": {
		ID:      "FINAL-EXAM",
		Kind:    KindFinalGroup,
		Group:   GroupFinal,
		Accept:  []string{pdfMime, docMime},
		MaxSize: 3 * mb,
	},
}

var slotsByGroup = map[Group]string{
	GroupMid:   "MID-EXAM",
	GroupQuiz:  "QUIZ-EXAM",
	GroupFinal: "FINAL-EXAM",
}

// Lookup resolves a slot by its canonical id. Ids are case-normalized.
func Lookup(id string) (Slot, bool) {
	s, ok := slotsByID[strings.ToUpper(strings.TrimSpace(id))]
	return s, ok
}

// LookupGroup resolves the slot backing a dynamic exam group.
func LookupGroup(g Group) (Slot, bool) {
	id, ok := slotsByGroup[g]
	if !ok {
		return Slot{}, false
	}
	return slotsByID[id], true
}

// Accepts reports whether the slot allows the given content type.
func (s Slot) Accepts(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	for _, allowed := range s.Accept {
		if ct == allowed {
			return true
		}
	}
	return false
}

// AllowsText reports whether a raw text payload may be promoted for this slot.
func (s Slot) AllowsText() bool {
	return s.Kind == KindSingleOrText
}

// Extension derives the stored file extension from the payload content type.
func Extension(contentType string) string {
	if strings.HasPrefix(strings.ToLower(contentType), textMime) {
		return "txt"
	}
	return "pdf"
}

// ObjectKey derives the canonical storage key for a payload routed to this
// slot. The course-file name acts as the folder prefix:
//
//	single:  <name>/<name>.<SLOT>.<ext>
//	dynamic: <name>/<name>.<GROUP>-<index>.<SUBFIELD>.pdf
//	final:   <name>/<name>.FINAL.<SUBFIELD>.pdf
func (s Slot) ObjectKey(courseFileName string, index int, sub Subfield, ext string) string {
	switch s.Kind {
	case KindDynamicGroup:
		return fmt.Sprintf("%s/%s.%s-%d.%s.%s", courseFileName, courseFileName, s.Group, index, sub, ext)
	case KindFinalGroup:
		return fmt.Sprintf("%s/%s.FINAL.%s.%s", courseFileName, courseFileName, sub, ext)
	default:
		return fmt.Sprintf("%s/%s.%s.%s", courseFileName, courseFileName, s.ID, ext)
	}
}

// FolderKey is the zero-byte marker object provisioned at create time.
func FolderKey(courseFileName string) string {
	return courseFileName + "/"
}
