package slots

import (
	"fmt"
	"mime/multipart"
	"regexp"
	"strconv"
	"strings"
)

// Tuple is one (slot, payload) pair extracted from a multipart request.
type Tuple struct {
	FieldName string
	Slot      Slot
	Index     int // 1-based, dynamic groups only
	Subfield  Subfield
	IsText    bool
	Text      string
	File      *multipart.FileHeader
}

// CourseFileNamePattern is the required shape of a course-file name,
// e.g. 2024.1.CSE101-1 (YYYY.S.CODE-SECTION).
var CourseFileNamePattern = regexp.MustCompile(`^\d{4}\.\d\.[A-Za-z]{2,6}\d{3}-\d{1,2}$`)

// ValidCourseFileName reports whether name matches YYYY.S.CODE-SECTION.
func ValidCourseFileName(name string) bool {
	return CourseFileNamePattern.MatchString(name)
}

var (
	indexedFieldPattern = regexp.MustCompile(`^(MID|QUIZ)-(\d+)\.(QUESTION|HIGHEST|AVERAGE|MARGINAL)$`)
	finalFieldPattern   = regexp.MustCompile(`^FINAL(?:-EXAM)?\.(QUESTION|HIGHEST|AVERAGE|MARGINAL)$`)
)

// ParseForm walks every field of a multipart form and extracts the tuples the
// registry recognizes. Three shapes are accepted through the one entry point:
//
//	file=<bytes>, fileType=<SLOT>          a single slot
//	text=<string>, fileType=<SLOT>         raw text promoted to a .txt object
//	<GROUP>-<n>.<SUBFIELD>=<bytes>         one artifact of a dynamic entry
//	FINAL.<SUBFIELD>=<bytes>               one artifact of the final exam
//
// Unrecognized fields are ignored so unrelated form values can ride along.
// A `file` or `text` field without a known fileType tag is a caller error.
func ParseForm(form *multipart.Form) ([]Tuple, error) {
	if form == nil {
		return nil, fmt.Errorf("empty multipart form")
	}

	fileType := ""
	if vals := form.Value["fileType"]; len(vals) > 0 {
		fileType = strings.ToUpper(strings.TrimSpace(vals[0]))
	}

	var tuples []Tuple

	for name, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		normalized := strings.ToUpper(strings.TrimSpace(name))

		switch {
		case normalized == "FILE":
			if fileType == "" {
				return nil, fmt.Errorf("fileType is required for a file upload")
			}
			slot, ok := Lookup(fileType)
			if !ok {
				return nil, fmt.Errorf("unknown fileType %q", fileType)
			}
			tuples = append(tuples, Tuple{FieldName: name, Slot: slot, File: header})

		case indexedFieldPattern.MatchString(normalized):
			m := indexedFieldPattern.FindStringSubmatch(normalized)
			index, err := strconv.Atoi(m[2])
			if err != nil || index < 1 {
				return nil, fmt.Errorf("invalid index in field %q", name)
			}
			slot, _ := LookupGroup(Group(m[1]))
			tuples = append(tuples, Tuple{
				FieldName: name,
				Slot:      slot,
				Index:     index,
				Subfield:  Subfield(m[3]),
				File:      header,
			})

		case finalFieldPattern.MatchString(normalized):
			m := finalFieldPattern.FindStringSubmatch(normalized)
			slot, _ := LookupGroup(GroupFinal)
			tuples = append(tuples, Tuple{
				FieldName: name,
				Slot:      slot,
				Subfield:  Subfield(m[1]),
				File:      header,
			})
		}
		// anything else: not a registry field, skip
	}

	if vals := form.Value["text"]; len(vals) > 0 && strings.TrimSpace(vals[0]) != "" {
		if fileType == "" {
			return nil, fmt.Errorf("fileType is required for a text upload")
		}
		slot, ok := Lookup(fileType)
		if !ok {
			return nil, fmt.Errorf("unknown fileType %q", fileType)
		}
		tuples = append(tuples, Tuple{
			FieldName: "text",
			Slot:      slot,
			IsText:    true,
			Text:      vals[0],
		})
	}

	return tuples, nil
}

// ContentType extracts the declared content type of a tuple's payload.
// Promoted text is always text/plain.
func (t Tuple) ContentType() string {
	if t.IsText {
		return textMime
	}
	ct := t.File.Header.Get("Content-Type")
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// Size returns the payload size in bytes.
func (t Tuple) Size() int64 {
	if t.IsText {
		return int64(len(t.Text))
	}
	return t.File.Size
}

// ObjectKey derives the storage key for this tuple.
func (t Tuple) ObjectKey(courseFileName string) string {
	return t.Slot.ObjectKey(courseFileName, t.Index, t.Subfield, Extension(t.ContentType()))
}
