package slots

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCourseFileName(t *testing.T) {
	valid := []string{"2024.1.CSE101-1", "2025.2.EE202-12", "1999.3.MATH101-9"}
	for _, name := range valid {
		assert.True(t, ValidCourseFileName(name), name)
	}

	invalid := []string{
		"",
		"24.1.CSE101-1",
		"2024.12.CSE101-1",
		"2024.1.C101-1",
		"2024.1.CSE101",
		"2024.1.CSE101-123",
		"2024.1.CSE1-1",
		" 2024.1.CSE101-1",
	}
	for _, name := range invalid {
		assert.False(t, ValidCourseFileName(name), name)
	}
}

// buildForm writes a real multipart body and reads it back so the resulting
// FileHeaders behave exactly like gin's.
func buildForm(t *testing.T, build func(w *multipart.Writer)) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	build(w)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form
}

func addFilePart(t *testing.T, w *multipart.Writer, field, filename, contentType string, body []byte) {
	t.Helper()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
}

func TestParseFormSingleFile(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("fileType", "lab"))
		addFilePart(t, w, "file", "lab.pdf", "application/pdf", []byte("%PDF-"))
	})

	tuples, err := ParseForm(form)
	require.NoError(t, err)
	require.Len(t, tuples, 1)

	tup := tuples[0]
	assert.Equal(t, "LAB", tup.Slot.ID)
	assert.False(t, tup.IsText)
	assert.Equal(t, "application/pdf", tup.ContentType())
	assert.Equal(t, int64(5), tup.Size())
	assert.Equal(t, "2024.1.CSE101-1/2024.1.CSE101-1.LAB.pdf", tup.ObjectKey("2024.1.CSE101-1"))
}

func TestParseFormFileWithoutFileType(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		addFilePart(t, w, "file", "lab.pdf", "application/pdf", []byte("%PDF-"))
	})

	_, err := ParseForm(form)
	assert.Error(t, err)
}

func TestParseFormUnknownFileType(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("fileType", "SYLLABUS"))
		addFilePart(t, w, "file", "s.pdf", "application/pdf", []byte("%PDF-"))
	})

	_, err := ParseForm(form)
	assert.Error(t, err)
}

func TestParseFormIndexedField(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		addFilePart(t, w, "MID-2.QUESTION", "q.pdf", "application/pdf", []byte("%PDF-"))
	})

	tuples, err := ParseForm(form)
	require.NoError(t, err)
	require.Len(t, tuples, 1)

	tup := tuples[0]
	assert.Equal(t, "MID-EXAM", tup.Slot.ID)
	assert.Equal(t, 2, tup.Index)
	assert.Equal(t, SubfieldQuestion, tup.Subfield)
	assert.Equal(t, "2024.1.CSE101-1/2024.1.CSE101-1.MID-2.QUESTION.pdf", tup.ObjectKey("2024.1.CSE101-1"))
}

func TestParseFormIndexedFieldZeroIndex(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		addFilePart(t, w, "QUIZ-0.HIGHEST", "h.pdf", "application/pdf", []byte("%PDF-"))
	})

	_, err := ParseForm(form)
	assert.Error(t, err)
}

func TestParseFormFinalField(t *testing.T) {
	for _, field := range []string{"FINAL.AVERAGE", "FINAL-EXAM.AVERAGE"} {
		form := buildForm(t, func(w *multipart.Writer) {
			addFilePart(t, w, field, "a.pdf", "application/pdf", []byte("%PDF-"))
		})

		tuples, err := ParseForm(form)
		require.NoError(t, err, field)
		require.Len(t, tuples, 1, field)

		tup := tuples[0]
		assert.Equal(t, "FINAL-EXAM", tup.Slot.ID)
		assert.Equal(t, SubfieldAverage, tup.Subfield)
		assert.Equal(t, "2024.1.CSE101-1/2024.1.CSE101-1.FINAL.AVERAGE.pdf", tup.ObjectKey("2024.1.CSE101-1"))
	}
}

func TestParseFormTextPromotion(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("fileType", "OBE-SUMMARY"))
		require.NoError(t, w.WriteField("text", "all outcomes met"))
	})

	tuples, err := ParseForm(form)
	require.NoError(t, err)
	require.Len(t, tuples, 1)

	tup := tuples[0]
	assert.True(t, tup.IsText)
	assert.Equal(t, "text/plain", tup.ContentType())
	assert.Equal(t, int64(len("all outcomes met")), tup.Size())
	assert.Equal(t, "2024.1.CSE101-1/2024.1.CSE101-1.OBE-SUMMARY.txt", tup.ObjectKey("2024.1.CSE101-1"))
}

func TestParseFormTextWithoutFileType(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("text", "some text"))
	})

	_, err := ParseForm(form)
	assert.Error(t, err)
}

func TestParseFormIgnoresUnrecognizedFields(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("comment", "please review"))
		addFilePart(t, w, "attachment", "x.pdf", "application/pdf", []byte("%PDF-"))
		addFilePart(t, w, "FINAL.MARGINAL", "m.pdf", "application/pdf", []byte("%PDF-"))
	})

	tuples, err := ParseForm(form)
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, SubfieldMarginal, tuples[0].Subfield)
}

func TestParseFormMixedBatch(t *testing.T) {
	form := buildForm(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("fileType", "FINAL-GRADES"))
		addFilePart(t, w, "file", "grades.pdf", "application/pdf", []byte("%PDF-"))
		addFilePart(t, w, "MID-1.QUESTION", "q1.pdf", "application/pdf", []byte("%PDF-"))
		addFilePart(t, w, "QUIZ-3.MARGINAL", "m3.pdf", "application/pdf", []byte("%PDF-"))
	})

	tuples, err := ParseForm(form)
	require.NoError(t, err)
	assert.Len(t, tuples, 3)

	ids := make(map[string]bool)
	for _, tup := range tuples {
		ids[tup.Slot.ID] = true
	}
	assert.True(t, ids["FINAL-GRADES"])
	assert.True(t, ids["MID-EXAM"])
	assert.True(t, ids["QUIZ-EXAM"])
}
