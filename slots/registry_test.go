package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNormalizesID(t *testing.T) {
	for _, id := range []string{"LAB", "lab", "  Lab  "} {
		slot, ok := Lookup(id)
		require.True(t, ok, "id %q", id)
		assert.Equal(t, "LAB", slot.ID)
	}

	_, ok := Lookup("NO-SUCH-SLOT")
	assert.False(t, ok)
}

func TestLookupGroup(t *testing.T) {
	slot, ok := LookupGroup(GroupMid)
	require.True(t, ok)
	assert.Equal(t, "MID-EXAM", slot.ID)
	assert.Equal(t, KindDynamicGroup, slot.Kind)

	slot, ok = LookupGroup(GroupFinal)
	require.True(t, ok)
	assert.Equal(t, KindFinalGroup, slot.Kind)

	_, ok = LookupGroup(Group("WEEKLY"))
	assert.False(t, ok)
}

func TestAccepts(t *testing.T) {
	lab, _ := Lookup("LAB")

	assert.True(t, lab.Accepts("application/pdf"))
	assert.True(t, lab.Accepts("Application/PDF"))
	assert.True(t, lab.Accepts("application/pdf; charset=binary"))
	assert.False(t, lab.Accepts("text/plain"))
	assert.False(t, lab.Accepts("image/png"))
}

func TestAllowsText(t *testing.T) {
	obe, _ := Lookup("OBE-SUMMARY")
	feedback, _ := Lookup("INSTRUCTOR-FEEDBACK")
	lab, _ := Lookup("LAB")

	assert.True(t, obe.AllowsText())
	assert.True(t, feedback.AllowsText())
	assert.False(t, lab.AllowsText())
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "txt", Extension("text/plain"))
	assert.Equal(t, "txt", Extension("text/plain; charset=utf-8"))
	assert.Equal(t, "pdf", Extension("application/pdf"))
	assert.Equal(t, "pdf", Extension("application/msword"))
}

func TestObjectKey(t *testing.T) {
	const name = "2024.1.CSE101-1"

	lab, _ := Lookup("LAB")
	assert.Equal(t, "2024.1.CSE101-1/2024.1.CSE101-1.LAB.pdf", lab.ObjectKey(name, 0, "", "pdf"))

	obe, _ := Lookup("OBE-SUMMARY")
	assert.Equal(t, "2024.1.CSE101-1/2024.1.CSE101-1.OBE-SUMMARY.txt", obe.ObjectKey(name, 0, "", "txt"))

	mid, _ := LookupGroup(GroupMid)
	assert.Equal(t, "2024.1.CSE101-1/2024.1.CSE101-1.MID-2.QUESTION.pdf", mid.ObjectKey(name, 2, SubfieldQuestion, "pdf"))

	final, _ := LookupGroup(GroupFinal)
	assert.Equal(t, "2024.1.CSE101-1/2024.1.CSE101-1.FINAL.AVERAGE.pdf", final.ObjectKey(name, 0, SubfieldAverage, "pdf"))
}

func TestFolderKey(t *testing.T) {
	assert.Equal(t, "2024.1.CSE101-1/", FolderKey("2024.1.CSE101-1"))
}
