package domain

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryMedia, CategoryOf(ItemTypeImage))
	assert.Equal(t, CategoryMedia, CategoryOf(ItemTypeVideo))
	assert.Equal(t, CategoryMedia, CategoryOf(ItemTypeVoice))
	assert.Equal(t, CategoryNotes, CategoryOf(ItemTypeNote))
	assert.Equal(t, CategoryLinks, CategoryOf(ItemTypeLink))
}

// Category is Media exactly for binary types
func TestProperty_CategoryMatchesBinary(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	typeGen := gen.OneConstOf(ItemTypeImage, ItemTypeVideo, ItemTypeVoice, ItemTypeNote, ItemTypeLink)

	properties.Property("media iff binary", prop.ForAll(
		func(t ItemType) bool {
			return (CategoryOf(t) == CategoryMedia) == t.IsBinary()
		},
		typeGen,
	))

	properties.Property("binary and text are exclusive", prop.ForAll(
		func(t ItemType) bool {
			return t.IsBinary() != t.IsText()
		},
		typeGen,
	))

	properties.TestingRun(t)
}

func TestParseItemType(t *testing.T) {
	it, ok := ParseItemType("voice")
	assert.True(t, ok)
	assert.Equal(t, ItemTypeVoice, it)

	_, ok = ParseItemType("")
	assert.False(t, ok)
	_, ok = ParseItemType("Image")
	assert.False(t, ok)
	_, ok = ParseItemType("document")
	assert.False(t, ok)
}

func TestOwner(t *testing.T) {
	assert.True(t, Public.IsPublic())
	assert.True(t, Owned("").IsPublic())

	id, ok := Owned("u1").ID()
	assert.True(t, ok)
	assert.Equal(t, "u1", id)

	b, _ := json.Marshal(Public)
	assert.Equal(t, "null", string(b))
	b, _ = json.Marshal(Owned("u1"))
	assert.Equal(t, `"u1"`, string(b))
}

func TestVaultItem_VisibleTo(t *testing.T) {
	public := &VaultItem{Owner: Public}
	mine := &VaultItem{Owner: Owned("u1")}

	assert.True(t, public.VisibleTo(Public))
	assert.True(t, public.VisibleTo(Owned("u2")))
	assert.True(t, mine.VisibleTo(Owned("u1")))
	assert.False(t, mine.VisibleTo(Owned("u2")))
	assert.False(t, mine.VisibleTo(Public))
}

func TestListFilter_Matches(t *testing.T) {
	item := &VaultItem{Type: ItemTypeNote, Category: CategoryNotes}
	note, link := ItemTypeNote, ItemTypeLink
	notes, media := CategoryNotes, CategoryMedia

	assert.True(t, ListFilter{}.Matches(item))
	assert.True(t, ListFilter{Type: &note}.Matches(item))
	assert.False(t, ListFilter{Type: &link}.Matches(item))
	assert.True(t, ListFilter{Type: &note, Category: &notes}.Matches(item))
	assert.False(t, ListFilter{Type: &note, Category: &media}.Matches(item))
}
