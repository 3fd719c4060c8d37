package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConstructor() *Constructor {
	return &Constructor{
		Fn:     func(rate float64) float64 { return rate },
		Params: []Param{{Name: "rate"}},
	}
}

func TestCreateCategory(t *testing.T) {
	r := New()
	require.NoError(t, r.CreateCategory("layers"))
	assert.True(t, r.HasCategory("layers"))

	err := r.CreateCategory("layers")
	var dup *DuplicateCategoryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "layers", dup.Category)
}

func TestRegisterAndLookup(t *testing.T) {
	r := New("layers")
	require.NoError(t, r.Register("layers", "Embed.v0", newTestConstructor()))

	c, err := r.Lookup("layers", "Embed.v0")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := New("layers")
	require.NoError(t, r.Register("layers", "Embed.v0", newTestConstructor()))

	err := r.Register("layers", "Embed.v0", newTestConstructor())
	var dup *DuplicateEntryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "layers", dup.Category)
	assert.Equal(t, "Embed.v0", dup.Name)
}

func TestRegisterUnknownCategory(t *testing.T) {
	r := New()
	err := r.Register("layers", "Embed.v0", newTestConstructor())
	var unknown *UnknownCategoryError
	require.ErrorAs(t, err, &unknown)
}

func TestLookupErrors(t *testing.T) {
	r := New("layers")

	_, err := r.Lookup("optimizers", "SGD.v0")
	var unknownCat *UnknownCategoryError
	require.ErrorAs(t, err, &unknownCat)
	assert.Equal(t, "optimizers", unknownCat.Category)

	_, err = r.Lookup("layers", "DoesNotExist.v0")
	var unknownEntry *UnknownEntryError
	require.ErrorAs(t, err, &unknownEntry)
	assert.Equal(t, "layers", unknownEntry.Category)
	assert.Equal(t, "DoesNotExist.v0", unknownEntry.Name)
}

func TestRegisterRejectsBadSignatureEarly(t *testing.T) {
	r := New("layers")
	err := r.Register("layers", "Broken.v0", &Constructor{Fn: 42})
	var sigErr *SignatureIntrospectionError
	require.ErrorAs(t, err, &sigErr)
}

func TestNames(t *testing.T) {
	r := New("layers")
	require.NoError(t, r.Register("layers", "Softmax.v0", newTestConstructor()))
	require.NoError(t, r.Register("layers", "Embed.v0", newTestConstructor()))

	names, err := r.Names("layers")
	require.NoError(t, err)
	assert.Equal(t, []string{"Embed.v0", "Softmax.v0"}, names)
}

type testModule struct {
	category string
	name     string
}

func (m testModule) Register(r *Registry) error {
	return r.Register(m.category, m.name, newTestConstructor())
}

func TestInstall(t *testing.T) {
	r := New("layers")
	require.NoError(t, r.Install(testModule{category: "layers", name: "A.v0"}, testModule{category: "layers", name: "B.v0"}))

	names, err := r.Names("layers")
	require.NoError(t, err)
	assert.Equal(t, []string{"A.v0", "B.v0"}, names)

	err = r.Install(testModule{category: "missing", name: "C.v0"})
	var unknown *UnknownCategoryError
	require.ErrorAs(t, err, &unknown)
}

func TestDefaultRegistryCategories(t *testing.T) {
	for _, category := range []string{"layers", "optimizers", "schedules"} {
		assert.True(t, Default.HasCategory(category), category)
	}
}
