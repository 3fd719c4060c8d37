package confhcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/TheVinhLuong102/thinc/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const nativeSource = `
model = {
  "@layers" = "Embed.v0"
  nO        = 300
  nV        = 10000
}

training = {
  n_iter  = 10
  dropout = 0.2
}
`

const jsonSource = `{
  "model": {
    "@layers": "Embed.v0",
    "nO": 300,
    "nV": 10000
  }
}`

func TestParseNativeSyntax(t *testing.T) {
	node, err := Parse(context.Background(), []byte(nativeSource), "config.hcl")
	require.NoError(t, err)

	require.Equal(t, conf.KindMapping, node.Kind())
	assert.Equal(t, []string{"model", "training"}, node.Keys())

	model := node.Child("model")
	require.NotNil(t, model)
	assert.True(t, model.IsPromise())
	assert.Equal(t, "layers", model.Category())
	assert.Equal(t, "Embed.v0", model.Name())
	assert.True(t, cty.NumberIntVal(300).RawEquals(model.Child("nO").Value()))

	training := node.Child("training")
	require.NotNil(t, training)
	assert.Equal(t, conf.KindMapping, training.Kind())
	assert.True(t, cty.NumberFloatVal(0.2).RawEquals(training.Child("dropout").Value()))
}

func TestParseJSONSyntax(t *testing.T) {
	node, err := Parse(context.Background(), []byte(jsonSource), "config.json")
	require.NoError(t, err)

	model := node.Child("model")
	require.NotNil(t, model)
	assert.True(t, model.IsPromise())
	assert.Equal(t, "Embed.v0", model.Name())
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte("model = {"), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.hcl")
}

func TestParseMalformedPromise(t *testing.T) {
	src := `
model = {
  "@layers"     = "Embed.v0"
  "@optimizers" = "Adam.v0"
}
`
	_, err := Parse(context.Background(), []byte(src), "config.hcl")
	var malformed *conf.MalformedPromiseError
	require.ErrorAs(t, err, &malformed)
}

func TestParseEmptySource(t *testing.T) {
	node, err := Parse(context.Background(), nil, "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, conf.KindMapping, node.Kind())
	assert.Equal(t, 0, node.Len())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(nativeSource), 0o644))

	node, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, node.Child("model"))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
}

func TestLoadDirMergesSections(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
model = {
  "@layers" = "Softmax.v0"
  nO        = 2
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{
  "training": {"n_iter": 10}
}`), 0o644))

	node, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"model", "training"}, node.Keys())
}

func TestLoadDirLaterFileOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01-base.hcl"), []byte(`
training = {
  n_iter = 10
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02-override.hcl"), []byte(`
training = {
  n_iter = 20
}
`), 0o644))

	node, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	got := node.Child("training").Child("n_iter").Value()
	assert.True(t, cty.NumberIntVal(20).RawEquals(got))
}

func TestLoadDirEmpty(t *testing.T) {
	node, err := LoadDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, node.Len())
}
