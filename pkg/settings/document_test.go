package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-tagstore/pkg/storage"
	"github.com/mattsolo1/grove-tagstore/pkg/tag"
	"github.com/mattsolo1/grove-tagstore/pkg/transport"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

func sampleDocument() *Document {
	doc := New()
	doc.Set(tag.Generate("Level"), value.Int(7))
	doc.Set(tag.Generate("Speed"), value.Float(1.5))
	doc.Set(tag.Generate("Scale"), value.Float(2))
	doc.Set(tag.Generate("Name"), value.String("Fire Mage"))
	doc.Set(tag.Generate("Enabled"), value.Bool(true))
	doc.Set(tag.Generate("Cleared"), value.Null())
	doc.Set(tag.Generate("Schools"), value.List(value.String("fire"), value.String("ice")))
	doc.Set(tag.Generate("Window"), value.MapOf(value.Map{
		tag.Generate("Width"):  value.Int(800),
		tag.Generate("Height"): value.Int(600),
		tag.Generate("Docked"): value.MapOf(nil),
		tag.Generate("Panels"): value.List(value.MapOf(value.Map{
			tag.Generate("Title"): value.String("Inspector"),
		})),
	}))
	return doc
}

func TestRoundTripIdentity(t *testing.T) {
	for _, key := range []string{"settings.json", "config/settings.yaml"} {
		t.Run(key, func(t *testing.T) {
			store := storage.NewFSStore(afero.NewMemMapFs(), "/data")
			doc := sampleDocument()

			require.NoError(t, doc.Save(store, key))

			loaded, err := Load(store, key)
			require.NoError(t, err)
			assert.Equal(t, doc.Len(), loaded.Len())
			assert.True(t, doc.Equal(loaded))
		})
	}
}

func TestRoundTripSQLite(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "documents.db"))
	require.NoError(t, err)
	defer store.Close()

	doc := sampleDocument()
	require.NoError(t, doc.Save(store, "settings.json"))

	loaded, err := Load(store, "settings.json")
	require.NoError(t, err)
	assert.True(t, doc.Equal(loaded))
}

func TestCategoryValuesSurviveSave(t *testing.T) {
	store := storage.NewFSStore(afero.NewMemMapFs(), "/data")
	doc := New()
	costs := value.NewScalarCategories(map[value.Category]int64{value.CategoryCost: 10, value.CategoryCooldown: 3})
	doc.Set(tag.Generate("Costs"), value.Categories(costs))

	require.NoError(t, doc.Save(store, "settings.json"))
	loaded, err := Load(store, "settings.json")
	require.NoError(t, err)

	got, ok := TryGet(loaded, tag.Generate("Costs"), value.CategoryMap{})
	require.True(t, ok)
	assert.True(t, costs.Equal(got))
}

func TestLoadMissing(t *testing.T) {
	store := storage.NewFSStore(afero.NewMemMapFs(), "/data")

	doc, err := Load(store, "does/not/exist.json")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Zero(t, doc.Len())
}

func TestLoadMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/settings.json", []byte(`{"Level": `), 0644))
	store := storage.NewFSStore(fs, "/data")

	_, err := Load(store, "settings.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrSyntax)
}

func TestLoadNotObject(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/settings.json", []byte(`[1, 2]`), 0644))
	store := storage.NewFSStore(fs, "/data")

	_, err := Load(store, "settings.json")
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestLoadOrEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/settings.json", []byte(`not json`), 0644))
	store := storage.NewFSStore(fs, "/data")

	logger, hook := test.NewNullLogger()
	doc := LoadOrEmpty(store, "settings.json", logger)

	require.NotNil(t, doc)
	assert.Zero(t, doc.Len())
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "settings.json", hook.LastEntry().Data["key"])
}

func TestReadNormalizesKeys(t *testing.T) {
	doc, err := Read(strings.NewReader(`{" Health ": 100, "": 1}`), transport.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, int64(100), Get(doc, tag.Generate("Health"), int64(0)))
	assert.Equal(t, int64(1), Get(doc, tag.Unnamed, int64(0)))
}

func TestSetOverwrites(t *testing.T) {
	doc := New()
	key := tag.Generate("Window")
	doc.Set(key, value.MapOf(value.Map{tag.Generate("Width"): value.Int(1)}))
	doc.Set(key, value.String("closed"))

	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, "closed", Get(doc, key, ""))
	assert.Equal(t, value.Map(nil), Get[value.Map](doc, key, nil))
}

func TestZeroDocumentSet(t *testing.T) {
	var doc Document
	doc.Set(tag.Generate("a"), value.Int(1))
	assert.Equal(t, 1, doc.Len())
}

func TestWriteIsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, sampleDocument().Write(&first, transport.FormatJSON))
	require.NoError(t, sampleDocument().Write(&second, transport.FormatJSON))
	assert.Equal(t, first.String(), second.String())
}

func TestSaveEncodingFailureKeepsExistingDocument(t *testing.T) {
	for _, key := range []string{"settings.json", "settings.yaml"} {
		t.Run(key, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			store := storage.NewFSStore(fs, "/data")
			require.NoError(t, sampleDocument().Save(store, key))

			bad := New()
			bad.Set(tag.Generate("Ratio"), value.Float(nanValue()))
			require.Error(t, bad.Save(store, key))

			loaded, err := Load(store, key)
			require.NoError(t, err)
			assert.True(t, sampleDocument().Equal(loaded))
		})
	}
}
