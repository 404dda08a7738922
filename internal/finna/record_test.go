package finna

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecord(t *testing.T, body string) *Record {
	t.Helper()
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(body), &rec))
	return &rec
}

func TestRecordUnmarshalTypedFields(t *testing.T) {
	rec := decodeRecord(t, `{
		"id": "helmet.1234",
		"title": "Kissojen kirja",
		"formats": [{"value": "0/Book/", "translated": "Kirja"}, {"value": "1/Book/Book/", "translated": "Kirja"}],
		"buildings": [{"value": "0/Helmet/", "translated": "Helmet"}, {"value": "1/Helmet/h00/", "translated": "Pasila"}],
		"year": "2019",
		"summary": ["first", "second"],
		"description": "about cats",
		"primaryAuthors": ["Meikäläinen, Matti"],
		"nonPresenterAuthors": [{"name": "Virtanen, Ville", "role": "kuvittaja"}],
		"images": ["/Cover/Show?id=helmet.1234&index=0&size=large"],
		"urls": [{"url": "https://example.org"}]
	}`)

	assert.Equal(t, "helmet.1234", rec.ID)
	assert.Equal(t, "Kissojen kirja", rec.Title)
	assert.Len(t, rec.Formats, 2)
	assert.Equal(t, "2019", rec.Year)
	assert.Equal(t, []string{"first", "second"}, rec.Summary)
	assert.Equal(t, "about cats", rec.Description)
	assert.Equal(t, []string{"Meikäläinen, Matti"}, rec.PrimaryAuthors)
	assert.Equal(t, []Author{{Name: "Virtanen, Ville", Role: "kuvittaja"}}, rec.SecondaryAuthors)
	assert.Len(t, rec.Images, 1)

	_, ok := rec.Extra("urls")
	assert.True(t, ok, "unknown members go to the side table")
	_, ok = rec.Extra("title")
	assert.False(t, ok, "typed members are not duplicated in the side table")
}

func TestRecordUnmarshalToleratesWrongShapes(t *testing.T) {
	rec := decodeRecord(t, `{"title": 42, "formats": "Book", "year": 1999, "images": {"a": 1}}`)

	assert.Empty(t, rec.ID, "missing id marks a partial record")
	assert.Empty(t, rec.Title)
	assert.Empty(t, rec.Formats)
	assert.Empty(t, rec.Year)
	assert.Empty(t, rec.Images)
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	var rec Record
	assert.Error(t, json.Unmarshal([]byte(`["not", "a", "record"]`), &rec))
}

func TestCanonicalFormat(t *testing.T) {
	tests := []struct {
		name      string
		formats   []TranslatedString
		wantLabel string
		wantCode  string
	}{
		{"empty", nil, "?", "?"},
		{"single", []TranslatedString{{Value: "0/Book/", Translated: "Kirja"}}, "Kirja", "0/Book/"},
		{"last wins", []TranslatedString{
			{Value: "0/Sound/", Translated: "Äänite"},
			{Value: "1/Sound/CD/", Translated: "CD"},
		}, "CD", "1/Sound/CD/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Record{Formats: tt.formats}
			label, code := rec.CanonicalFormat()
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestCanonicalBuilding(t *testing.T) {
	assert.Equal(t, "", (&Record{}).CanonicalBuilding())

	rec := &Record{Buildings: []TranslatedString{
		{Value: "0/Helmet/", Translated: "Helmet"},
		{Value: "1/Helmet/h00/", Translated: "Pasila"},
	}}
	assert.Equal(t, "Helmet", rec.CanonicalBuilding(), "first building wins")
}

func TestDisplayAuthorsPrecedence(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
		want []string
	}{
		{
			name: "primary wins over secondary",
			rec: &Record{
				PrimaryAuthors:   []string{"A"},
				SecondaryAuthors: []Author{{Name: "B"}},
			},
			want: []string{"A"},
		},
		{
			name: "secondary is the fallback",
			rec:  &Record{SecondaryAuthors: []Author{{Name: "B", Role: "toim."}, {Name: "C"}}},
			want: []string{"B", "C"},
		},
		{
			name: "both empty",
			rec:  &Record{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.DisplayAuthors())
		})
	}
}

func TestLegacyAuthorExtraction(t *testing.T) {
	rec := decodeRecord(t, `{
		"id": "x.1",
		"authors": {"primary": {"Zeta, Z": {"role": ["-"]}, "Alpha, A": []}, "secondary": []},
		"nonPresenterAuthors": {"Other, O": {}, "Another, B": {}}
	}`)

	assert.Equal(t, []string{"Zeta, Z", "Alpha, A"}, rec.LegacyPrimaryAuthors(), "document order is kept")
	assert.Equal(t, []string{"Other, O", "Another, B"}, rec.LegacySecondaryAuthors())
	assert.Empty(t, rec.SecondaryAuthors)
	assert.Equal(t, []string{"Zeta, Z", "Alpha, A"}, rec.DisplayAuthors())
}

func TestLegacySecondaryFallback(t *testing.T) {
	rec := decodeRecord(t, `{"authors": {"primary": []}, "nonPresenterAuthors": {"Other, O": {}}}`)

	assert.Empty(t, rec.LegacyPrimaryAuthors(), "wrong shape yields empty list")
	assert.Equal(t, []string{"Other, O"}, rec.DisplayAuthors())
}

func TestLegacyAuthorsAbsent(t *testing.T) {
	rec := decodeRecord(t, `{"id": "x.1", "authors": "nobody"}`)

	assert.Empty(t, rec.LegacyPrimaryAuthors())
	assert.Empty(t, rec.LegacySecondaryAuthors())
	assert.Equal(t, []string{}, rec.DisplayAuthors())
}

func TestExtraString(t *testing.T) {
	rec := decodeRecord(t, `{"fullRecord": "<record/>", "rawData": {"a": 1}}`)

	assert.Equal(t, "<record/>", rec.ExtraString("fullRecord"))
	assert.Equal(t, "", rec.ExtraString("rawData"), "non-string member")
	assert.Equal(t, "", rec.ExtraString("missing"))
	assert.ElementsMatch(t, []string{"fullRecord", "rawData"}, rec.ExtraKeys())
}

func TestRecordMarshalKeepsSideTable(t *testing.T) {
	rec := decodeRecord(t, `{"id": "x.1", "title": "T", "rawData": {"a": 1}}`)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "x.1", out["id"])
	assert.Equal(t, "T", out["title"])
	assert.Equal(t, map[string]any{"a": float64(1)}, out["rawData"])
}
