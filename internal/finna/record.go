package finna

import (
	"bytes"
	"encoding/json"
)

// Record represents one catalog entry from the Finna API.
//
// Known members are promoted to typed fields; everything else is kept as raw
// JSON and reached through Extra.
type Record struct {
	ID               string
	Title            string
	Formats          []TranslatedString
	Buildings        []TranslatedString
	Description      string
	Summary          []string
	Year             string
	PrimaryAuthors   []string
	SecondaryAuthors []Author
	Images           []string

	extra map[string]json.RawMessage
}

// typed members, never stored in the extra side table
var promoted = map[string]bool{
	"id":                  true,
	"title":               true,
	"formats":             true,
	"buildings":           true,
	"description":         true,
	"summary":             true,
	"year":                true,
	"primaryAuthors":      true,
	"nonPresenterAuthors": true,
	"images":              true,
}

// UnmarshalJSON decodes a record, tolerating members with an unexpected shape.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{extra: make(map[string]json.RawMessage)}
	decodeMember(raw, "id", &r.ID)
	decodeMember(raw, "title", &r.Title)
	decodeMember(raw, "formats", &r.Formats)
	decodeMember(raw, "buildings", &r.Buildings)
	decodeMember(raw, "description", &r.Description)
	decodeMember(raw, "summary", &r.Summary)
	decodeMember(raw, "year", &r.Year)
	decodeMember(raw, "primaryAuthors", &r.PrimaryAuthors)
	decodeMember(raw, "images", &r.Images)

	// The legacy API returns nonPresenterAuthors as a name-keyed object; keep
	// that shape in the side table so the legacy extraction can read it.
	if v, ok := raw["nonPresenterAuthors"]; ok {
		var authors []Author
		if err := json.Unmarshal(v, &authors); err == nil {
			r.SecondaryAuthors = authors
		} else {
			r.extra["nonPresenterAuthors"] = v
		}
	}

	for k, v := range raw {
		if !promoted[k] {
			r.extra[k] = v
		}
	}
	return nil
}

// MarshalJSON encodes the typed core and the side table back into one object.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.extra)+10)
	for k, v := range r.extra {
		out[k] = v
	}
	if r.ID != "" {
		out["id"] = r.ID
	}
	if r.Title != "" {
		out["title"] = r.Title
	}
	if len(r.Formats) > 0 {
		out["formats"] = r.Formats
	}
	if len(r.Buildings) > 0 {
		out["buildings"] = r.Buildings
	}
	if r.Description != "" {
		out["description"] = r.Description
	}
	if len(r.Summary) > 0 {
		out["summary"] = r.Summary
	}
	if r.Year != "" {
		out["year"] = r.Year
	}
	if len(r.PrimaryAuthors) > 0 {
		out["primaryAuthors"] = r.PrimaryAuthors
	}
	if len(r.SecondaryAuthors) > 0 {
		out["nonPresenterAuthors"] = r.SecondaryAuthors
	}
	if len(r.Images) > 0 {
		out["images"] = r.Images
	}
	return json.Marshal(out)
}

func decodeMember(raw map[string]json.RawMessage, key string, dst any) {
	v, ok := raw[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(v, dst)
}

// Extra returns a raw JSON member that has no typed field
func (r *Record) Extra(key string) (json.RawMessage, bool) {
	v, ok := r.extra[key]
	return v, ok
}

// ExtraString returns a string member from the side table, or "" if the
// member is absent or not a string.
func (r *Record) ExtraString(key string) string {
	v, ok := r.extra[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

// ExtraKeys returns the names of the side table members
func (r *Record) ExtraKeys() []string {
	keys := make([]string, 0, len(r.extra))
	for k := range r.extra {
		keys = append(keys, k)
	}
	return keys
}

// CanonicalFormat returns the label and code of the most specific format,
// which the API lists last.
func (r *Record) CanonicalFormat() (label, code string) {
	if len(r.Formats) == 0 {
		return "?", "?"
	}
	f := r.Formats[len(r.Formats)-1]
	return f.Translated, f.Value
}

// CanonicalBuilding returns the label of the first building
func (r *Record) CanonicalBuilding() string {
	if len(r.Buildings) == 0 {
		return ""
	}
	return r.Buildings[0].Translated
}

// SecondaryAuthorNames returns the names of the typed secondary authors
func (r *Record) SecondaryAuthorNames() []string {
	names := make([]string, 0, len(r.SecondaryAuthors))
	for _, a := range r.SecondaryAuthors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// DisplayAuthors returns primary authors when present, else secondary ones.
// The two lists are never merged. Records in the legacy shape fall back to
// the name-keyed author objects.
func (r *Record) DisplayAuthors() []string {
	if len(r.PrimaryAuthors) > 0 {
		return r.PrimaryAuthors
	}
	if primary := r.LegacyPrimaryAuthors(); len(primary) > 0 {
		return primary
	}
	if names := r.SecondaryAuthorNames(); len(names) > 0 {
		return names
	}
	if secondary := r.LegacySecondaryAuthors(); len(secondary) > 0 {
		return secondary
	}
	return []string{}
}

// LegacyPrimaryAuthors reads the names keyed under authors.primary
func (r *Record) LegacyPrimaryAuthors() []string {
	v, ok := r.extra["authors"]
	if !ok {
		return []string{}
	}
	var authors map[string]json.RawMessage
	if err := json.Unmarshal(v, &authors); err != nil {
		return []string{}
	}
	primary, ok := authors["primary"]
	if !ok {
		return []string{}
	}
	return objectKeys(primary)
}

// LegacySecondaryAuthors reads the names keyed in the nonPresenterAuthors object
func (r *Record) LegacySecondaryAuthors() []string {
	v, ok := r.extra["nonPresenterAuthors"]
	if !ok {
		return []string{}
	}
	return objectKeys(v)
}

// objectKeys returns the member names of a JSON object in document order.
// Anything that is not an object yields an empty list.
func objectKeys(data json.RawMessage) []string {
	keys := []string{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return keys
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return keys
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return []string{}
		}
		key, ok := tok.(string)
		if !ok {
			return []string{}
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return []string{}
		}
		keys = append(keys, key)
	}
	return keys
}
