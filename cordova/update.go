package cordova

import (
	"github.com/beevik/etree"
)

// Fields accepted by Update.
const (
	FieldID          = "id"
	FieldVersion     = "version"
	FieldVersionCode = "versionCode"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAuthor      = "author"
	FieldContent     = "content"
	FieldOrientation = "orientation"
)

// fields is the order in which Update applies fields, so that
// elements created by one Update always come out in the same order.
var fields = []string{
	FieldID,
	FieldVersion,
	FieldVersionCode,
	FieldName,
	FieldDescription,
	FieldAuthor,
	FieldContent,
	FieldOrientation,
}

var updaters = map[string]func(*etree.Element, string){
	FieldID:          setAttr("id"),
	FieldVersion:     setAttr("version"),
	FieldVersionCode: setAttr(attrVersionCode),
	FieldName:        setChildText("name"),
	FieldDescription: setChildText("description"),
	FieldAuthor:      setChildText("author"),
	FieldContent:     setContent,
	FieldOrientation: setOrientation,
}

// IsField reports whether Update knows how to write field.
func IsField(field string) bool {
	_, ok := updaters[field]
	return ok
}

// Update applies each recognized field in updates to the document,
// creating the elements it addresses when they are missing. No other
// node is touched. Fields are applied in a fixed order and returned
// in that order; unrecognized fields are skipped.
func (c *ConfigXML) Update(updates map[string]string) []string {
	var (
		root    = c.doc.Root()
		applied = []string{}
	)

	for _, field := range fields {
		if value, ok := updates[field]; ok {
			updaters[field](root, value)
			applied = append(applied, field)
		}
	}

	return applied
}

func setAttr(key string) func(*etree.Element, string) {
	return func(root *etree.Element, value string) {
		root.CreateAttr(key, value)
	}
}

func setChildText(tag string) func(*etree.Element, string) {
	return func(root *etree.Element, value string) {
		selectOrCreate(root, tag).SetText(value)
	}
}

func setContent(root *etree.Element, value string) {
	selectOrCreate(root, "content").CreateAttr("src", value)
}

func setOrientation(root *etree.Element, value string) {
	platform := root.FindElement(pathAndroid)
	if platform == nil {
		platform = root.CreateElement("platform")
		platform.CreateAttr("name", platformAndroid)
	}

	pref := platform.FindElement(pathOrientation)
	if pref == nil {
		pref = platform.CreateElement("preference")
		pref.CreateAttr("name", prefOrientation)
	}

	pref.CreateAttr("value", value)
}

func selectOrCreate(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}

	return parent.CreateElement(tag)
}
