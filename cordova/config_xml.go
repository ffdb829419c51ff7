package cordova

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

const (
	ConfigXMLName = "config.xml"
)

const (
	DefaultContent     = "index.html"
	DefaultOrientation = "portrait"
)

const (
	attrVersionCode = "android-versionCode"
	platformAndroid = "android"
	prefOrientation = "Orientation"
	pathAndroid     = ".//platform[@name='" + platformAndroid + "']"
	pathOrientation = ".//preference[@name='" + prefOrientation + "']"
	pathIcon        = ".//icon"
)

var (
	// ErrNoRoot is returned for a well-formed but empty document.
	ErrNoRoot = errors.New("config.xml has no root element")
	// ErrOutsideRoot is returned for a document with elements or
	// text after its root element.
	ErrOutsideRoot = errors.New("config.xml has content outside its root element")
)

// WidgetConfig is the application identity and entry point
// described by a Cordova config.xml.
type WidgetConfig struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	VersionCode string `json:"versionCode"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
	AuthorEmail string `json:"authorEmail"`
	AuthorURL   string `json:"authorUrl"`
	Content     string `json:"content"`
	Orientation string `json:"orientation"`
}

// ConfigXML is a parsed config.xml. It keeps the whole document,
// including nodes it does not understand, so that it can be
// written back after an Update with those nodes intact.
type ConfigXML struct {
	doc *etree.Document
}

func ParseConfigXML(b []byte) (*ConfigXML, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true

	if err := wellFormed(b); err != nil {
		return nil, err
	}

	if err := doc.ReadFromBytes(b); err != nil {
		return nil, err
	}

	if doc.Root() == nil {
		return nil, ErrNoRoot
	}

	return &ConfigXML{doc: doc}, nil
}

func (c *ConfigXML) Widget() *WidgetConfig {
	var (
		root   = c.doc.Root()
		widget = &WidgetConfig{
			ID:          root.SelectAttrValue("id", ""),
			Version:     root.SelectAttrValue("version", ""),
			VersionCode: root.SelectAttrValue(attrVersionCode, ""),
			Name:        childText(root, "name"),
			Description: childText(root, "description"),
			Author:      childText(root, "author"),
			Content:     DefaultContent,
			Orientation: DefaultOrientation,
		}
	)

	if author := root.SelectElement("author"); author != nil {
		widget.AuthorEmail = author.SelectAttrValue("email", "")
		widget.AuthorURL = author.SelectAttrValue("href", "")
	}

	if content := root.SelectElement("content"); content != nil {
		if src := content.SelectAttrValue("src", ""); src != "" {
			widget.Content = src
		} else if text := strings.TrimSpace(content.Text()); text != "" {
			widget.Content = text
		}
	}

	if platform := root.FindElement(pathAndroid); platform != nil {
		if pref := platform.FindElement(pathOrientation); pref != nil {
			widget.Orientation = pref.SelectAttrValue("value", DefaultOrientation)
		}
	}

	return widget
}

// Icons maps "<width>x<height>" to the src of every <icon> in the
// document that declares all three. Later icons of the same size win.
func (c *ConfigXML) Icons() map[string]string {
	icons := map[string]string{}

	for _, icon := range c.doc.Root().FindElements(pathIcon) {
		var (
			src    = icon.SelectAttrValue("src", "")
			width  = icon.SelectAttrValue("width", "")
			height = icon.SelectAttrValue("height", "")
		)

		if src != "" && width != "" && height != "" {
			icons[fmt.Sprintf("%sx%s", width, height)] = src
		}
	}

	return icons
}

func (c *ConfigXML) Bytes() ([]byte, error) {
	return c.doc.WriteToBytes()
}

// wellFormed checks that b is a single root element, surrounded
// only by whitespace, comments, processing instructions and directives.
func wellFormed(b []byte) error {
	var (
		dec   = xml.NewDecoder(bytes.NewReader(b))
		depth = 0
		roots = 0
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if roots++; roots > 1 {
					return ErrOutsideRoot
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return ErrOutsideRoot
			}
		}
	}

	if roots == 0 {
		return ErrNoRoot
	}

	return nil
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}

	return ""
}
