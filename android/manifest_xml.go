package android

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const (
	AndroidManifestName = "AndroidManifest.xml"
	// Namespace is the URI bound to the conventional "android" prefix.
	Namespace = "http://schemas.android.com/apk/res/android"
)

// ErrNoApplication is returned when a manifest has no top-level
// <application> element and so carries no application configuration.
var ErrNoApplication = errors.New("manifest has no <application> element")

type Manifest struct {
	XMLName     xml.Name             `xml:"manifest"`
	Application *ManifestApplication `xml:"application"`
	Attrs       []xml.Attr           `xml:",any,attr"`
}

func (m *Manifest) Package() string {
	return attrValue(m.Attrs, "", "package")
}

type ManifestApplication struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// ManifestConfig is the subset of an AndroidManifest.xml that
// describes package identity, runtime flags and permissions.
type ManifestConfig struct {
	PackageName         string   `json:"packageName"`
	VersionName         string   `json:"versionName"`
	VersionCode         string   `json:"versionCode"`
	ExtractNativeLibs   string   `json:"extractNativeLibs"`
	HardwareAccelerated string   `json:"hardwareAccelerated"`
	Permissions         []string `json:"permissions"`
}

// ParseManifest decodes the AndroidManifest.xml in b. Permissions are
// collected from every <uses-permission> in the document in document
// order, skipping any that lack android:name.
func ParseManifest(b []byte) (*ManifestConfig, error) {
	manifest := &Manifest{}
	if err := xml.NewDecoder(bytes.NewReader(b)).Decode(manifest); err != nil {
		return nil, err
	}

	if manifest.Application == nil {
		return nil, ErrNoApplication
	}

	permissions, err := usesPermissions(b)
	if err != nil {
		return nil, err
	}

	return &ManifestConfig{
		PackageName:         manifest.Package(),
		VersionName:         attrValue(manifest.Attrs, Namespace, "versionName"),
		VersionCode:         attrValue(manifest.Attrs, Namespace, "versionCode"),
		ExtractNativeLibs:   attrValue(manifest.Application.Attrs, Namespace, "extractNativeLibs"),
		HardwareAccelerated: attrValue(manifest.Application.Attrs, Namespace, "hardwareAccelerated"),
		Permissions:         permissions,
	}, nil
}

func usesPermissions(b []byte) ([]string, error) {
	var (
		dec         = xml.NewDecoder(bytes.NewReader(b))
		permissions = []string{}
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("scan uses-permission: %w", err)
		}

		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "uses-permission" {
			if name := attrValue(se.Attr, Namespace, "name"); name != "" {
				permissions = append(permissions, name)
			}
		}
	}

	return permissions, nil
}

func attrValue(attrs []xml.Attr, space, local string) string {
	for _, attr := range attrs {
		if attr.Name.Space == space && attr.Name.Local == local {
			return attr.Value
		}
	}

	return ""
}
