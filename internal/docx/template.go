// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"io/fs"
	"time"

	"github.com/pdiddy/md2docx/internal/document"
)

// Package part names.
const (
	partContentTypes = "[Content_Types].xml"
	partCore         = "docProps/core.xml"
	partDocument     = "word/document.xml"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
)

//go:embed all:template
var templateFS embed.FS

// packTemplate zips the embedded template parts together with core
// properties for meta. The result is loaded back with go-docx so the
// template relationships, numbering included, carry into the output.
func packTemplate(meta document.Metadata, created time.Time) ([]byte, error) {
	root, err := fs.Sub(templateFS, "template")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	err = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(root, path)
		if err != nil {
			return err
		}
		return addPart(zw, path, data)
	})
	if err != nil {
		return nil, err
	}

	core, err := marshalCore(meta, created)
	if err != nil {
		return nil, fmt.Errorf("encoding core properties: %w", err)
	}
	if err := addPart(zw, partCore, core); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPart(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

type coreProperties struct {
	XMLName     xml.Name `xml:"cp:coreProperties"`
	NSCP        string   `xml:"xmlns:cp,attr"`
	NSDC        string   `xml:"xmlns:dc,attr"`
	NSDCTerms   string   `xml:"xmlns:dcterms,attr"`
	NSXSI       string   `xml:"xmlns:xsi,attr"`
	Title       string   `xml:"dc:title"`
	Creator     string   `xml:"dc:creator"`
	Description string   `xml:"dc:description"`
	Created     dateTime `xml:"dcterms:created"`
	Modified    dateTime `xml:"dcterms:modified"`
}

type dateTime struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func marshalCore(meta document.Metadata, created time.Time) ([]byte, error) {
	stamp := dateTime{Type: "dcterms:W3CDTF", Value: created.Format(time.RFC3339)}
	data, err := xml.Marshal(coreProperties{
		NSCP:        "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		NSDC:        "http://purl.org/dc/elements/1.1/",
		NSDCTerms:   "http://purl.org/dc/terms/",
		NSXSI:       "http://www.w3.org/2001/XMLSchema-instance",
		Title:       meta.Title,
		Creator:     meta.Author,
		Description: meta.Comments,
		Created:     stamp,
		Modified:    stamp,
	})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}
