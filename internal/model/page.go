package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// Page is one web page moving through the snapshot producer pipeline.
// Steps fill in HTML, then Markdown.
type Page struct {
	// Title is the page title from the input list.
	Title string

	// URL is the source location (http, https or file scheme).
	URL string

	// FileName is the markdown file name inside the archive, e.g. "sample_page.md".
	FileName string

	// HTML is the fetched document.
	HTML []byte

	// Markdown is the rendered snapshot file, including the URL marker and title.
	Markdown string

	// Hash is the SHA-256 of Markdown, set by ComputeHash.
	Hash string

	// Err records why the page could not be converted. Nil on success.
	Err error

	// Steps lists the pipeline steps that completed for this page.
	Steps []string
}

// NewPage creates a page for the given list entry.
func NewPage(title, url, fileName string) *Page {
	return &Page{
		Title:    title,
		URL:      url,
		FileName: fileName,
	}
}

// ComputeHash calculates the SHA-256 hash of the markdown content.
func (p *Page) ComputeHash() {
	h := sha256.Sum256([]byte(p.Markdown))
	p.Hash = hex.EncodeToString(h[:])
}

// Converted reports whether the page produced a markdown file.
func (p *Page) Converted() bool {
	return p.Err == nil && p.Markdown != ""
}
