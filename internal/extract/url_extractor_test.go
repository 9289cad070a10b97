// ABOUTME: Unit tests for the URL section extractor
// ABOUTME: Uses an httptest server and table tests for source name derivation
package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<p>Intro paragraph before any heading.</p>
<h1>Admissions</h1>
<p>Apply online.</p>
<p>Deadlines are in May.</p>
<h2>Tuition</h2>
<p>See the fee schedule.</p>
<h3>Empty Section</h3>
</body></html>`

func TestExtract_Sections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	e := NewURLExtractor()
	sections, err := e.Extract(context.Background(), server.URL+"/admissions/apply")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}

	// Intro, Admissions, Tuition; the heading with no paragraphs is dropped
	if len(sections) != 3 {
		t.Fatalf("Expected 3 sections, got %d: %+v", len(sections), sections)
	}

	if sections[0].Section != "" || sections[0].Content != "Intro paragraph before any heading." {
		t.Errorf("Unexpected leading section %+v", sections[0])
	}
	if sections[1].Section != "Admissions" {
		t.Errorf("Expected section 'Admissions', got %q", sections[1].Section)
	}
	if sections[1].Content != "Apply online. Deadlines are in May." {
		t.Errorf("Expected joined paragraphs, got %q", sections[1].Content)
	}
	if sections[2].Section != "Tuition" || sections[2].Content != "See the fee schedule." {
		t.Errorf("Unexpected section %+v", sections[2])
	}

	if sections[0].Source != "admissions-apply-web" {
		t.Errorf("Expected source 'admissions-apply-web', got %q", sections[0].Source)
	}
}

func TestExtract_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	e := NewURLExtractor()
	if _, err := e.Extract(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 404 response")
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"path segments", "https://www.sfbu.edu/admissions/apply", "admissions-apply"},
		{"skips noise segments", "https://www.sfbu.edu/catalog/2024/index.html", "catalog"},
		{"no path uses host label", "https://www.sfbu.edu/", "www"},
		{"invalid url", "::not-a-url", "unknown-source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceName(tt.url); got != tt.want {
				t.Errorf("SourceName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
