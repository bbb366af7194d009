package apiurl

import (
	"strings"
	"testing"
)

func TestBuilderBase(t *testing.T) {
	cases := []struct {
		name     string
		origin   string
		basePath string
		want     string
	}{
		{"trailing slashes stripped", "http://localhost:8000/", "/api/", "http://localhost:8000/api"},
		{"defaults", "", "", "/api"},
		{"root mounted", "http://localhost:8000", "/", "http://localhost:8000"},
		{"whitespace trimmed", "  http://host:8000//  ", "  //v1//  ", "http://host:8000/v1"},
		{"nested base path", "http://host", "api/v2", "http://host/api/v2"},
		{"relative with custom base", "", "/books-api/", "/books-api"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Builder{Origin: tc.origin, BasePath: tc.basePath}
			if got := b.Base(); got != tc.want {
				t.Fatalf("Base() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuilderResolve(t *testing.T) {
	b := Builder{Origin: "http://localhost:8000/", BasePath: "/api/"}

	cases := map[string]string{
		"books/":      "http://localhost:8000/api/books/",
		"/books/":     "http://localhost:8000/api/books/",
		"///authors/": "http://localhost:8000/api/authors/",
		"books/12":    "http://localhost:8000/api/books/12",
		"":            "http://localhost:8000/api/",
	}
	for in, want := range cases {
		if got := b.Resolve(in); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuilderResolve_NoDoubleSlashes(t *testing.T) {
	origins := []string{"", "http://h", "http://h/", "https://h:1//", " http://h "}
	bases := []string{"", "/", "api", "/api/", "//a//b//"}
	paths := []string{"", "/", "books", "/books/", "//books/1"}

	for _, o := range origins {
		for _, bp := range bases {
			for _, p := range paths {
				b := Builder{Origin: o, BasePath: bp}
				got := b.Resolve(p)
				rest := got
				if i := strings.Index(rest, "://"); i >= 0 {
					rest = rest[i+3:]
				}
				if strings.Contains(rest, "//") {
					t.Fatalf("Resolve(%q) with %+v = %q, contains double slash", p, b, got)
				}
				base := b.Base()
				if !strings.HasPrefix(got, base+"/") {
					t.Fatalf("Resolve(%q) = %q, want prefix %q", p, got, base+"/")
				}
			}
		}
	}
}

func TestBuilderResolve_Stable(t *testing.T) {
	b := Builder{Origin: "http://host:8000", BasePath: "/api"}
	first := b.Resolve("books/")
	for i := 0; i < 5; i++ {
		if got := b.Resolve("books/"); got != first {
			t.Fatalf("Resolve changed between calls: %q then %q", first, got)
		}
	}
}

func TestGetAPIBaseURL_Environment(t *testing.T) {
	t.Setenv(EnvOrigin, "http://localhost:8000/")
	t.Setenv(EnvBasePath, "/api/")
	if got := GetAPIBaseURL(); got != "http://localhost:8000/api" {
		t.Fatalf("GetAPIBaseURL() = %q, want %q", got, "http://localhost:8000/api")
	}
	if got := BuildAPIURL("books/"); got != "http://localhost:8000/api/books/" {
		t.Fatalf("BuildAPIURL() = %q, want %q", got, "http://localhost:8000/api/books/")
	}
}

func TestGetAPIBaseURL_Unset(t *testing.T) {
	t.Setenv(EnvOrigin, "")
	t.Setenv(EnvBasePath, "")
	if got := GetAPIBaseURL(); got != "/api" {
		t.Fatalf("GetAPIBaseURL() = %q, want /api", got)
	}
}

func TestGetAPIBaseURL_RootPath(t *testing.T) {
	t.Setenv(EnvOrigin, "http://localhost:8000")
	t.Setenv(EnvBasePath, "/")
	if got := GetAPIBaseURL(); got != "http://localhost:8000" {
		t.Fatalf("GetAPIBaseURL() = %q, want http://localhost:8000", got)
	}
}

func TestBuilderResolve_CollapsesInnerSlashes(t *testing.T) {
	cases := []struct {
		b    Builder
		path string
		want string
	}{
		{Builder{Origin: "http://h", BasePath: "/api//v1/"}, "books/", "http://h/api/v1/books/"},
		{Builder{Origin: "http://h", BasePath: "//a//b//"}, "", "http://h/a/b/"},
		{Builder{Origin: "http://h"}, "books//1", "http://h/api/books/1"},
	}
	for _, tc := range cases {
		if got := tc.b.Resolve(tc.path); got != tc.want {
			t.Fatalf("Resolve(%q) with %+v = %q, want %q", tc.path, tc.b, got, tc.want)
		}
	}
}
