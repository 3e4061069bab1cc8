package rdfa

import "testing"

func TestDetectHostLanguageExplicitOverride(t *testing.T) {
	got := DetectHostLanguage(DetectInput{HostLanguage: HostSVG, MIMEType: "text/html"})
	if got != HostSVG {
		t.Fatalf("expected explicit override to win, got %s", got)
	}
}

func TestDetectHostLanguageFromMIME(t *testing.T) {
	cases := []struct {
		mime string
		head string
		want HostLanguage
	}{
		{"application/xml", "", HostXML1},
		{"image/svg+xml", "", HostSVG},
		{"text/html", "<!DOCTYPE html>", HostHTML5},
		{"text/html", "<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0\">", HostXHTML1},
		{"text/html", "<!DOCTYPE HTML PUBLIC \"-//W3C//DTD HTML 4.01\">", HostHTML4},
		{"application/xhtml+xml", "<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0\">", HostXHTML1},
		{"application/xhtml+xml", "", HostXHTML5},
	}
	for _, c := range cases {
		got := DetectHostLanguage(DetectInput{MIMEType: c.mime, Head: []byte(c.head)})
		if got != c.want {
			t.Fatalf("mime=%s head=%q: got %s, want %s", c.mime, c.head, got, c.want)
		}
	}
}

func TestDetectHostLanguageSniffsWithoutMIME(t *testing.T) {
	got := DetectHostLanguage(DetectInput{Head: []byte("<!DOCTYPE html><html></html>")})
	if got != HostHTML5 {
		t.Fatalf("expected html5 from doctype sniff, got %s", got)
	}
	got2 := DetectHostLanguage(DetectInput{Head: []byte("<?xml version=\"1.0\"?><root/>")})
	if got2 != HostXML1 {
		t.Fatalf("expected xml1 fallback, got %s", got2)
	}
}

func TestDetectVersionFromAttribute(t *testing.T) {
	v := DetectVersion(DetectInput{Head: []byte(`<html version="XHTML+RDFa 1.0">`)})
	if v != Version10 {
		t.Fatalf("expected 1.0, got %s", v)
	}
	v2 := DetectVersion(DetectInput{Head: []byte(`no version marker here`)})
	if v2 != Version11 {
		t.Fatalf("expected default 1.1, got %s", v2)
	}
}

func TestDetectEncodingFromMetaCharset(t *testing.T) {
	enc := DetectEncoding([]byte(`<meta charset="iso-8859-1">`))
	if enc != "iso-8859-1" {
		t.Fatalf("expected iso-8859-1, got %s", enc)
	}
	if DetectEncoding([]byte(`<html></html>`)) != "utf-8" {
		t.Fatalf("expected utf-8 fallback")
	}
}
