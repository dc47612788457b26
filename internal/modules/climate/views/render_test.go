package views

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplates_success(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if indexTmpl == nil {
		t.Fatal("LoadTemplates() left indexTmpl nil")
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// fs.Sub rejects an invalid path
	if err := loadTemplatesFromFS(fstest.MapFS{}, "../templates"); err == nil {
		t.Fatal("loadTemplatesFromFS(invalid dir) = nil; want error")
	}
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	prev := indexTmpl
	t.Cleanup(func() { indexTmpl = prev })

	badFS := fstest.MapFS{
		"templates/index.html": {Data: []byte("{{ .")},
	}
	if err := loadTemplatesFromFS(badFS, "templates"); err == nil {
		t.Fatal("loadTemplatesFromFS(badFS) = nil; want error")
	}
}

func TestRenderIndex_notLoaded(t *testing.T) {
	prev := indexTmpl
	indexTmpl = nil
	t.Cleanup(func() { indexTmpl = prev })

	var buf bytes.Buffer
	err := RenderIndex(&buf, &IndexData{})
	if err == nil {
		t.Fatal("RenderIndex() = nil; want error when templates not loaded")
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("err = %q; want message containing \"not loaded\"", err.Error())
	}
}

func TestRenderIndex(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	var buf bytes.Buffer
	err := RenderIndex(&buf, &IndexData{
		Title: "Climate API",
		Routes: []Route{
			{Path: "/api/v1.0/precipitation", Description: "precipitation by date"},
			{Path: "/api/v1.0/[start]/[end]", Description: "temperature summary"},
		},
		LatestDate: "2017-08-23",
	})
	if err != nil {
		t.Fatalf("RenderIndex() = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Available Routes", "/api/v1.0/precipitation", "/api/v1.0/[start]/[end]", "2017-08-23"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderIndex_escapes(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}
	var buf bytes.Buffer
	if err := RenderIndex(&buf, &IndexData{Routes: []Route{{Path: "<b>x</b>"}}}); err != nil {
		t.Fatalf("RenderIndex() = %v", err)
	}
	if strings.Contains(buf.String(), "<b>x</b>") {
		t.Error("route path rendered unescaped")
	}
}

func TestRenderIndex_noLatestDate(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}
	var buf bytes.Buffer
	if err := RenderIndex(&buf, &IndexData{Title: "x"}); err != nil {
		t.Fatalf("RenderIndex() = %v", err)
	}
	if strings.Contains(buf.String(), "Latest observation") {
		t.Error("latest date paragraph rendered without a date")
	}
}
