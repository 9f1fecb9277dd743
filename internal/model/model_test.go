package model

import (
	"strings"
	"testing"
)

func TestParseMethod(t *testing.T) {
	t.Parallel()

	m, err := ParseMethod(" get ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m != GET {
		t.Errorf("method: got %q", m)
	}

	if _, err := ParseMethod("TRACE"); err == nil {
		t.Fatalf("expected error for unsupported method")
	}
	if _, err := ParseMethod(""); err == nil {
		t.Fatalf("expected error for empty method")
	}
}

func TestMethodHasRequestBody(t *testing.T) {
	t.Parallel()

	with := []Method{POST, PUT, PATCH}
	for _, m := range with {
		if !m.HasRequestBody() {
			t.Errorf("%s: expected request body support", m)
		}
	}
	without := []Method{GET, DELETE, HEAD, OPTIONS}
	for _, m := range without {
		if m.HasRequestBody() {
			t.Errorf("%s: expected no request body support", m)
		}
	}
}

func TestProjectValidate(t *testing.T) {
	t.Parallel()

	p := Project{Name: "Petstore", Version: "1.2.3"}
	if err := p.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	p.Version = "1.2"
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for non-semver version")
	}

	p.Version = ""
	if err := p.Validate(); err != nil {
		t.Fatalf("empty version should be allowed: %v", err)
	}

	p.Name = "  "
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestProjectApplyPatch(t *testing.T) {
	t.Parallel()

	p := Project{Name: "Old", Version: "1.0.0", Description: "keep me"}
	name := "New"
	base := "https://api.new.example"
	p.Apply(&ProjectPatch{Name: &name, BaseURL: &base})

	if p.Name != "New" || p.BaseURL != base {
		t.Errorf("patch not applied: %+v", p)
	}
	if p.Description != "keep me" || p.Version != "1.0.0" {
		t.Errorf("absent patch fields must not overwrite: %+v", p)
	}

	p.Apply(nil) // no-op
	if p.Name != "New" {
		t.Errorf("nil patch mutated project")
	}
}

func TestEndpointID(t *testing.T) {
	t.Parallel()

	e := Endpoint{Method: GET, Path: "/users/{id}/posts"}
	if got := e.ID(); got != "getusersidposts" {
		t.Errorf("id: got %q", got)
	}
	if got := e.EffectiveOperationID(); got != "getusersidposts" {
		t.Errorf("derived operationId: got %q", got)
	}

	e.OperationID = "listUserPosts"
	if got := e.EffectiveOperationID(); got != "listUserPosts" {
		t.Errorf("declared operationId: got %q", got)
	}
}

func TestEndpointValidate(t *testing.T) {
	t.Parallel()

	ok := Endpoint{
		Method:    POST,
		Path:      "/users",
		Responses: []Response{{StatusCode: 201, Description: "created"}},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	bad := ok
	bad.Path = "users"
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "start with /") {
		t.Fatalf("expected rooted-path error, got %v", err)
	}

	bad = ok
	bad.Responses = nil
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for empty responses")
	}

	bad = ok
	bad.Responses = []Response{{StatusCode: 600, Description: "nope"}}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for out-of-range status")
	}
}
