package export

import (
	"testing"

	"github.com/apidoc-dev/apidoc/internal/model"
)

func TestGroupByTag_FanOutAndOrder(t *testing.T) {
	t.Parallel()
	eps := []model.Endpoint{
		{Method: model.GET, Path: "/a", Tags: []string{"x", "y"}},
		{Method: model.GET, Path: "/b", Tags: []string{"y"}},
		{Method: model.GET, Path: "/c"},
	}

	g := GroupByTag(eps)

	tags := g.Tags()
	want := []string{"x", "y", model.DefaultTagGroup}
	if len(tags) != len(want) {
		t.Fatalf("tags: got %v", tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tag order: got %v, want %v", tags, want)
		}
	}

	if got := g.Endpoints("x"); len(got) != 1 || got[0].Path != "/a" {
		t.Errorf("group x: got %v", got)
	}
	if got := g.Endpoints("y"); len(got) != 2 || got[0].Path != "/a" || got[1].Path != "/b" {
		t.Errorf("group y must contain /a then /b: got %v", got)
	}
	if got := g.Endpoints(model.DefaultTagGroup); len(got) != 1 || got[0].Path != "/c" {
		t.Errorf("untagged endpoint must land in %s: got %v", model.DefaultTagGroup, got)
	}
}

func TestGroupByTag_BlankTagFallsBackToGeneral(t *testing.T) {
	t.Parallel()
	eps := []model.Endpoint{
		{Method: model.GET, Path: "/a", Tags: []string{"  "}},
	}
	g := GroupByTag(eps)
	if got := g.Endpoints(model.DefaultTagGroup); len(got) != 1 {
		t.Fatalf("blank tag: got groups %v", g.Tags())
	}
}

func TestAnchorSlug(t *testing.T) {
	t.Parallel()
	ep := model.Endpoint{Method: model.DELETE, Path: "/Users/{id}"}
	if got := anchorSlug(&ep); got != "delete--users--id-" {
		t.Errorf("slug: got %q", got)
	}
}
