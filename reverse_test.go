package routr

import (
	"errors"
	"net/url"
	"testing"
)

func assertReverse(t *testing.T, r Route, name, want string, args ...interface{}) {
	t.Helper()

	got, err := r.Reverse(name, args...)
	if err != nil {
		t.Fatalf("Reverse(%q, %v): %v", name, args, err)
	}

	if got != want {
		t.Errorf("Reverse(%q, %v) == %q, want %q", name, args, got, want)
	}
}

func assertReversalError(t *testing.T, r Route, name string, args ...interface{}) {
	t.Helper()

	_, err := r.Reverse(name, args...)

	var rerr *ReversalError
	if !errors.As(err, &rerr) {
		t.Fatalf("Reverse(%q, %v): error == %v, want *ReversalError", name, args, err)
	}
}

func TestReverseRootEndpoint(t *testing.T) {
	r := New(Def{Target: "target", Name: "news"})

	assertReverse(t, r, "news", "/")
	assertReversalError(t, r, "news2")
}

func TestReverseEndpoint(t *testing.T) {
	r := GET("news", "target", WithName("news"))

	assertReverse(t, r, "news", "/news")
	assertReversalError(t, r, "news2")

	r = GET("news/{id:int}/", "target", WithName("news"))

	assertReverse(t, r, "news", "/news/42/", 42)
	assertReversalError(t, r, "news")
}

func TestReverseGroup(t *testing.T) {
	g := NewGroup("api",
		GET("news", "news", WithName("news")),
		GET("comments", "comments", WithName("comments")),
	)

	assertReverse(t, g, "news", "/api/news")
	assertReverse(t, g, "comments", "/api/comments")
	assertReversalError(t, g, "a")
}

func TestReverseGroupWithPlaceholder(t *testing.T) {
	g := NewGroup("api",
		GET("news/{id}/", "news", WithName("news")),
		GET("comments", "comments", WithName("comments")),
	)

	assertReverse(t, g, "news", "/api/news/hello/", "hello")
}

func TestReverseMethodOnlyEndpoints(t *testing.T) {
	g := NewGroup("api",
		GET("", "news_get", WithName("get-news")),
		POST("", "news_post", WithName("create-news")),
	)

	assertReverse(t, g, "get-news", "/api")
	assertReverse(t, g, "create-news", "/api")
}

func TestReverseEmptyPattern(t *testing.T) {
	g := NewGroup("",
		New(Def{Target: "news", Name: "news"}),
	)

	assertReverse(t, g, "news", "/")
}

func TestReverseNested(t *testing.T) {
	g := NewGroup("api",
		NewGroup("news",
			GET("{id:int}/comments", "view", WithName("news-comments")),
		),
	)

	assertReverse(t, g, "news-comments", "/api/news/42/comments", 42)
}

func TestReverseDuplicateName(t *testing.T) {
	g := NewGroup("api",
		GET("news", "a", WithName("news")),
		NewGroup("v2",
			GET("news", "b", WithName("news")),
		),
	)

	_, err := g.Reverse("news")

	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("error == %v, want *ConfigurationError for duplicate name", err)
	}

	// The memoized index keeps reporting the configuration error
	if _, err := g.Reverse("news"); err == nil {
		t.Error("second Reverse must fail the same way")
	}
}

func TestReverseQuery(t *testing.T) {
	g := NewGroup("api",
		GET("news/{id:int}/", "news", WithName("news")),
	)

	got, err := g.ReverseQuery("news", url.Values{"page": {"2"}}, 42)
	if err != nil {
		t.Fatal(err)
	}

	if got != "/api/news/42/?page=2" {
		t.Errorf("ReverseQuery == %q, want '/api/news/42/?page=2'", got)
	}

	// Empty query values append nothing
	got, err = g.ReverseQuery("news", nil, 42)
	if err != nil {
		t.Fatal(err)
	}

	if got != "/api/news/42/" {
		t.Errorf("ReverseQuery == %q, want '/api/news/42/'", got)
	}
}

func TestReverseMatchRoundTrip(t *testing.T) {
	g := NewGroup("api",
		GET("news/{id:int}/", "news", WithName("news")),
	)

	uri, err := g.Reverse("news", 42)
	if err != nil {
		t.Fatal(err)
	}

	tr := mustMatch(t, g, MethodGet, uri)

	if len(tr.Args) != 1 || tr.Args[0] != 42 {
		t.Errorf("round-trip args == %v, want [42]", tr.Args)
	}
}
