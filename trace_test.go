package routr

import (
	"reflect"
	"testing"
)

func TestTraceCaptured(t *testing.T) {
	g := NewGroup("api",
		NewGroup("news/{id:int}",
			GET("comments/{cid:int}", "view"),
		),
	)

	tr := mustMatch(t, g, MethodGet, "/api/news/42/comments/7")

	want := map[string]interface{}{"id": 42, "cid": 7}
	if got := tr.Captured(); !reflect.DeepEqual(got, want) {
		t.Errorf("Captured == %v, want %v", got, want)
	}
}

func TestTraceLookupPrecedence(t *testing.T) {
	g := NewGroup("news",
		GET("{id:int}", "view", WithGuards(GuardFunc(func(_ Request, tr *Trace) error {
			tr.SetKwarg("id", "overridden")
			tr.SetValue("session", "s-1")

			return nil
		}))),
	)

	tr := mustMatch(t, g, MethodGet, "/news/42")

	// Guard keyword values shadow pattern captures
	if v, ok := tr.Lookup("id"); !ok || v != "overridden" {
		t.Errorf("Lookup('id') == %v, want 'overridden'", v)
	}

	if v, ok := tr.Lookup("session"); !ok || v != "s-1" {
		t.Errorf("Lookup('session') == %v, want 's-1'", v)
	}

	if _, ok := tr.Lookup("missing"); ok {
		t.Error("Lookup('missing') must report absence")
	}
}

func TestTracePayloadOverlay(t *testing.T) {
	set := func(key string, value interface{}) Guard {
		return GuardFunc(func(_ Request, tr *Trace) error {
			tr.SetValue(key, value)

			return nil
		})
	}

	g := New(Def{
		Pattern: "api",
		Guards:  []Guard{set("who", "group"), set("scope", "read")},
		Children: []Route{
			GET("news", "news", WithGuards(set("who", "endpoint"))),
		},
	})

	tr := mustMatch(t, g, MethodGet, "/api/news")

	if v, _ := tr.Value("who"); v != "endpoint" {
		t.Errorf("payload['who'] == %v, want 'endpoint' (leaf write wins)", v)
	}

	if v, _ := tr.Value("scope"); v != "read" {
		t.Errorf("payload['scope'] == %v, want 'read'", v)
	}
}

func TestTraceEndpoint(t *testing.T) {
	e := GET("news", "target", WithName("news"))
	g := NewGroup("api", e)

	tr := mustMatch(t, g, MethodGet, "/api/news")

	if tr.Endpoint() != e {
		t.Errorf("Endpoint == %v, want the matched leaf", tr.Endpoint())
	}

	if tr.Target() != "target" {
		t.Errorf("Target == %v, want 'target'", tr.Target())
	}

	if tr.Routes[0] != g {
		t.Error("routes must start at the root group")
	}
}

func TestTraceAnnotation(t *testing.T) {
	g := New(Def{
		Pattern:     "api",
		Annotations: map[string]interface{}{"scope": "public", "layer": "api"},
		Children: []Route{
			GET("news", "news", WithAnnotations(map[string]interface{}{"scope": "private"})),
		},
	})

	tr := mustMatch(t, g, MethodGet, "/api/news")

	// Leaf-most annotation wins
	if v, _ := tr.Annotation("scope"); v != "private" {
		t.Errorf("Annotation('scope') == %v, want 'private'", v)
	}

	if v, _ := tr.Annotation("layer"); v != "api" {
		t.Errorf("Annotation('layer') == %v, want 'api'", v)
	}

	if _, ok := tr.Annotation("missing"); ok {
		t.Error("Annotation('missing') must report absence")
	}
}
