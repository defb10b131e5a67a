package routr

import "testing"

func TestIncludeFragment(t *testing.T) {
	fragment := NewGroup("news",
		GET("{id:int}/", "get-news-target", WithName("get-news")),
	)

	RegisterFragment("app.news", fragment)

	r := NewGroup("api",
		Include("app.news"),
	)

	tr := mustMatch(t, r, MethodGet, "/api/news/42/")

	if tr.Target() != "get-news-target" {
		t.Errorf("target == %v, want 'get-news-target'", tr.Target())
	}

	assertReverse(t, r, "get-news", "/api/news/42/", 42)
}

func TestIncludeUnknown(t *testing.T) {
	if _, err := TryInclude("app.unknown"); err == nil {
		t.Error("expected error for unknown fragment")
	}

	if recv := catchPanic(func() { Include("app.unknown") }); recv == nil {
		t.Error("Include must panic on unknown fragment")
	}
}

func TestRegisterFragmentValidation(t *testing.T) {
	if recv := catchPanic(func() { RegisterFragment("", GET("a", "a")) }); recv == nil {
		t.Error("empty identifier must panic")
	}

	if recv := catchPanic(func() { RegisterFragment("app.nil", nil) }); recv == nil {
		t.Error("nil fragment must panic")
	}

	RegisterFragment("app.dup", GET("a", "a"))

	if recv := catchPanic(func() { RegisterFragment("app.dup", GET("b", "b")) }); recv == nil {
		t.Error("duplicate identifier must panic")
	}
}
