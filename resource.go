package routr

// ResourceHandlers holds the target handlers of a container-resource
// API. Nil entries skip the corresponding route.
type ResourceHandlers struct {
	List    interface{}
	Create  interface{}
	Get     interface{}
	Replace interface{}
	Update  interface{}
	Delete  interface{}
}

// Resource builds the conventional route group of a container resource:
// collection-level list/create endpoints plus an "{id}" subgroup with
// get/replace/update/delete. Route names derive from the resource name,
// e.g. "list-news" or "get-news". It panics if no handler is set.
func Resource(name, pattern string, h ResourceHandlers) *Group {
	var children []Route

	if h.List != nil {
		children = append(children, GET("", h.List, WithName("list-"+name)))
	}

	if h.Create != nil {
		children = append(children, POST("", h.Create, WithName("create-"+name)))
	}

	var item []Route

	if h.Get != nil {
		item = append(item, GET("", h.Get, WithName("get-"+name)))
	}

	if h.Replace != nil {
		item = append(item, PUT("", h.Replace, WithName("replace-"+name)))
	}

	if h.Update != nil {
		item = append(item, PATCH("", h.Update, WithName("update-"+name)))
	}

	if h.Delete != nil {
		item = append(item, DELETE("", h.Delete, WithName("delete-"+name)))
	}

	if len(item) > 0 {
		children = append(children, NewGroup("{id}", item...))
	}

	if len(children) == 0 {
		panic(&ConfigurationError{Reason: "resource '" + name + "' defines no handlers"})
	}

	return NewGroup(pattern, children...)
}
