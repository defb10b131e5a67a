package schema

import (
	"net/url"
	"reflect"
	"strconv"

	"github.com/routr-go/routr"
)

type bindQuery struct {
	key     string
	factory func() interface{}
}

// BindQuery returns a guard that binds the request's query parameters
// into a fresh struct produced by factory, validates it with the
// struct's validator tags and stores it as a trace payload entry under
// key. Fields bind by their 'query' tag, falling back to the field
// name.
//
// The factory must produce a pointer to a struct; anything else panics
// at construction time.
func BindQuery(key string, factory func() interface{}) routr.Guard {
	if key == "" {
		guardPanic("schema: BindQuery requires a payload key")
	}

	probe := reflect.ValueOf(factory())
	if probe.Kind() != reflect.Ptr || probe.IsNil() || probe.Elem().Kind() != reflect.Struct {
		guardPanic("schema: BindQuery factory must produce a non-nil struct pointer, got %s", probe.Kind())
	}

	return bindQuery{key: key, factory: factory}
}

func (g bindQuery) Check(req routr.Request, tr *routr.Trace) error {
	dst := g.factory()

	if err := bindValues(reflect.ValueOf(dst).Elem(), queryOf(req)); err != nil {
		return err
	}

	if err := validate.Struct(dst); err != nil {
		return &BadRequestError{Param: g.key, Reason: err.Error()}
	}

	tr.SetValue(g.key, dst)

	return nil
}

func bindValues(v reflect.Value, values url.Values) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		if field.Anonymous && fieldValue.Kind() == reflect.Struct {
			if err := bindValues(fieldValue, values); err != nil {
				return err
			}

			continue
		}

		tag := field.Tag.Get("query")
		if tag == "" {
			tag = field.Name
		}

		vs, ok := values[tag]
		if !ok || len(vs) == 0 {
			continue
		}

		if err := setField(fieldValue, tag, vs); err != nil {
			return err
		}
	}

	return nil
}

func setField(field reflect.Value, name string, values []string) error {
	if field.Kind() == reflect.Ptr {
		elem := reflect.New(field.Type().Elem())
		if err := setField(elem.Elem(), name, values); err != nil {
			return err
		}

		field.Set(elem)

		return nil
	}

	raw := values[0]

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || field.OverflowInt(n) {
			return &BadRequestError{Param: name, Reason: "malformed value '" + raw + "'"}
		}

		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || field.OverflowUint(n) {
			return &BadRequestError{Param: name, Reason: "malformed value '" + raw + "'"}
		}

		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || field.OverflowFloat(f) {
			return &BadRequestError{Param: name, Reason: "malformed value '" + raw + "'"}
		}

		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &BadRequestError{Param: name, Reason: "malformed value '" + raw + "'"}
		}

		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}

		field.Set(reflect.ValueOf(values))
	}

	return nil
}
