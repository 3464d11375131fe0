package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// JSONResponse sends a JSON response and ensures slices are never null.
//
// Encoding nil slices as "null" breaks clients that iterate role lists and
// tracker rows, so every payload goes through normalizeSlices first.
func JSONResponse(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(normalizeSlices(data))
}

// normalizeSlices recursively ensures all nil slices become empty slices
func normalizeSlices(data any) any {
	if data == nil {
		return data
	}
	v := normalizeValue(reflect.ValueOf(data))
	if !v.IsValid() {
		return data
	}
	return v.Interface()
}

func normalizeValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() || v.Elem().Type() == timeType {
			return v
		}
		result := reflect.New(v.Elem().Type())
		result.Elem().Set(normalizeValue(v.Elem()))
		return result

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		return normalizeValue(v.Elem())

	case reflect.Slice:
		if v.IsNil() {
			return reflect.MakeSlice(v.Type(), 0, 0)
		}
		result := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			result.Index(i).Set(convert(normalizeValue(v.Index(i)), v.Type().Elem()))
		}
		return result

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		result := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			result.SetMapIndex(iter.Key(), convert(normalizeValue(iter.Value()), v.Type().Elem()))
		}
		return result

	case reflect.Struct:
		if v.Type() == timeType {
			return v
		}
		result := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !v.Type().Field(i).IsExported() {
				continue
			}
			result.Field(i).Set(convert(normalizeValue(field), field.Type()))
		}
		return result
	}
	return v
}

// convert restores the declared type after an interface was unwrapped
func convert(v reflect.Value, to reflect.Type) reflect.Value {
	if !v.IsValid() {
		return reflect.Zero(to)
	}
	if v.Type() == to {
		return v
	}
	if to.Kind() == reflect.Interface {
		wrapped := reflect.New(to).Elem()
		wrapped.Set(v)
		return wrapped
	}
	return v.Convert(to)
}
