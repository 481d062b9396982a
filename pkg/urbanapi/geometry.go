package urbanapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

var ErrUnexpectedDimensions = errors.New("unexpected coordinate dimensions")

// Geometry is a GeoJSON-style selection zone
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Dimensions returns the nesting depth of a coordinate list: a list is one
// deeper than its deepest element. Anything that is not a non-empty list
// ending in numbers at every leaf has depth 0.
func Dimensions(v any) int {
	d, ok := depth(v)
	if !ok {
		return 0
	}
	return d
}

func depth(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	if _, ok := v.(json.Number); ok {
		return 0, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 0, true
	case reflect.Slice, reflect.Array:
	default:
		return 0, false
	}
	if rv.Len() == 0 {
		return 0, false
	}
	deepest := 0
	for i := 0; i < rv.Len(); i++ {
		d, ok := depth(rv.Index(i).Interface())
		if !ok {
			return 0, false
		}
		deepest = max(deepest, d)
	}
	return 1 + deepest, true
}

// GeometryType maps nesting depth to a geometry name
func GeometryType(coords any) (string, error) {
	switch n := Dimensions(coords); n {
	case 1:
		return "Point", nil
	case 2:
		return "LineString", nil
	case 3:
		return "Polygon", nil
	case 4:
		return "MultiPolygon", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnexpectedDimensions, n)
	}
}

// TypedGeometry wraps raw coordinates with their derived geometry type
func TypedGeometry(coords any) (Geometry, error) {
	t, err := GeometryType(coords)
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{Type: t, Coordinates: coords}, nil
}
