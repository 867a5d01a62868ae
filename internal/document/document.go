// Package document provides tolerant traversal over decoded JSON bodies.
// Each accessor is an isolated lookup returning an ok-bool, so one missing
// or mistyped field never disturbs the extraction of another.
package document

import "encoding/json"

// Doc is a decoded JSON object.
type Doc map[string]interface{}

// Parse decodes raw JSON into a Doc.
func Parse(raw []byte) (Doc, error) {
	var d Doc
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get walks a path of string keys and int array indices. It returns
// (nil, false) on a missing key, an out-of-range index, or a wrong type
// anywhere along the path.
func (d Doc) Get(path ...interface{}) (interface{}, bool) {
	var cur interface{} = map[string]interface{}(d)
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]interface{})
			if !ok {
				return nil, false
			}
			cur, ok = obj[key]
			if !ok {
				return nil, false
			}
		case int:
			arr, ok := cur.([]interface{})
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
	}
	return cur, true
}

// String returns the string at path.
func (d Doc) String(path ...interface{}) (string, bool) {
	v, ok := d.Get(path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns the number at path. JSON numbers decode as float64.
func (d Doc) Float(path ...interface{}) (float64, bool) {
	v, ok := d.Get(path...)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Bool returns the boolean at path.
func (d Doc) Bool(path ...interface{}) (bool, bool) {
	v, ok := d.Get(path...)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
