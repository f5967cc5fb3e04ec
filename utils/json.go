package utils

import jsoniter "github.com/json-iterator/go"

// sorted map keys keep stats output stable between calls
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToJSONBytes marshals o, falling back to defaultVal when o cannot be encoded.
func ToJSONBytes(o interface{}, defaultVal string) []byte {
	js, err := json.Marshal(o)
	if err != nil {
		return []byte(defaultVal)
	}
	return js
}
