package store

import (
	"github.com/mitchellh/mapstructure"
)

// DecodeRow copies a row into the struct pointed to by out, matching
// columns to `db` tags. Values are weakly typed so 0/1 columns land in
// bool fields and driver strings in numeric ones.
func DecodeRow(row Row, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]interface{}(row))
}
