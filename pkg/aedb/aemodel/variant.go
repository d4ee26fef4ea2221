package aemodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// VariantRecord is one alternate appearance for an actor's tokens.
type VariantRecord struct {
	ImagePath  string `json:"path"`
	EffectPath string `json:"effect"`
	Size       Size   `json:"size"`
}

// VariantList is the ordered set of appearances a token cycles through.
type VariantList []VariantRecord

func NewVariantRecord(imagePath, effectPath, size string) VariantRecord {
	return VariantRecord{
		ImagePath:  strings.TrimSpace(imagePath),
		EffectPath: strings.TrimSpace(effectPath),
		Size:       ParseSize(size),
	}
}

func (r VariantRecord) HasEffect() bool {
	return r.EffectPath != ""
}

func (r VariantRecord) Scale() float64 {
	return r.Size.Scale()
}

func (l VariantList) Empty() bool {
	return len(l) == 0
}

// DecodeVariantList reads the persisted token_images value. Entries may be
// records ({path, effect, size}) or, for lists written by older versions,
// bare image path strings. Both decode to VariantRecord; entries without an
// image path and anything else are skipped. A blank or null value is an
// empty list.
func DecodeVariantList(raw []byte) (VariantList, error) {
	list := VariantList{}

	if len(bytes.TrimSpace(raw)) == 0 {
		return list, nil
	}

	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("token images are not valid json")
	}

	result := gjson.ParseBytes(raw)
	switch {
	case result.Type == gjson.Null:
		return list, nil
	case !result.IsArray():
		return nil, fmt.Errorf("token images must be a json array, got %s", result.Type)
	}

	result.ForEach(func(_, entry gjson.Result) bool {
		var record VariantRecord
		switch {
		case entry.Type == gjson.String:
			record = VariantRecord{ImagePath: strings.TrimSpace(entry.String()), Size: SizeMedium}
		case entry.IsObject():
			record = VariantRecord{
				ImagePath:  strings.TrimSpace(entry.Get("path").String()),
				EffectPath: strings.TrimSpace(entry.Get("effect").String()),
				Size:       ParseSize(entry.Get("size").String()),
			}
		default:
			return true
		}

		if record.ImagePath != "" {
			list = append(list, record)
		}
		return true
	})

	return list, nil
}

// EncodeVariantList writes the canonical record form. A nil list encodes as [].
func EncodeVariantList(list VariantList) ([]byte, error) {
	if list == nil {
		list = VariantList{}
	}

	return json.Marshal(list)
}
