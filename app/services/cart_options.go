package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
)

const (
	maxCartOptionKeys     = 20
	maxCartOptionKeyLen   = 50
	maxCartOptionValueLen = 255
)

// normalizeCartOptions accepts string, number and bool values only. Keys are
// trimmed; nil values are dropped.
func normalizeCartOptions(options map[string]interface{}) (models.CartItemOptions, error) {
	if len(options) == 0 {
		return nil, nil
	}
	if len(options) > maxCartOptionKeys {
		return nil, apperror.NewInvalidFields("Tùy chọn sản phẩm không hợp lệ.", map[string]string{
			"options": fmt.Sprintf("Tối đa %d tùy chọn cho mỗi sản phẩm.", maxCartOptionKeys),
		})
	}

	normalized := make(models.CartItemOptions, len(options))
	for key, value := range options {
		key = strings.TrimSpace(key)
		if key == "" || len(key) > maxCartOptionKeyLen {
			return nil, apperror.NewInvalidFields("Tùy chọn sản phẩm không hợp lệ.", map[string]string{
				"options": "Tên tùy chọn không được để trống và không quá 50 ký tự.",
			})
		}

		switch v := value.(type) {
		case nil:
			continue
		case string:
			if len(v) > maxCartOptionValueLen {
				return nil, apperror.NewInvalidFields("Tùy chọn sản phẩm không hợp lệ.", map[string]string{
					"options." + key: "Giá trị tùy chọn quá dài.",
				})
			}
			normalized[key] = v
		case bool, float64, float32, int, int32, int64:
			normalized[key] = v
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, apperror.NewInvalidFields("Tùy chọn sản phẩm không hợp lệ.", map[string]string{
					"options." + key: "Giá trị số không hợp lệ.",
				})
			}
			normalized[key] = f
		default:
			return nil, apperror.NewInvalidFields("Tùy chọn sản phẩm không hợp lệ.", map[string]string{
				"options." + key: "Chỉ chấp nhận giá trị chữ, số hoặc đúng/sai.",
			})
		}
	}

	if len(normalized) == 0 {
		return nil, nil
	}
	return normalized, nil
}
