package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Register 将自定义规则注册到go-playground/validator
// 注册后可在binding tag中使用：objectid、isbn、reldate、objectid_or_blank
// objectid_or_blank用于过滤参数，只含空白的值视为未填写
//
//	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
//	    _ = pkgvalidator.Register(v)
//	}
func Register(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"objectid":          IsValidObjectID,
		"isbn":              IsValidISBN,
		"reldate":           IsValidRelAt,
		"objectid_or_blank": isBlankOrObjectID,
	}
	for tag, fn := range rules {
		check := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

func isBlankOrObjectID(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || IsValidObjectID(s)
}
