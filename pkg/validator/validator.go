// Package validator 字段格式校验
//
// 所有函数都是纯函数：不修改入参、不panic，只返回bool。
// 业务层按固定顺序调用，第一个失败即返回（fail-fast）。
package validator

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReleaseDateLayout 发布日期格式（YYYY-MM-DD）
const ReleaseDateLayout = "2006-01-02"

var (
	emailRegex   = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)
	phoneRegex   = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10}$`)
	pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{2}\s?[0-9]{3}$`)
	relAtRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isbnStrip    = regexp.MustCompile(`[-\s]`)
	digitsRegex  = regexp.MustCompile(`^\d+$`)
)

// 密码长度窗口（闭区间）
const (
	PasswordMinLen = 8
	PasswordMaxLen = 15
)

// Titles 用户称谓枚举
var Titles = []string{"Mr", "Mrs", "Miss"}

// IsValid 判断值是否"存在"
// nil与空白字符串无效；0、false等非字符串零值视为有效
func IsValid(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case *string:
		return val != nil && strings.TrimSpace(*val) != ""
	case json.RawMessage:
		raw := strings.TrimSpace(string(val))
		return raw != "" && raw != "null" && raw != `""` && strings.TrimSpace(strings.Trim(raw, `"`)) != ""
	default:
		return true
	}
}

// IsValidReqBody 请求体至少包含一个键
func IsValidReqBody(body map[string]json.RawMessage) bool {
	return len(body) > 0
}

// IsValidObjectID 24位十六进制ID
func IsValidObjectID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// IsValidEmail 邮箱格式
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone 10位手机号，可带国际区号
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidPincode 6位邮编，首位非0，中间可有一个空白
func IsValidPincode(pincode string) bool {
	return pincodeRegex.MatchString(pincode)
}

// IsValidISBN 去掉连字符和空白后为10位或13位数字
func IsValidISBN(isbn string) bool {
	clean := isbnStrip.ReplaceAllString(isbn, "")
	if len(clean) != 10 && len(clean) != 13 {
		return false
	}
	return digitsRegex.MatchString(clean)
}

// IsValidRelAt YYYY-MM-DD且为真实日期
func IsValidRelAt(date string) bool {
	if !relAtRegex.MatchString(date) {
		return false
	}
	_, err := time.Parse(ReleaseDateLayout, date)
	return err == nil
}

// IsValidPassword 长度在[8,15]之间
func IsValidPassword(password string) bool {
	n := len(password)
	return n >= PasswordMinLen && n <= PasswordMaxLen
}

// IsValidRating 1-5之间的整数
func IsValidRating(rating float64) bool {
	if math.IsNaN(rating) || rating != math.Trunc(rating) {
		return false
	}
	return rating >= 1 && rating <= 5
}

// IsValidTitle 称谓必须是Mr/Mrs/Miss之一
func IsValidTitle(title string) bool {
	for _, t := range Titles {
		if title == t {
			return true
		}
	}
	return false
}

// IsNumeric 纯数字字符串
func IsNumeric(s string) bool {
	return digitsRegex.MatchString(strings.TrimSpace(s))
}
