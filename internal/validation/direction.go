// Package validation, SQL metnine girmeden önce doğrulanması gereken
// kullanıcı girdileri için yardımcılar içerir.
package validation

import (
	"errors"
	"strings"
)

// ErrDirection, ASC/DESC dışında bir sıralama yönü verildiğinde döner.
var ErrDirection = errors.New("validation: direction must be ASC or DESC")

// NormalizeDirection, sıralama yönünü büyük/küçük harf duyarsız doğrular
// ve kanonik büyük harfli halini döndürür.
func NormalizeDirection(direction string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(direction)) {
	case "ASC":
		return "ASC", nil
	case "DESC":
		return "DESC", nil
	default:
		return "", ErrDirection
	}
}
