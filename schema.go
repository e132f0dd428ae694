package fluentpg

import (
	"fmt"
	"strconv"
	"strings"
)

/*
=======================================================================================================================
 🏗️ SCHEMA — Alan Tanımlarından DDL'e 🏗️

 Bu dosya, FieldSpec listelerini PostgreSQL DDL metnine çeviren şema
 katmanını içerir. Aynı render kuralları hem CREATE TABLE hem de
 ALTER TABLE ADD COLUMN tarafında kullanılır; tek doğruluk kaynağı budur.

 Bir kolon tanımı şu parçalardan oluşur:

   🔸 ad + tip            → name VARCHAR
   🔸 uzunluk / hassasiyet → VARCHAR(255), DECIMAL(10,2)
   🔸 varsayılan değer     → DEFAULT 0, DEFAULT 'x' (SQL tip ailesine göre)
   🔸 satır içi kısıtlar   → PRIMARY KEY, UNIQUE
   🔸 autoincrement        → SERIAL / BIGSERIAL eşlemesi

 FOREIGN KEY kısıtları kolon tanımının içine değil, tüm kolonlardan sonra
 ayrı kısıt satırları olarak eklenir.

 @author    Ahmet ALTUN
 @github    github.com/biyonik
 @linkedin  linkedin.com/in/biyonik
 @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// FieldSpec, bir tablo kolonunun istenen tanımıdır. Hem tablo oluşturma hem
// de kolon ekleme/düzenleme işlemlerinde kullanılır.
//
// Name ve Type zorunludur; eksiklik I/O yapılmadan ErrMissingFieldSpec
// üretir. Length tek başına VARCHAR(n) gibi, Scale ile birlikte
// DECIMAL(p,s) gibi yazılır.
type FieldSpec struct {
	Name       string      // Kolon adı (zorunlu)
	Type       string      // SQL tipi, ör. "VARCHAR", "INT" (zorunlu)
	Length     int         // Uzunluk veya precision (0 = yok)
	Scale      int         // Ondalık hassasiyet (Length ile birlikte anlamlı)
	Default    any         // Varsayılan değer; nil = DEFAULT yazılmaz
	Options    []string    // "primary", "unique", "autoincrement"
	ForeignKey *ForeignKey // Varsa, tablo sonuna kısıt olarak eklenir
}

// ForeignKey, bir kolonun başka bir tabloya referansını tanımlar.
// OnDelete ve OnUpdate isteğe bağlıdır ("CASCADE", "SET NULL", ...).
type ForeignKey struct {
	Table    string
	Column   string
	OnDelete string
	OnUpdate string
}

// hasOption, seçenek listesinde verilen anahtarın (büyük/küçük harf
// duyarsız) olup olmadığına bakar.
func (f FieldSpec) hasOption(name string) bool {
	for _, opt := range f.Options {
		if strings.EqualFold(opt, name) {
			return true
		}
	}
	return false
}

// validate, zorunlu alanları denetler.
func (f FieldSpec) validate() error {
	if f.Name == "" || f.Type == "" {
		return fmt.Errorf("%w: name=%q type=%q", ErrMissingFieldSpec, f.Name, f.Type)
	}
	return nil
}

// numericFamilies, DEFAULT değerlerinin tırnaksız yazıldığı SQL tip aileleridir.
var numericFamilies = []string{
	"INT", "INTEGER", "SMALLINT", "BIGINT", "SERIAL", "BIGSERIAL",
	"DECIMAL", "NUMERIC", "REAL", "FLOAT", "DOUBLE",
	"BOOL", "BOOLEAN",
}

// isNumericType, tipin sayısal/boolean ailesinden olup olmadığını belirler.
func isNumericType(sqlType string) bool {
	upper := strings.ToUpper(sqlType)
	for _, family := range numericFamilies {
		if strings.HasPrefix(upper, family) {
			return true
		}
	}
	return false
}

// defaultLiteral, DEFAULT değerini SQL tip ailesine göre biçimler.
// Sayısal ve boolean tiplerde değer tırnaksız yazılır; diğer her şey
// Literal kurallarından geçer.
func defaultLiteral(sqlType string, value any) string {
	if isNumericType(sqlType) {
		return fmt.Sprint(value)
	}
	return Literal(value)
}

// renderType, tip + uzunluk/hassasiyet parçasını üretir. autoincrement
// seçeneği tamsayı tiplerini PostgreSQL SERIAL karşılıklarına eşler.
func renderType(f FieldSpec) string {
	if f.hasOption("autoincrement") {
		if strings.EqualFold(f.Type, "BIGINT") {
			return "BIGSERIAL"
		}
		return "SERIAL"
	}
	t := strings.ToUpper(f.Type)
	if f.Length > 0 {
		if f.Scale > 0 {
			return t + "(" + strconv.Itoa(f.Length) + "," + strconv.Itoa(f.Scale) + ")"
		}
		return t + "(" + strconv.Itoa(f.Length) + ")"
	}
	return t
}

// renderColumnDef, tek bir kolonun tam tanımını üretir:
//
//	name TYPE[(n[,s])] [DEFAULT lit] [PRIMARY KEY] [UNIQUE]
func renderColumnDef(f FieldSpec) (string, error) {
	if err := f.validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteString(" ")
	sb.WriteString(renderType(f))

	if f.Default != nil {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(defaultLiteral(f.Type, f.Default))
	}
	if f.hasOption("primary") {
		sb.WriteString(" PRIMARY KEY")
	}
	if f.hasOption("unique") {
		sb.WriteString(" UNIQUE")
	}
	return sb.String(), nil
}

// renderForeignKey, tablo sonuna eklenen kısıt satırını üretir:
//
//	FOREIGN KEY (col) REFERENCES "other" (id) [ON DELETE ...] [ON UPDATE ...]
func renderForeignKey(column string, fk *ForeignKey) string {
	var sb strings.Builder
	sb.WriteString("FOREIGN KEY (")
	sb.WriteString(column)
	sb.WriteString(") REFERENCES ")
	sb.WriteString(quoteTable(fk.Table))
	sb.WriteString(" (")
	sb.WriteString(fk.Column)
	sb.WriteString(")")
	if fk.OnDelete != "" {
		sb.WriteString(" ON DELETE ")
		sb.WriteString(strings.ToUpper(fk.OnDelete))
	}
	if fk.OnUpdate != "" {
		sb.WriteString(" ON UPDATE ")
		sb.WriteString(strings.ToUpper(fk.OnUpdate))
	}
	return sb.String()
}

// renderCreateTable, tam CREATE TABLE ifadesini üretir. Kolon tanımları
// verilen sırayla yazılır; FOREIGN KEY kısıtları tüm kolonlardan sonra gelir.
func renderCreateTable(table string, fields []FieldSpec) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: create requires at least one field", ErrMissingFieldSpec)
	}

	defs := make([]string, 0, len(fields))
	var constraints []string

	for _, f := range fields {
		def, err := renderColumnDef(f)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
		if f.ForeignKey != nil {
			constraints = append(constraints, renderForeignKey(f.Name, f.ForeignKey))
		}
	}
	defs = append(defs, constraints...)

	return "CREATE TABLE IF NOT EXISTS " + quoteTable(table) +
		" (" + strings.Join(defs, ", ") + ")", nil
}
