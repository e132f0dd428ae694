package fluentpg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

/*
=======================================================================================================================
 💠 CONDITIONS — WHERE Ağacının Kalbi 💠

 Bu dosya, sorgunun en çok durum taşıyan parçasını temsil eder: koşul modeli.

 Bir WHERE cümlesi aslında sıralı bir düğüm listesidir:

   🔸 basit karşılaştırmalar  → age > 18
   🔸 aralıklar               → age BETWEEN 18 AND 65
   🔸 kümeler                 → status IN ('active', 'pending')
   🔸 NULL kontrolleri        → deleted_at IS NULL
   🔸 parantezli gruplar      → (a = 1 OR b = 2)

 Her düğüm, kendinden önceki düğüme AND veya OR ile bağlanır. İlk düğüm
 bağlaçsız yazılır; sonrakiler kendi bağlaçlarıyla öne eklenir. Ekleme sırası
 aynı zamanda yazım sırasıdır — burada sıralama anlamın kendisidir.

 Or() çağrısı "bir sonraki eklenen koşul için" bağlacı OR yapar; koşul
 eklendiği anda bağlaç AND'e geri döner. OrWhere bu üçlünün tek çağrılık
 kısayoludur.

 Conditions bağımsız bir yapıdır: bağlantıya ihtiyaç duymaz, yalnızca metin
 üretir. WhereGroup bu sayede tam bir Builder kurmak yerine boş bir Conditions
 ile alt ağacı toplar ve sonucu tek bir grup düğümü olarak ekler.

 ⚠ Değerler literal olarak gömülür: string'ler tek tırnakla sarılır ve
 kaçış YAPILMAZ. Bu bir tasarım sınırıdır (bkz. doc.go / Security) —
 güvenilmeyen girdi bu katmana asla ulaşmamalıdır.

 @author    Ahmet ALTUN
 @github    github.com/biyonik
 @linkedin  linkedin.com/in/biyonik
 @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// condKind, koşul düğümünün türünü belirtir.
type condKind int

const (
	condBasic condKind = iota
	condBetween
	condIn
	condNull
	condNotNull
	condGroup
)

// boolAnd ve boolOr, düğümleri birbirine bağlayan bağlaç kelimeleridir.
const (
	boolAnd = "AND"
	boolOr  = "OR"
)

// conditionNode, WHERE ağacındaki tek bir yaprağı veya grubu temsil eder.
// Yaprak düğümler column/operator/value taşır; grup düğümleri önceden
// derlenmiş alt ifadeyi group alanında tutar.
type conditionNode struct {
	kind     condKind
	boolean  string // Bu düğümü öncekine bağlayan bağlaç (AND/OR)
	column   string
	operator string
	value    any
	values   []any  // BETWEEN ve IN için çoklu değerler
	group    string // Grup düğümleri için derlenmiş alt ifade
}

// Conditions, sıralı koşul düğümü listesini ve "bir sonraki" bağlaç durumunu
// yönetir. Builder'ın WHERE yüzeyi bu yapıya delege eder; WhereGroup ise
// bağlantısız, salt-metin modunda bağımsız olarak kullanır.
type Conditions struct {
	nodes []conditionNode
	next  string // Bir sonraki eklenen koşulun bağlacı
}

// NewConditions, boş bir koşul listesi oluşturur. Bağlantı gerektirmez.
func NewConditions() *Conditions {
	return &Conditions{next: boolAnd}
}

// take, bekleyen bağlacı tüketir ve varsayılana (AND) döndürür.
func (c *Conditions) take() string {
	b := c.next
	c.next = boolAnd
	return b
}

// Or, bir sonraki eklenecek koşulun bağlacını OR yapar.
// Etkisi tek koşulluktur; koşul eklendiğinde bağlaç AND'e sıfırlanır.
func (c *Conditions) Or() *Conditions {
	c.next = boolOr
	return c
}

// And, bekleyen bağlacı varsayılan AND değerine döndürür.
func (c *Conditions) And() *Conditions {
	c.next = boolAnd
	return c
}

// Where, temel bir karşılaştırma koşulu ekler.
func (c *Conditions) Where(column, operator string, value any) *Conditions {
	c.nodes = append(c.nodes, conditionNode{
		kind:     condBasic,
		boolean:  c.take(),
		column:   column,
		operator: operator,
		value:    value,
	})
	return c
}

// OrWhere, "bağlacı OR yap, koşulu ekle, AND'e dön" üçlüsünün kısayoludur.
func (c *Conditions) OrWhere(column, operator string, value any) *Conditions {
	return c.Or().Where(column, operator, value)
}

// WhereBetween, BETWEEN koşulu ekler. Tam olarak iki tanımlı değer
// verilmediğinde hiçbir şey eklemez — hata da üretmez. Bu bağışlayıcı
// davranış bilinçli olarak korunmaktadır; çağıranlar buna güvenebilir.
func (c *Conditions) WhereBetween(column string, values []any) *Conditions {
	if len(values) != 2 || values[0] == nil || values[1] == nil {
		return c
	}
	c.nodes = append(c.nodes, conditionNode{
		kind:    condBetween,
		boolean: c.take(),
		column:  column,
		values:  values,
	})
	return c
}

// WhereIn, IN koşulu ekler. Boş liste verildiğinde sessizce atlanır;
// WhereBetween ile aynı bağışlayıcı sözleşme geçerlidir.
func (c *Conditions) WhereIn(column string, values []any) *Conditions {
	if len(values) == 0 {
		return c
	}
	c.nodes = append(c.nodes, conditionNode{
		kind:    condIn,
		boolean: c.take(),
		column:  column,
		values:  values,
	})
	return c
}

// WhereNull, IS NULL kontrolü ekler.
func (c *Conditions) WhereNull(column string) *Conditions {
	c.nodes = append(c.nodes, conditionNode{
		kind:    condNull,
		boolean: c.take(),
		column:  column,
	})
	return c
}

// WhereNotNull, IS NOT NULL kontrolü ekler.
func (c *Conditions) WhereNotNull(column string) *Conditions {
	c.nodes = append(c.nodes, conditionNode{
		kind:    condNotNull,
		boolean: c.take(),
		column:  column,
	})
	return c
}

// Group, fn içinde bağımsız bir Conditions ile toplanan alt koşulları
// parantezli tek bir grup düğümü olarak ekler. Grup, eklendiği andaki
// bekleyen bağlacı tıpkı basit bir koşul gibi tüketir.
// Boş kalan gruplar eklenmez.
func (c *Conditions) Group(fn func(*Conditions)) *Conditions {
	sub := NewConditions()
	fn(sub)
	if sub.Len() == 0 {
		return c
	}
	c.nodes = append(c.nodes, conditionNode{
		kind:    condGroup,
		boolean: c.take(),
		group:   sub.Build(),
	})
	return c
}

// Len, eklenmiş koşul düğümü sayısını döndürür.
func (c *Conditions) Len() int {
	return len(c.nodes)
}

// Build, düğüm listesini WHERE gövdesine çevirir. İlk düğüm bağlaçsız,
// sonraki her düğüm " AND " veya " OR " önekiyle yazılır. Deterministiktir
// ve durumu değiştirmez; istenildiği kadar çağrılabilir.
func (c *Conditions) Build() string {
	var sb strings.Builder
	for i, node := range c.nodes {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(node.boolean)
			sb.WriteString(" ")
		}
		sb.WriteString(renderNode(node))
	}
	return sb.String()
}

// renderNode, tek bir düğümü SQL parçasına dönüştürür.
func renderNode(node conditionNode) string {
	switch node.kind {
	case condBetween:
		return node.column + " BETWEEN " + Literal(node.values[0]) + " AND " + Literal(node.values[1])
	case condIn:
		parts := make([]string, len(node.values))
		for i, v := range node.values {
			parts[i] = Literal(v)
		}
		return node.column + " IN (" + strings.Join(parts, ", ") + ")"
	case condNull:
		return node.column + " IS NULL"
	case condNotNull:
		return node.column + " IS NOT NULL"
	case condGroup:
		return "(" + node.group + ")"
	default:
		return node.column + " " + node.operator + " " + Literal(node.value)
	}
}

// ----------------------------------------------------------------------------
// Literal rendering
// ----------------------------------------------------------------------------

// literalDateFormat, time.Time değerlerinin SQL literal'ine çevrilirken
// kullanılan formattır.
const literalDateFormat = "2006-01-02 15:04:05"

// Literal, bir Go değerini SQL literal'ine çevirir.
//
// Kurallar: string'ler tek tırnakla sarılır (kaçış YOK), sayılar ve bool
// değerler olduğu gibi yazılır, nil NULL olur, time.Time tırnaklı tarih
// olarak biçimlenir. Tanınmayan tipler fmt üzerinden string'e çevrilip
// tırnaklanır.
func Literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + v + "'"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return "'" + v.Format(literalDateFormat) + "'"
	default:
		return "'" + fmt.Sprint(v) + "'"
	}
}
