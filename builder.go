package fluentpg

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/biyonik/go-fluent-pg/internal/validation"
)

// Builder, SQL sorgularını akıcı bir arayüz (fluent interface) ile oluşturmak
// için kullanılan ana sınıftır.
//
// go-fluent-sql'deki Builder ile aynı soydan gelir; fark, sorgunun grammar
// katmanına devredilmek yerine doğrudan PostgreSQL metni olarak burada
// üretilmesidir. Builder tablo başına değişken durumlu bir makinedir:
// zincirli çağrılar yalnızca durumu değiştirir (I/O yapılmaz), uç operasyonlar
// (Get, First, Insert, Update, Delete, Create, Drop) SQL'i derleyip bağlantı
// sağlayıcısı üzerinden çalıştırır.
//
// Bir Builder tek bir sorgu için yaşar: oluştur, zincirle, bir kez tüket.
// Koşul ekleyen uç operasyonlardan (Find) sonra yeniden kullanım güvenli
// değildir. Builder örnekleri **concurrent-safe** değildir.
//
// Genel kullanım örneği:
//
//	rows, err := db.Table("users").
//	    Select("id", "name").
//	    Where("status", "=", "active").
//	    OrderBy("created_at", "DESC").
//	    Limit(10).
//	    Get(ctx)
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type Builder struct {
	db *DB

	// Table and base clause
	table string
	base  string // Mevcut taban cümle: projeksiyon veya aggregate metni

	// Query state
	distinct bool
	conds    *Conditions
	joins    []string
	orders   []orderSpec
	groupBy  []string

	// Pagination
	limit *int
	page  *int

	// Accumulated error
	err error
}

// orderSpec, tek bir ORDER BY girdisini temsil eder. Ekleme sırası korunur.
type orderSpec struct {
	column    string
	direction string
}

// aggregatePrefixes, taban cümlenin aggregate moduna geçip geçmediğini
// anlamak için kullanılan metin önekleridir. ORDER BY bu modlarda bastırılır;
// tek satırlık bir aggregate sonucunu sıralamak anlamsızdır.
var aggregatePrefixes = []string{
	"SELECT COUNT(",
	"SELECT SUM(",
	"SELECT AVG(",
	"SELECT MAX(",
	"SELECT MIN(",
}

// NewBuilder, verilen bağlantı sağlayıcısına bağlı yeni bir Builder oluşturur.
// db nil olabilir; bu durumda Builder yalnızca SQL metni üretmek için kullanılır.
func NewBuilder(db *DB) *Builder {
	return &Builder{
		db:    db,
		conds: NewConditions(),
	}
}

// New, bağlantısız bir Builder oluşturur. SQL stringleri üretmek ve sorgu
// yürütmeden hazırlık yapmak için kullanılır.
//
// Örnek:
//
//	sql := fluentpg.New().Table("users").Where("id", "=", 5).BuildQuery()
func New() *Builder {
	return NewBuilder(nil)
}

// Table, sorgunun hedef tablosunu ayarlar ve taban cümleyi kurar.
func (b *Builder) Table(name string) *Builder {
	b.table = name
	b.base = b.selectPrefix() + "* FROM " + quoteTable(name)
	return b
}

// quoteTable, tablo adını PostgreSQL çift tırnaklarıyla sarar.
// Kolon adları bilinçli olarak sarılmaz; bkz. doc.go / Security.
func quoteTable(name string) string {
	return `"` + name + `"`
}

// selectPrefix, distinct bayrağına göre SELECT önekini döndürür.
func (b *Builder) selectPrefix() string {
	if b.distinct {
		return "SELECT DISTINCT "
	}
	return "SELECT "
}

// fail, ilk oluşan girdi hatasını saklar. Hata, herhangi bir I/O yapılmadan
// önce uç operasyondan yüzeye çıkar.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err, birikmiş hatayı döndürür.
func (b *Builder) Err() error {
	return b.err
}

// ----------------------------------------------------------------------------
// Projection & aggregates
// ----------------------------------------------------------------------------

// Select, taban cümleyi verilen kolon projeksiyonu ile değiştirir.
// Kolon verilmezse varsayılan `SELECT * FROM "t"` korunur. Daha önce
// ayarlanmış DISTINCT bayrağı yeni cümleye taşınır.
func (b *Builder) Select(columns ...string) *Builder {
	if len(columns) == 0 {
		return b
	}
	b.base = b.selectPrefix() + strings.Join(columns, ", ") + " FROM " + quoteTable(b.table)
	return b
}

// Distinct, sorguyu DISTINCT olarak işaretler ve mevcut taban cümleyi
// yeniden yazar. Tekrarlı çağrılar etkisizdir (idempotent). Taban cümle
// aggregate formdaysa çağrı yok sayılır; aksi halde yeniden yazım aggregate
// önekini bozar ve ORDER BY bastırması devre dışı kalırdı.
func (b *Builder) Distinct() *Builder {
	if b.isAggregate() {
		return b
	}
	b.distinct = true
	if !strings.HasPrefix(b.base, "SELECT DISTINCT ") {
		b.base = strings.Replace(b.base, "SELECT ", "SELECT DISTINCT ", 1)
	}
	return b
}

// aggregate, taban cümleyi aggregate projeksiyonuyla tamamen değiştirir.
// Select ve diğer aggregate çağrılarıyla karşılıklı dışlayıcıdır; art arda
// çağrılarda son çağrı kazanır.
func (b *Builder) aggregate(fn, column string) *Builder {
	b.base = "SELECT " + fn + "(" + column + ") AS " + strings.ToLower(fn) + " FROM " + quoteTable(b.table)
	return b
}

// Count, taban cümleyi COUNT projeksiyonuyla değiştirir.
// Kolon verilmezse COUNT(*) kullanılır.
func (b *Builder) Count(column string) *Builder {
	if column == "" {
		column = "*"
	}
	return b.aggregate("COUNT", column)
}

// Sum, taban cümleyi SUM projeksiyonuyla değiştirir.
func (b *Builder) Sum(column string) *Builder {
	return b.aggregate("SUM", column)
}

// Avg, taban cümleyi AVG projeksiyonuyla değiştirir.
func (b *Builder) Avg(column string) *Builder {
	return b.aggregate("AVG", column)
}

// Max, taban cümleyi MAX projeksiyonuyla değiştirir.
func (b *Builder) Max(column string) *Builder {
	return b.aggregate("MAX", column)
}

// Min, taban cümleyi MIN projeksiyonuyla değiştirir.
func (b *Builder) Min(column string) *Builder {
	return b.aggregate("MIN", column)
}

// isAggregate, taban cümlenin aggregate formda olup olmadığını metin öneki
// kontrolüyle belirler.
func (b *Builder) isAggregate() bool {
	for _, prefix := range aggregatePrefixes {
		if strings.HasPrefix(b.base, prefix) {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Conditions (delegated to the Conditions model)
// ----------------------------------------------------------------------------

// Where, temel bir WHERE koşulu ekler.
func (b *Builder) Where(column, operator string, value any) *Builder {
	b.conds.Where(column, operator, value)
	return b
}

// OrWhere, OR bağlacıyla bir WHERE koşulu ekler.
func (b *Builder) OrWhere(column, operator string, value any) *Builder {
	b.conds.OrWhere(column, operator, value)
	return b
}

// Or, bir sonraki koşulun bağlacını OR yapar (tek koşulluk).
func (b *Builder) Or() *Builder {
	b.conds.Or()
	return b
}

// And, bekleyen bağlacı AND'e döndürür.
func (b *Builder) And() *Builder {
	b.conds.And()
	return b
}

// WhereGroup, fn içinde toplanan koşulları parantezli tek bir grup olarak ekler.
func (b *Builder) WhereGroup(fn func(*Conditions)) *Builder {
	b.conds.Group(fn)
	return b
}

// WhereBetween, BETWEEN koşulu ekler. Tam iki değer verilmezse sessizce atlanır.
func (b *Builder) WhereBetween(column string, values []any) *Builder {
	b.conds.WhereBetween(column, values)
	return b
}

// WhereIn, IN koşulu ekler. Boş liste sessizce atlanır.
func (b *Builder) WhereIn(column string, values []any) *Builder {
	b.conds.WhereIn(column, values)
	return b
}

// WhereNull, IS NULL kontrolü ekler.
func (b *Builder) WhereNull(column string) *Builder {
	b.conds.WhereNull(column)
	return b
}

// WhereNotNull, IS NOT NULL kontrolü ekler.
func (b *Builder) WhereNotNull(column string) *Builder {
	b.conds.WhereNotNull(column)
	return b
}

// BuildConditions, birikmiş koşulları WHERE gövdesi olarak derler.
// WHERE anahtar kelimesi dahil değildir; koşul yoksa boş string döner.
func (b *Builder) BuildConditions() string {
	return b.conds.Build()
}

// ----------------------------------------------------------------------------
// Joins, ordering, grouping, pagination
// ----------------------------------------------------------------------------

// join, derlenmiş bir JOIN parçasını listeye ekler. Tablo ve kolonların
// varlığı doğrulanmaz.
func (b *Builder) join(kind, table, first, operator, second string) *Builder {
	b.joins = append(b.joins, kind+" "+quoteTable(table)+" ON "+first+" "+operator+" "+second)
	return b
}

// Join, INNER JOIN ekler.
func (b *Builder) Join(table, first, operator, second string) *Builder {
	return b.join("JOIN", table, first, operator, second)
}

// LeftJoin, LEFT JOIN ekler.
func (b *Builder) LeftJoin(table, first, operator, second string) *Builder {
	return b.join("LEFT JOIN", table, first, operator, second)
}

// RightJoin, RIGHT JOIN ekler.
func (b *Builder) RightJoin(table, first, operator, second string) *Builder {
	return b.join("RIGHT JOIN", table, first, operator, second)
}

// OrderBy, ORDER BY girdisi ekler. Yön büyük/küçük harf duyarsız olarak
// ASC veya DESC olmalıdır; aksi halde girdi hatası birikir ve uç operasyon
// I/O yapmadan bu hatayla döner.
func (b *Builder) OrderBy(column, direction string) *Builder {
	dir, err := validation.NormalizeDirection(direction)
	if err != nil {
		b.fail(fmt.Errorf("%w: %q", ErrInvalidDirection, direction))
		return b
	}
	b.orders = append(b.orders, orderSpec{column: column, direction: dir})
	return b
}

// GroupBy, GROUP BY listesine kolon ekler.
func (b *Builder) GroupBy(column string) *Builder {
	b.groupBy = append(b.groupBy, column)
	return b
}

// Limit, LIMIT değerini ayarlar.
func (b *Builder) Limit(n int) *Builder {
	b.limit = &n
	return b
}

// Page, sayfa numarasını ayarlar. OFFSET derleme anında (page-1)*limit
// olarak hesaplanır; limit ayarlanmamışsa OFFSET hiç yazılmaz.
func (b *Builder) Page(n int) *Builder {
	b.page = &n
	return b
}

// When, koşul doğruysa fn'i builder üzerinde uygular.
func (b *Builder) When(condition bool, fn func(*Builder)) *Builder {
	if condition {
		fn(b)
	}
	return b
}

// ----------------------------------------------------------------------------
// Rendering
// ----------------------------------------------------------------------------

// BuildQuery, mevcut durumdan nihai SQL'i üretir. Saf ve deterministiktir;
// durumu değiştirmez, istenildiği kadar çağrılabilir.
//
// Yazım sırası sabittir: taban cümle → JOIN'ler → WHERE → GROUP BY →
// LIMIT → OFFSET → ORDER BY. ORDER BY, taban cümle aggregate formdaysa
// bastırılır.
func (b *Builder) BuildQuery() string {
	var sb strings.Builder
	sb.WriteString(b.base)

	for _, join := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(join)
	}

	if b.conds.Len() > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.conds.Build())
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if b.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*b.limit))
		if b.page != nil {
			// Sayfa 1'den sayılır; 0 veya negatif sayfa ilk sayfaya
			// sabitlenir. PostgreSQL negatif OFFSET kabul etmez.
			offset := (*b.page - 1) * *b.limit
			if offset < 0 {
				offset = 0
			}
			sb.WriteString(" OFFSET ")
			sb.WriteString(strconv.Itoa(offset))
		}
	}

	if len(b.orders) > 0 && !b.isAggregate() {
		sb.WriteString(" ORDER BY ")
		parts := make([]string, len(b.orders))
		for i, o := range b.orders {
			parts[i] = o.column + " " + o.direction
		}
		sb.WriteString(strings.Join(parts, ", "))
	}

	return sb.String()
}

// ready, uç operasyonların ortak ön kontrolüdür: birikmiş girdi hatası,
// tablo ve bağlantı denetlenir. I/O'dan önce çalışır.
func (b *Builder) ready() error {
	if b.err != nil {
		return b.err
	}
	if b.table == "" {
		return ErrNoTable
	}
	if b.db == nil {
		return ErrNoConnection
	}
	return nil
}

// ----------------------------------------------------------------------------
// Terminal operations
// ----------------------------------------------------------------------------

// Get, derlenen sorguyu çalıştırır ve tüm sonuç satırlarını döndürür.
// Sonuç yoksa boş liste döner.
func (b *Builder) Get(ctx context.Context) ([]Row, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	return b.db.runQuery(ctx, b.BuildQuery())
}

// First, sorguyu çalıştırır ve ilk satırı döndürür. Sonuç yoksa nil satır
// ve nil hata döner.
func (b *Builder) First(ctx context.Context) (Row, error) {
	rows, err := b.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Find, "id" kolonu üzerinden eşitlik koşulu ekleyip First gibi davranır.
// Koşul builder durumuna kalıcı olarak eklenir; Find sonrası builder'ı
// yeniden kullanmak güvenli değildir.
func (b *Builder) Find(ctx context.Context, value any) (Row, error) {
	return b.FindBy(ctx, "id", value)
}

// FindBy, verilen kolon üzerinden eşitlik koşulu ekleyip First gibi davranır.
func (b *Builder) FindBy(ctx context.Context, column string, value any) (Row, error) {
	b.conds.Where(column, "=", value)
	return b.First(ctx)
}

// Insert, verilen satırları sırayla ekler ve eklenen satırları RETURNING ile
// geri döndürür. Her satır bağımsız bir INSERT olarak, bir önceki tamamen
// bitmeden başlamadan çalışır; k'inci satırda hata oluşursa 0..k-1 satırları
// eklenmiş kalır (geri alma yoktur).
//
// rows boş ya da nil ise, veya herhangi bir satır kolonsuzsa, I/O yapılmadan
// ErrEmptyInsert döner.
func (b *Builder) Insert(ctx context.Context, rows []Row) ([]Row, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInsert
	}
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("%w: row %d has no columns", ErrEmptyInsert, i)
		}
	}
	if err := b.ready(); err != nil {
		return nil, err
	}

	inserted := make([]Row, 0, len(rows))
	for _, row := range rows {
		keys := sortedKeys(row)
		values := make([]string, len(keys))
		for i, k := range keys {
			values[i] = Literal(row[k])
		}

		query := "INSERT INTO " + quoteTable(b.table) +
			" (" + strings.Join(keys, ", ") + ")" +
			" VALUES (" + strings.Join(values, ", ") + ")" +
			" RETURNING *"

		returned, err := b.db.runQuery(ctx, query)
		if err != nil {
			return inserted, err
		}
		inserted = append(inserted, returned...)
	}
	return inserted, nil
}

// Update, eşleşen satırları verilen verilerle günceller ve güncellenen
// satırları döndürür. En az bir WHERE koşulu zorunludur; koşulsuz toplu
// güncelleme hiçbir zaman çalıştırılmaz.
func (b *Builder) Update(ctx context.Context, data Row) ([]Row, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(data) == 0 {
		return nil, ErrNoColumns
	}
	if b.conds.Len() == 0 {
		return nil, ErrNoWhere
	}
	if err := b.ready(); err != nil {
		return nil, err
	}

	keys := sortedKeys(data)
	sets := make([]string, len(keys))
	for i, k := range keys {
		sets[i] = k + " = " + Literal(data[k])
	}

	query := "UPDATE " + quoteTable(b.table) +
		" SET " + strings.Join(sets, ", ") +
		" WHERE " + b.conds.Build() +
		" RETURNING *"

	return b.db.runQuery(ctx, query)
}

// Delete, eşleşen satırları siler ve silinen satırları döndürür.
// Update ile aynı WHERE zorunluluğu geçerlidir.
func (b *Builder) Delete(ctx context.Context) ([]Row, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.conds.Len() == 0 {
		return nil, ErrNoWhere
	}
	if err := b.ready(); err != nil {
		return nil, err
	}

	query := "DELETE FROM " + quoteTable(b.table) +
		" WHERE " + b.conds.Build() +
		" RETURNING *"

	return b.db.runQuery(ctx, query)
}

// Create, tabloyu verilen alan tanımlarıyla oluşturur (CREATE TABLE IF NOT
// EXISTS). Alan tanımlama kuralları için bkz. FieldSpec.
func (b *Builder) Create(ctx context.Context, fields []FieldSpec) error {
	if err := b.ready(); err != nil {
		return err
	}
	query, err := renderCreateTable(b.table, fields)
	if err != nil {
		return err
	}
	return b.db.runExec(ctx, query)
}

// Drop, tabloyu düşürür (DROP TABLE IF EXISTS).
func (b *Builder) Drop(ctx context.Context) error {
	if err := b.ready(); err != nil {
		return err
	}
	return b.db.runExec(ctx, "DROP TABLE IF EXISTS "+quoteTable(b.table))
}

// Columns, aynı tablo ve bağlantıya bağlı bir şema operasyonları tutacağı döndürür.
func (b *Builder) Columns() *Columns {
	return &Columns{db: b.db, table: b.table}
}

// sortedKeys, satır anahtarlarını alfabetik sıralar. Deterministik kolon
// sırası hem testleri hem log çıktısını kararlı kılar.
func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
