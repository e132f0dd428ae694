package fluentpg

import (
	"context"
	"strings"
)

/*
 * ----------------------------------------------------------------------------
 * FLUENTPG COLUMN OPERATIONS
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, tek bir tabloya bağlı kolon yaşam döngüsü operasyonlarını içerir:
 * katalogdan mevcut kolonları okuma (introspection), eksik kolonları ekleme,
 * farklılaşan kolonları düzenleme ve kolon silme.
 *
 * Tüm karşılaştırmalar "istenen FieldSpec vs. canlı katalog" mantığıyla
 * yapılır: Add yalnızca katalogda OLMAYAN kolonları, Edit yalnızca katalogda
 * OLUP farklılaşan kolonları, Delete yalnızca katalogda OLAN kolonları işler.
 * Geri kalan her şey sessiz no-op'tur.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// ColumnInfo, katalogdan okunan tek bir kolonun özetidir.
type ColumnInfo struct {
	Type      string // information_schema.columns.data_type
	Default   string // column_default metni; yoksa boş
	IsPrimary bool   // pg_index üzerinden birincil anahtar üyeliği
}

// Columns, bir tabloya bağlı şema operasyonları tutacağıdır.
// Builder.Columns() ile elde edilir ve aynı bağlantı sağlayıcısını paylaşır.
type Columns struct {
	db    *DB
	table string
}

// typeAliases, FieldSpec tiplerini information_schema'nın uzun adlarına eşler.
// Edit'in "tip değişti mi" kararı bu normalizasyon üzerinden verilir.
var typeAliases = map[string]string{
	"VARCHAR":   "character varying",
	"CHAR":      "character",
	"INT":       "integer",
	"INTEGER":   "integer",
	"SERIAL":    "integer",
	"BIGINT":    "bigint",
	"BIGSERIAL": "bigint",
	"SMALLINT":  "smallint",
	"DECIMAL":   "numeric",
	"NUMERIC":   "numeric",
	"FLOAT":     "double precision",
	"DOUBLE":    "double precision",
	"REAL":      "real",
	"BOOL":      "boolean",
	"BOOLEAN":   "boolean",
	"TEXT":      "text",
	"DATE":      "date",
	"TIMESTAMP": "timestamp without time zone",
}

// catalogType, bir FieldSpec tipini katalog karşılığına çevirir.
func catalogType(sqlType string) string {
	if alias, ok := typeAliases[strings.ToUpper(sqlType)]; ok {
		return alias
	}
	return strings.ToLower(sqlType)
}

// columnsQuery, tablonun kolonlarını okuyan katalog sorgusunu üretir.
// Şema filtresi zorunludur: başka bir şemadaki aynı adlı tablo, filtre
// olmadan sonuç kümesini kirletir ve diff kararlarını yanıltır.
func columnsQuery(table string) string {
	return "SELECT column_name, data_type, column_default" +
		" FROM information_schema.columns" +
		" WHERE table_name = " + Literal(table) +
		" AND table_schema = current_schema()"
}

// Get, tablonun mevcut kolonlarını katalogdan okur. Tablo yoksa boş bir
// eşleme döner; bu, "tablo var mı" testinin de kendisidir.
func (c *Columns) Get(ctx context.Context) (map[string]ColumnInfo, error) {
	if c.db == nil {
		return nil, ErrNoConnection
	}
	rows, err := c.db.runQuery(ctx, columnsQuery(c.table))
	if err != nil {
		return nil, err
	}

	info := make(map[string]ColumnInfo, len(rows))
	if len(rows) == 0 {
		return info, nil
	}

	for _, row := range rows {
		name, _ := row["column_name"].(string)
		if name == "" {
			continue
		}
		col := ColumnInfo{}
		if t, ok := row["data_type"].(string); ok {
			col.Type = t
		}
		if d, ok := row["column_default"].(string); ok {
			col.Default = d
		}
		info[name] = col
	}

	// Birincil anahtar üyeliği ayrı bir katalog sorgusuyla işaretlenir.
	// Tablo var olduğu için regclass dönüşümü güvenlidir.
	pkRows, err := c.db.runQuery(ctx,
		"SELECT a.attname FROM pg_index i"+
			" JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)"+
			" WHERE i.indrelid = "+Literal(quoteTable(c.table))+"::regclass"+
			" AND i.indisprimary")
	if err != nil {
		return nil, err
	}
	for _, row := range pkRows {
		if name, ok := row["attname"].(string); ok {
			if col, exists := info[name]; exists {
				col.IsPrimary = true
				info[name] = col
			}
		}
	}
	return info, nil
}

// Add, katalogda bulunmayan alanları ALTER TABLE ADD COLUMN ile ekler.
// Zaten mevcut kolonlar sessizce atlanır. Kolon tanım kuralları tablo
// oluşturmadakiyle aynıdır.
func (c *Columns) Add(ctx context.Context, fields ...FieldSpec) error {
	existing, err := c.Get(ctx)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if err := f.validate(); err != nil {
			return err
		}
		if _, ok := existing[f.Name]; ok {
			continue
		}
		def, err := renderColumnDef(f)
		if err != nil {
			return err
		}
		stmt := "ALTER TABLE " + quoteTable(c.table) + " ADD COLUMN " + def
		if err := c.db.runExec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// editStatements, katalogdaki mevcut kolonu istenen tanımla karşılaştırır ve
// çalıştırılacak ALTER ifadelerini üretir. Üç boyut ayrı ayrı kıyaslanır ve
// her değişiklik ayrı bir ifade olur: tip, varsayılan ve birincil anahtar.
// Bunları tek ifadede birleştirmek her durumda taşınabilir değildir.
// Hiçbir boyut değişmemişse boş liste döner.
func editStatements(table string, f FieldSpec, current ColumnInfo) ([]string, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	var stmts []string

	if catalogType(f.Type) != current.Type {
		stmts = append(stmts, "ALTER TABLE "+quoteTable(table)+
			" ALTER COLUMN "+f.Name+" TYPE "+renderType(f))
	}

	if f.Default != nil {
		want := defaultLiteral(f.Type, f.Default)
		// Katalog varsayılanı tip dönüşümü ekiyle döner ('x'::text gibi);
		// önek karşılaştırması bu eki görmezden gelir.
		if !strings.HasPrefix(current.Default, want) {
			stmts = append(stmts, "ALTER TABLE "+quoteTable(table)+
				" ALTER COLUMN "+f.Name+" SET DEFAULT "+want)
		}
	}

	// Birincil anahtar üyeliği iki yönde de eşitlenir. Düşürme,
	// PostgreSQL'in varsayılan kısıt adını (<tablo>_pkey) hedefler.
	wantPrimary := f.hasOption("primary")
	switch {
	case wantPrimary && !current.IsPrimary:
		stmts = append(stmts, "ALTER TABLE "+quoteTable(table)+
			" ADD PRIMARY KEY ("+f.Name+")")
	case !wantPrimary && current.IsPrimary:
		stmts = append(stmts, "ALTER TABLE "+quoteTable(table)+
			" DROP CONSTRAINT "+quoteTable(table+"_pkey"))
	}

	return stmts, nil
}

// Edit, katalogda bulunan ve istenen tanımdan farklılaşan kolonları günceller.
// Karşılaştırma ve ifade üretimi editStatements'tadır; katalogda olmayan
// kolonlar sessizce atlanır.
func (c *Columns) Edit(ctx context.Context, fields ...FieldSpec) error {
	existing, err := c.Get(ctx)
	if err != nil {
		return err
	}
	for _, f := range fields {
		current, ok := existing[f.Name]
		if !ok {
			if err := f.validate(); err != nil {
				return err
			}
			continue
		}
		stmts, err := editStatements(c.table, f, current)
		if err != nil {
			return err
		}
		for _, stmt := range stmts {
			if err := c.db.runExec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete, verilen adlardaki kolonları düşürür. Katalogda olmayan adlar
// sessizce atlanır.
func (c *Columns) Delete(ctx context.Context, names []string) error {
	existing, err := c.Get(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := existing[name]; !ok {
			continue
		}
		stmt := "ALTER TABLE " + quoteTable(c.table) + " DROP COLUMN " + name
		if err := c.db.runExec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DropColumn, tek bir kolonu düşüren kısayoldur.
func (c *Columns) DropColumn(ctx context.Context, name string) error {
	return c.Delete(ctx, []string{name})
}
