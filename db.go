package fluentpg

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

/*
=======================================================================================================================
 🔌 DB — Bağlantı Sağlayıcısı 🔌

 Bu dosya, kütüphanenin paylaşılan bağlantı tutacağını içerir. Süreç başına
 bir kez oluşturulur (Open / OpenFromEnv) ve tablo kapsamlı her builder'a
 enjekte edilir. Gizli global durum yoktur; "süreç başına bir havuz"
 bir konvansiyondur, zorlama değil.

 Her ifade runQuery/runExec üzerinden geçer. Bu iki metot aynı zamanda
 self-healing katmanının giriş kapısıdır: "veritabanı yok" hatasında havuz
 yeniden kurulur ve ifade BİR kez daha denenir (bkz. heal.go).

 Open bilinçli olarak ping atmaz: hedef veritabanı henüz yoksa ping,
 kurtarma katmanı devreye giremeden başarısız olurdu. Bağlantı ilk ifade
 çalıştığında doğrulanır.

 @author    Ahmet ALTUN
 @github    github.com/biyonik
 @linkedin  linkedin.com/in/biyonik
 @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// DB, paylaşılan bağlantı sağlayıcısıdır. Tüm builder'lar aynı DB örneği
// üzerinden çalışır. Kurtarma dizisi dışında sql alanı oluşturulduktan
// sonra değişmez.
type DB struct {
	cfg    *Config
	sql    *sql.DB
	logger Logger
	debug  bool
}

// Open, verilen konfigürasyonla bir bağlantı sağlayıcısı oluşturur.
// Bağlantı tembel kurulur; sunucuya ilk ifade çalıştırıldığında gidilir.
func Open(cfg *Config, opts ...Option) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	db := &DB{
		cfg:    cfg,
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(db)
	}

	pool, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, WrapError("open", err)
	}
	db.sql = pool
	db.applyPoolSettings()
	return db, nil
}

// OpenFromEnv, konfigürasyonu ortam değişkenlerinden (ve varsa .env
// dosyasından) okuyarak Open çağırır.
func OpenFromEnv(opts ...Option) (*DB, error) {
	return Open(LoadConfig(), opts...)
}

// applyPoolSettings, konfigürasyondaki havuz boyutlarını aktif havuza uygular.
// Kurtarma sırasında havuz yeniden kurulduğunda da çağrılır.
func (d *DB) applyPoolSettings() {
	if d.cfg.MaxOpenConns > 0 {
		d.sql.SetMaxOpenConns(d.cfg.MaxOpenConns)
	}
	if d.cfg.MaxIdleConns > 0 {
		d.sql.SetMaxIdleConns(d.cfg.MaxIdleConns)
	}
	if d.cfg.ConnMaxLife > 0 {
		d.sql.SetConnMaxLifetime(d.cfg.ConnMaxLife)
	}
}

// Table, verilen tabloya bağlı yeni bir Builder döndürür.
func (d *DB) Table(name string) *Builder {
	return NewBuilder(d).Table(name)
}

// Ping, sunucuya erişilebilirliği doğrular.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.sql.PingContext(ctx); err != nil {
		return WrapError("ping", err)
	}
	return nil
}

// Close, bağlantı havuzunu kapatır.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Config, sağlayıcının aktif konfigürasyonunu döndürür.
func (d *DB) Config() *Config {
	return d.cfg
}

// log, çalıştırılan ifadeyi süresiyle birlikte logger'a iletir.
func (d *DB) log(query string, duration time.Duration, err error) {
	d.logger.Log(query, duration, err)
}

// runQuery, satır döndüren bir ifadeyi self-healing katmanından geçirerek
// çalıştırır. "Veritabanı yok" hatasında kurtarma dizisi çalışır ve ifade
// bir kez daha denenir; ikinci hata olduğu gibi yüzeye çıkar.
func (d *DB) runQuery(ctx context.Context, query string) ([]Row, error) {
	start := time.Now()
	rows, err := d.queryOnce(ctx, query)
	if err != nil && isMissingDatabase(err) {
		if rerr := d.recreateDatabase(ctx); rerr != nil {
			err = rerr
		} else {
			rows, err = d.queryOnce(ctx, query)
		}
	}
	d.log(query, time.Since(start), err)
	if err != nil {
		return nil, NewQueryError(err, query, "query failed")
	}
	return rows, nil
}

// runExec, satır döndürmeyen (DDL vb.) ifadeler için runQuery'nin karşılığıdır.
func (d *DB) runExec(ctx context.Context, query string) error {
	start := time.Now()
	err := d.execOnce(ctx, query)
	if err != nil && isMissingDatabase(err) {
		if rerr := d.recreateDatabase(ctx); rerr != nil {
			err = rerr
		} else {
			err = d.execOnce(ctx, query)
		}
	}
	d.log(query, time.Since(start), err)
	if err != nil {
		return NewQueryError(err, query, "exec failed")
	}
	return nil
}

// queryOnce, ifadeyi tam olarak bir kez çalıştırır ve sonucu tarar.
func (d *DB) queryOnce(ctx context.Context, query string) ([]Row, error) {
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// execOnce, ifadeyi tam olarak bir kez çalıştırır.
func (d *DB) execOnce(ctx context.Context, query string) error {
	_, err := d.sql.ExecContext(ctx, query)
	return err
}
