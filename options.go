package fluentpg

import (
	"os"
	"time"
)

/*
 * ----------------------------------------------------------------------------
 * FLUENTPG OPTIONS
 * ----------------------------------------------------------------------------
 *
 * Open ve OpenFromEnv'e verilen fonksiyonel seçenekler. Her seçenek DB
 * oluşturulurken bir kez uygulanır; çalışma anında yeniden yapılandırma yoktur.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// Option, DB oluşturulurken uygulanan yapılandırma fonksiyonudur.
type Option func(*DB)

// WithLogger, sorgu logger'ını değiştirir. nil verilirse sessiz moda dönülür.
func WithLogger(logger Logger) Option {
	return func(d *DB) {
		if logger == nil {
			logger = NopLogger{}
		}
		d.logger = logger
	}
}

// WithDebug, debug modunu açar. Özel bir logger ayarlanmamışsa çalıştırılan
// her ifade stderr'e zerolog konsol formatında yazılır.
func WithDebug() Option {
	return func(d *DB) {
		d.debug = true
		if _, isNop := d.logger.(NopLogger); isNop {
			d.logger = NewZerologLogger(os.Stderr)
		}
	}
}

// WithAdminDatabase, kurtarma sırasında kullanılan yönetim veritabanını değiştirir.
func WithAdminDatabase(name string) Option {
	return func(d *DB) {
		if name != "" {
			d.cfg.AdminDatabase = name
		}
	}
}

// WithMaxOpenConns, havuzdaki maksimum açık bağlantı sayısını ayarlar.
func WithMaxOpenConns(n int) Option {
	return func(d *DB) {
		d.cfg.MaxOpenConns = n
	}
}

// WithMaxIdleConns, havuzda boşta bekletilecek bağlantı sayısını ayarlar.
func WithMaxIdleConns(n int) Option {
	return func(d *DB) {
		d.cfg.MaxIdleConns = n
	}
}

// WithConnMaxLifetime, bir bağlantının yaşam süresini ayarlar.
func WithConnMaxLifetime(dur time.Duration) Option {
	return func(d *DB) {
		d.cfg.ConnMaxLife = dur
	}
}
