package fluentpg

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

/*
 * ----------------------------------------------------------------------------
 * FLUENTPG CONFIGURATION LAYER
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, veritabanı bağlantısının "nereye" ve "nasıl" yapılacağını belirleyen
 * yapılandırma katmanını içerir. go-fluent-sql projesindeki Config yapısının
 * PostgreSQL'e uyarlanmış halidir.
 *
 * İki kaynaktan beslenir:
 * 1. Kod içinden doğrudan doldurulan Config struct'ı
 * 2. Ortam değişkenleri (DB_HOST, DB_PORT, ...) — süreç başlangıcında bir kez
 * okunur, çalışma anında yeniden yapılandırma yoktur. Varsa .env dosyası da
 * godotenv ile yüklenir.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// Config, PostgreSQL bağlantısının DNA'sını oluşturan yapılandırma şemasıdır.
//
// AdminDatabase, self-healing katmanının CREATE DATABASE komutunu çalıştırmak
// için bağlandığı yönetim veritabanıdır (varsayılan: "postgres").
type Config struct {
	Host          string        // Veritabanı sunucusunun adresi
	Port          int           // Bağlantı portu (varsayılan: 5432)
	User          string        // Yetkilendirme için kullanıcı adı
	Password      string        // Yetkilendirme için parola
	Database      string        // Bağlanılacak veritabanı adı
	AdminDatabase string        // Kurtarma sırasında kullanılan yönetim veritabanı
	SSLMode       string        // lib/pq sslmode parametresi (varsayılan: disable)
	MaxOpenConns  int           // Havuzdaki maksimum açık bağlantı sayısı
	MaxIdleConns  int           // Havuzda boşta bekletilecek bağlantı sayısı
	ConnMaxLife   time.Duration // Bir bağlantının yaşam döngüsü süresi
}

// DefaultConfig, makul varsayılanlarla dolu bir konfigürasyon nesnesi döndürür.
func DefaultConfig() *Config {
	return &Config{
		Host:          "localhost",
		Port:          5432,
		User:          "postgres",
		AdminDatabase: "postgres",
		SSLMode:       "disable",
		MaxOpenConns:  25,
		MaxIdleConns:  5,
		ConnMaxLife:   5 * time.Minute,
	}
}

// LoadConfig, ortam değişkenlerinden bir Config üretir. Çalışma dizininde
// bir .env dosyası varsa önce o yüklenir; yoksa sessizce devam edilir.
//
// Tanınan değişkenler: DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_DATABASE,
// DB_ADMIN_DATABASE, DB_SSLMODE.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("DB_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("DB_ADMIN_DATABASE"); v != "" {
		cfg.AdminDatabase = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.SSLMode = v
	}
	return cfg
}

// DSN, lib/pq sürücüsünün anladığı key=value formatında bağlantı dizesini üretir.
func (c *Config) DSN() string {
	return c.dsnFor(c.Database)
}

// AdminDSN, yönetim veritabanına bağlanmak için kullanılan DSN'i üretir.
// Self-healing katmanı CREATE DATABASE komutunu bu bağlantı üzerinden yürütür.
func (c *Config) AdminDSN() string {
	admin := c.AdminDatabase
	if admin == "" {
		admin = "postgres"
	}
	return c.dsnFor(admin)
}

// dsnFor, verilen veritabanı adı için DSN parçalarını birleştirir.
// Boş parçalar atlanır; lib/pq eksik parametreler için kendi varsayılanlarını kullanır.
func (c *Config) dsnFor(database string) string {
	dsn := ""
	if c.Host != "" {
		dsn += "host=" + c.Host + " "
	}
	if c.Port > 0 {
		dsn += "port=" + strconv.Itoa(c.Port) + " "
	}
	if c.User != "" {
		dsn += "user=" + c.User + " "
	}
	if c.Password != "" {
		dsn += "password=" + c.Password + " "
	}
	if database != "" {
		dsn += "dbname=" + database + " "
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn += "sslmode=" + sslMode
	return dsn
}
