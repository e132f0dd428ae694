package fluentpg

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

/*
 * ----------------------------------------------------------------------------
 * FLUENTPG TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, kütüphanenin veri taşıma katmanını oluşturur: sorgulardan dönen
 * satırların temsili (Row), raw sorgu giriş noktasının yapılandırılmış sonucu
 * (RawResult) ve sorgu izleme arayüzü (Logger).
 *
 * go-fluent-sql'deki struct-scanner yaklaşımının aksine burada satırlar
 * kolon adı → değer eşlemesi olarak döner. "Bilinmeyen anahtarlar kolona
 * dönüşür" davranışı böylece insert/update tarafında da aynı tiple çalışır.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// Version, go-fluent-pg kütüphanesinin mevcut sürümünü belirtir.
const Version = "0.1.0-alpha"

// Row, bir veritabanı satırını kolon adı → değer eşlemesi olarak temsil eder.
// Aynı tip, Insert ve Update işlemlerinin girdi verisi olarak da kullanılır;
// satırın her anahtarı bir kolona dönüşür.
type Row map[string]any

// ----------------------------------------------------------------------------
// Raw Query Result Types
// ----------------------------------------------------------------------------

// RawStatus, raw sorgu sonucunun durumunu belirtir.
type RawStatus string

const (
	StatusSuccess RawStatus = "success"
	StatusError   RawStatus = "error"
)

// RawResult, DB.Raw çağrısının yapılandırılmış sonucudur.
//
// Builder'ın uç operasyonlarından farklı olarak raw giriş noktası asla hata
// döndürmez; sürücü hataları Status=error ve Message içinde taşınır.
// Data, tek komut çalıştıysa o komutun satır kümesi ([]Row), birden fazla
// komut çalıştıysa satır kümelerinin listesidir ([][]Row). Hata durumunda nil'dir.
type RawResult struct {
	Status  RawStatus `json:"status"`
	Message string    `json:"message"`
	Data    any       `json:"data"`
}

// ----------------------------------------------------------------------------
// Logger
// ----------------------------------------------------------------------------

// Logger, sistemin kara kutusudur. Çalışan SQL sorgularını, sürelerini ve
// olası hataları izlemek için kullanılan arayüzdür.
type Logger interface {
	Log(query string, duration time.Duration, err error)
}

// NopLogger, "sessiz mod" için kullanılan logger uygulamasıdır.
// Tüm logları yutar ve hiçbir işlem yapmaz.
type NopLogger struct{}

// Log, NopLogger'ın implementasyonudur. Gelen tüm veriyi yok sayar.
func (NopLogger) Log(string, time.Duration, error) {}

// ZerologLogger, zerolog tabanlı varsayılan sorgu logger'ıdır.
// Debug modu açıldığında DB bu logger ile çalışır.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger, verilen hedefe yazan bir ZerologLogger oluşturur.
func NewZerologLogger(w io.Writer) *ZerologLogger {
	return &ZerologLogger{
		log: zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger(),
	}
}

// Log, sorguyu süresiyle birlikte yazar. Hatalı sorgular error seviyesinde,
// başarılı sorgular debug seviyesinde loglanır.
func (l *ZerologLogger) Log(query string, duration time.Duration, err error) {
	if err != nil {
		l.log.Error().Err(err).Dur("duration", duration).Str("query", query).Msg("query failed")
		return
	}
	l.log.Debug().Dur("duration", duration).Str("query", query).Msg("query executed")
}
