package fluentpg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

/*
=======================================================================================================================
 🩹 SELF-HEALING — Eksik Veritabanını Yaratıp Devam Et 🩹

 PostgreSQL, var olmayan bir veritabanına bağlanma denemesini 3D000
 (invalid_catalog_name) koduyla reddeder. Bu dosya, o hatayı yakalayıp
 şu diziyi çalıştırır:

   1. Mevcut havuzu kapat
   2. Yönetim veritabanına (varsayılan: postgres) bağlan
   3. CREATE DATABASE "<hedef>" çalıştır
   4. Yönetim bağlantısını kapat
   5. Hedef veritabanına yeni bir havuz aç

 Çağıran katman (runQuery/runExec) bundan sonra özgün ifadeyi BİR kez
 daha dener. Dizinin herhangi bir adımı başarısız olursa ErrRecoveryFailed
 sarmalı bir hata döner ve yeniden deneme yapılmaz.

 ⚠ Kurtarma dizisi etrafında kilit yoktur. Aynı eksik veritabanına aynı anda
 koşan birden fazla çağrı yarışabilir; ikincinin CREATE DATABASE'i "already
 exists" ile düşer ve o çağrı hatayla döner. Bilinen bir sınırlamadır.

 @author    Ahmet ALTUN
 @github    github.com/biyonik
 @linkedin  linkedin.com/in/biyonik
 @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// invalidCatalogName, PostgreSQL'in "database does not exist" hata kodudur.
const invalidCatalogName = pq.ErrorCode("3D000")

// isMissingDatabase, hatanın "hedef veritabanı yok" sinyali olup olmadığını belirler.
func isMissingDatabase(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidCatalogName
}

// recreateDatabase, eksik hedef veritabanını yönetim bağlantısı üzerinden
// oluşturur ve havuzu hedefe yeniden açar. Paylaşılan sql alanını
// oluşturma sonrasında değiştirmesine izin verilen tek yer burasıdır.
func (d *DB) recreateDatabase(ctx context.Context) error {
	_ = d.sql.Close()

	admin, err := sql.Open("postgres", d.cfg.AdminDSN())
	if err != nil {
		return fmt.Errorf("%w: admin connection: %v", ErrRecoveryFailed, err)
	}

	_, err = admin.ExecContext(ctx, "CREATE DATABASE "+quoteTable(d.cfg.Database))
	closeErr := admin.Close()
	if err != nil {
		return fmt.Errorf("%w: create database %q: %v", ErrRecoveryFailed, d.cfg.Database, err)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: closing admin connection: %v", ErrRecoveryFailed, closeErr)
	}

	fresh, err := sql.Open("postgres", d.cfg.DSN())
	if err != nil {
		return fmt.Errorf("%w: reopening target: %v", ErrRecoveryFailed, err)
	}
	d.sql = fresh
	d.applyPoolSettings()
	return nil
}
