package fluentpg

import (
	"context"
	"strings"
)

/*
 * ----------------------------------------------------------------------------
 * FLUENTPG RAW QUERY ENTRY POINT
 * ----------------------------------------------------------------------------
 *
 * Raw, builder API'sinin dışında kalan serbest SQL kapısıdır. Script ";"
 * üzerinden parçalara ayrılır, boş parçalar elenir ve kalanlar sırayla
 * çalıştırılır.
 *
 * Builder uç operasyonlarının aksine Raw asla hata döndürmez: her sonuç —
 * başarı da hata da — yapılandırılmış RawResult içinde taşınır. Bu asimetri
 * bilinçlidir ve korunmaktadır.
 *
 * ⚠ Bölme naiftir: string literal'i ya da tanımlayıcı içindeki ";" de
 * ayraç sayılır. Böyle scriptler yanlış bölünür; sınır sözleşmesi budur.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// splitStatements, script'i ";" ayracıyla parçalar ve boş parçaları eler.
func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}

// Raw, serbest bir SQL script'ini çalıştırır ve yapılandırılmış sonucu döndürür.
//
// Tek komut çalıştıysa Data o komutun satır kümesidir ([]Row); birden fazla
// komut çalıştıysa satır kümelerinin listesidir ([][]Row). Herhangi bir komut
// başarısız olursa yürütme durur, Status error olur, Message sürücünün hata
// metnini taşır ve Data nil kalır.
func (d *DB) Raw(ctx context.Context, script string) *RawResult {
	statements := splitStatements(script)
	if len(statements) == 0 {
		return &RawResult{
			Status:  StatusError,
			Message: "no executable statements in script",
		}
	}

	results := make([][]Row, 0, len(statements))
	for _, stmt := range statements {
		rows, err := d.runQuery(ctx, stmt)
		if err != nil {
			return &RawResult{
				Status:  StatusError,
				Message: err.Error(),
			}
		}
		results = append(results, rows)
	}

	result := &RawResult{Status: StatusSuccess, Message: "ok"}
	if len(results) == 1 {
		result.Data = results[0]
	} else {
		result.Data = results
	}
	return result
}
