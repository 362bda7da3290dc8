package utfall_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/utfall"
	"github.com/nao1215/utfall/domain/model"
)

// ExampleShouldFetch shows the download decision for an unchanged and a changed remote file.
func ExampleShouldFetch() {
	stored := model.NewFreshnessMarker("Mon, 30 Jun 2025 01:00:00 GMT")

	fmt.Println(utfall.ShouldFetch(stored, stored, true))
	fmt.Println(utfall.ShouldFetch(model.NewFreshnessMarker("Thu, 31 Jul 2025 01:00:00 GMT"), stored, true))
	fmt.Println(utfall.ShouldFetch(model.FreshnessMarker{}, stored, true))

	// Output:
	// false
	// true
	// true
}

// ExampleToRecord maps parsed rows onto a column manifest.
func ExampleToRecord() {
	manifest, err := model.NewManifest(
		model.ColumnDef{Name: "jiscode", Type: model.ColumnTypeText},
		model.ColumnDef{Name: "zip5", Type: model.ColumnTypeText, Indexed: true},
		model.ColumnDef{Name: "pref", Type: model.ColumnTypeText, Indexed: true},
	)
	if err != nil {
		log.Fatal(err)
	}

	rows := utfall.NewRowReader(strings.NewReader("\"01101\",\"0600000\",\"北海道\"\n"), ',')
	for row, err := range rows.Rows() {
		if err != nil {
			log.Fatal(err)
		}
		record, err := utfall.ToRecord(row, manifest)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(record["jiscode"], record["zip5"], record["pref"])
	}

	// Output:
	// 01101 0600000 北海道
}

// ExampleLoader loads records into SQLite in batches.
func ExampleLoader() {
	tmpDir, err := os.MkdirTemp("", "utfall_example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	db, err := utfall.OpenStore(ctx, filepath.Join(tmpDir, "data.sqlite"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	manifest := utfall.UtfAllManifest()
	loader := utfall.NewLoader(db, utfall.DefaultTableName, manifest).WithBatchSize(2)
	if err := loader.CreateSchema(ctx); err != nil {
		log.Fatal(err)
	}

	csv := `01101,"060  ","0600000","ﾎｯｶｲﾄﾞｳ","ｻｯﾎﾟﾛｼﾁｭｳｵｳｸ","ｲｶﾆｹｲｻｲｶﾞﾅｲﾊﾞｱｲ","北海道","札幌市中央区","以下に掲載がない場合",0,0,0,0,0,0
01101,"064  ","0640941","ﾎｯｶｲﾄﾞｳ","ｻｯﾎﾟﾛｼﾁｭｳｵｳｸ","ｱｻﾋｶﾞｵｶ","北海道","札幌市中央区","旭ケ丘",0,0,1,0,0,0
13101,"100  ","1000001","ﾄｳｷｮｳﾄ","ﾁﾖﾀﾞｸ","ﾁﾖﾀﾞ","東京都","千代田区","千代田",0,0,0,0,0,0
`
	rows := utfall.NewRowReader(strings.NewReader(csv), ',')
	stats, err := loader.Load(ctx, func() (model.Record, error) {
		row, err := rows.Read()
		if err != nil {
			return nil, err
		}
		return utfall.ToRecord(row, manifest)
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("rows=%d batches=%d\n", stats.Rows, stats.Batches)

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM utf_all WHERE pref = ?", "北海道").Scan(&count); err != nil {
		log.Fatal(err)
	}
	fmt.Println(count)

	// Output:
	// rows=3 batches=2
	// 2
}
