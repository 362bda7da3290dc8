package utfall

import "github.com/nao1215/utfall/domain/model"

// utfAllColumns follows the column order of utf_all.csv.
var utfAllColumns = model.Manifest{
	{Name: "jiscode", Description: "全国地方公共団体コード", Type: model.ColumnTypeText},
	{Name: "zip5", Description: "（旧）郵便番号", Type: model.ColumnTypeText},
	{Name: "zip7", Description: "郵便番号（7桁）", Type: model.ColumnTypeText},
	{Name: "pref_kana", Description: "都道府県名カナ", Type: model.ColumnTypeText},
	{Name: "city_kana", Description: "市区町村名カナ", Type: model.ColumnTypeText},
	{Name: "town_kana", Description: "町域名カナ", Type: model.ColumnTypeText},
	{Name: "pref", Description: "都道府県名", Type: model.ColumnTypeText, Indexed: true},
	{Name: "city", Description: "市区町村名", Type: model.ColumnTypeText, Indexed: true},
	{Name: "town", Description: "町域名", Type: model.ColumnTypeText},
	// "1" applies, "0" does not
	{Name: "multi_zip_in_single_town", Description: "一町域が二以上の郵便番号で表される場合の表示", Type: model.ColumnTypeInteger},
	{Name: "koaza_banchi", Description: "小字毎に番地が起番されている町域の表示", Type: model.ColumnTypeInteger},
	{Name: "has_chome", Description: "丁目を有する町域の場合の表示", Type: model.ColumnTypeInteger},
	{Name: "single_zip_for_multi_town", Description: "一つの郵便番号で二以上の町域を表す場合の表示", Type: model.ColumnTypeInteger},
	// 0: unchanged, 1: changed, 2: abolished
	{Name: "updated", Description: "更新の表示", Type: model.ColumnTypeInteger},
	// 0: unchanged, 1-5: reason code, 6: abolished
	{Name: "updated_reason", Description: "変更理由", Type: model.ColumnTypeInteger},
}

// UtfAllManifest returns the column manifest of Japan Post's utf_all.csv.
// The returned slice is a copy and may be modified by the caller.
func UtfAllManifest() model.Manifest {
	return model.Manifest(utfAllColumns.Columns())
}
