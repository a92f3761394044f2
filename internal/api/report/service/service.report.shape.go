package reportsvc

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportRow là một dòng kết quả trả cho client, tên field ổn định theo loại báo cáo
type ReportRow map[string]any

// ShapeOptions điều chỉnh cách chuẩn hóa kết quả
type ShapeOptions struct {
	// SortDistinct sắp xếp tăng dần danh sách distinct (store không đảm bảo thứ tự)
	SortDistinct bool
}

// salesDataAliases là tên hiển thị thêm vào dòng SalesData, giữ nguyên field gốc
var salesDataAliases = map[string]string{
	FieldSalesperson: "Sales Person",
	FieldTotalSales:  "Total Sales",
}

// numericFields được ép về float64
var numericFields = []string{FieldTotalSales, FieldCallDuration}

// Shape đổi record thô thành ReportRow. Số dòng ra luôn bằng số record vào,
// record rỗng trả về slice rỗng (không nil).
func Shape(kind ReportKind, records []bson.M, opts ShapeOptions) ([]ReportRow, error) {
	rows := make([]ReportRow, 0, len(records))

	switch kind {
	case DistinctRegions, DistinctCategories:
		field := FieldRegion
		if kind == DistinctCategories {
			field = FieldCategory
		}
		for _, r := range records {
			rows = append(rows, ReportRow{field: distinctString(r[DistinctValueKey])})
		}
		if opts.SortDistinct {
			sort.SliceStable(rows, func(i, j int) bool {
				return rows[i][field].(string) < rows[j][field].(string)
			})
		}
		return rows, nil

	case SalesByRegion:
		return shapeRows(records, FieldSalesperson, nil)
	case SalesByCategory:
		return shapeRows(records, FieldCategory, nil)
	case CallDurationByDateRange:
		return shapeRows(records, "", nil)
	case SalesData:
		return shapeRows(records, "", salesDataAliases)
	}

	return nil, unsupportedKind(kind)
}

// DistinctValues lấy danh sách giá trị từ các dòng của báo cáo distinct
func DistinctValues(kind ReportKind, rows []ReportRow) []string {
	field := FieldRegion
	if kind == DistinctCategories {
		field = FieldCategory
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		s, _ := r[field].(string)
		out = append(out, s)
	}
	return out
}

// shapeRows đổi _id thành idField (nếu có), ép kiểu số/ngày và thêm alias
func shapeRows(records []bson.M, idField string, aliases map[string]string) ([]ReportRow, error) {
	rows := make([]ReportRow, 0, len(records))
	for i, r := range records {
		row := make(ReportRow, len(r)+len(aliases))
		for k, v := range r {
			if k == FieldID {
				if idField == "" {
					continue
				}
				k = idField
			}
			row[k] = normalizeValue(v)
		}
		for _, f := range numericFields {
			v, ok := row[f]
			if !ok {
				continue
			}
			n, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("row %d field %s: %w", i, f, err)
			}
			row[f] = n
		}
		for from, to := range aliases {
			if v, ok := row[from]; ok {
				row[to] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// normalizeValue đổi kiểu BSON sang kiểu JSON thân thiện
func normalizeValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return t.String()
		}
		return d.InexactFloat64()
	}
	return v
}

// toFloat ép giá trị số về float64; nil (thiếu dữ liệu) thành 0
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case primitive.Decimal128:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0, err
		}
		return d.InexactFloat64(), nil
	}
	return 0, fmt.Errorf("unexpected numeric type %T", v)
}

func distinctString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	return fmt.Sprint(normalizeValue(v))
}
