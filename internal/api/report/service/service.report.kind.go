// Package reportsvc chứa report engine: kiểm tra tham số, dựng pipeline,
// thực thi trên document store, chuẩn hóa kết quả và dispatcher điều phối.
//
// Mỗi loại báo cáo là một công thức cố định (không phải query DSL):
// thêm loại báo cáo mới nghĩa là thêm ReportKind, struct tham số và nhánh
// tương ứng trong Validate, Build và Shape.
package reportsvc

import "fmt"

// ReportKind là danh mục cố định các loại báo cáo
type ReportKind int

const (
	KindUnknown ReportKind = iota
	DistinctRegions
	SalesByRegion
	DistinctCategories
	SalesByCategory
	CallDurationByDateRange
	SalesData
)

// AllKinds liệt kê các loại báo cáo được hỗ trợ
var AllKinds = []ReportKind{
	DistinctRegions,
	SalesByRegion,
	DistinctCategories,
	SalesByCategory,
	CallDurationByDateRange,
	SalesData,
}

func (k ReportKind) String() string {
	switch k {
	case DistinctRegions:
		return "DistinctRegions"
	case SalesByRegion:
		return "SalesByRegion"
	case DistinctCategories:
		return "DistinctCategories"
	case SalesByCategory:
		return "SalesByCategory"
	case CallDurationByDateRange:
		return "CallDurationByDateRange"
	case SalesData:
		return "SalesData"
	}
	return fmt.Sprintf("ReportKind(%d)", int(k))
}

// IsDistinct cho biết báo cáo chỉ lấy danh sách giá trị distinct
func (k ReportKind) IsDistinct() bool {
	return k == DistinctRegions || k == DistinctCategories
}

// Tên tham số thô nhận từ path/query
const (
	ParamRegion    = "region"
	ParamCategory  = "category"
	ParamSelector  = "selector"
	ParamStartDate = "startDate"
	ParamEndDate   = "endDate"
)

// Tên field trong các collection nguồn
const (
	FieldID           = "_id"
	FieldRegion       = "region"
	FieldCategory     = "category"
	FieldSalesperson  = "salesperson"
	FieldAmount       = "amount"
	FieldChannel      = "channel"
	FieldDate         = "date"
	FieldAgentID      = "agentId"
	FieldCallDuration = "callDuration"
	FieldTotalSales   = "totalSales"
)

// Collections là tên collection nguồn của các báo cáo
type Collections struct {
	Sales            string
	AgentPerformance string
}
