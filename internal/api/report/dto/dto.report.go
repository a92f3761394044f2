// Package reportdto chứa DTO cho các route báo cáo.
package reportdto

// DateRangeQuery là query của báo cáo theo khoảng ngày (YYYY-MM-DD hoặc RFC3339)
type DateRangeQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// SelectorList là dữ liệu trả về của GET /reports/sales/sales-data
type SelectorList struct {
	Selectors []string `json:"selectors"`
}
