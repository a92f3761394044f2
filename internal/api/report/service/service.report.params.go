package reportsvc

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nadiag01/apre/internal/common"
)

// DateLayout là định dạng ngày ISO-8601 (calendar day)
const DateLayout = "2006-01-02"

// ReportParams là tham số đã được kiểm tra, mỗi loại báo cáo một struct riêng
type ReportParams interface {
	Kind() ReportKind
}

// DistinctParams dùng cho DistinctRegions và DistinctCategories
type DistinctParams struct {
	ReportKind ReportKind
}

// RegionParams dùng cho SalesByRegion
type RegionParams struct {
	Region string `validate:"required"`
}

// CategoryParams dùng cho SalesByCategory
type CategoryParams struct {
	Category string `validate:"required"`
}

// SalesDataParams dùng cho SalesData
type SalesDataParams struct {
	Selector string `validate:"required"`
}

// DateRangeParams là khoảng ngày [Start, End] tính theo ngày, cả hai đầu đều bao gồm.
// Start và End là 00:00 của ngày tương ứng trong múi giờ báo cáo.
type DateRangeParams struct {
	Start time.Time
	End   time.Time
}

func (p DistinctParams) Kind() ReportKind { return p.ReportKind }
func (RegionParams) Kind() ReportKind { return SalesByRegion }
func (CategoryParams) Kind() ReportKind { return SalesByCategory }
func (SalesDataParams) Kind() ReportKind { return SalesData }
func (DateRangeParams) Kind() ReportKind { return CallDurationByDateRange }

// ParamValidator kiểm tra tham số thô theo loại báo cáo. Không có side effect.
type ParamValidator struct {
	validate  *validator.Validate
	selectors []string
	loc       *time.Location
}

// NewParamValidator tạo validator với danh mục selector của SalesData và múi giờ cắt ngày
func NewParamValidator(v *validator.Validate, selectors []string, loc *time.Location) *ParamValidator {
	if v == nil {
		v = validator.New()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ParamValidator{validate: v, selectors: slices.Clone(selectors), loc: loc}
}

// Selectors trả về danh mục selector hợp lệ
func (v *ParamValidator) Selectors() []string {
	return slices.Clone(v.selectors)
}

// Validate chuyển tham số thô thành ReportParams. Tham số thừa bị bỏ qua.
func (v *ParamValidator) Validate(kind ReportKind, raw map[string]string) (ReportParams, error) {
	switch kind {
	case DistinctRegions, DistinctCategories:
		return DistinctParams{ReportKind: kind}, nil

	case SalesByRegion:
		p := RegionParams{Region: raw[ParamRegion]}
		if err := v.checkRequired(p, ParamRegion); err != nil {
			return nil, err
		}
		return p, nil

	case SalesByCategory:
		p := CategoryParams{Category: raw[ParamCategory]}
		if err := v.checkRequired(p, ParamCategory); err != nil {
			return nil, err
		}
		return p, nil

	case SalesData:
		p := SalesDataParams{Selector: raw[ParamSelector]}
		if err := v.checkRequired(p, ParamSelector); err != nil {
			return nil, err
		}
		if !slices.Contains(v.selectors, p.Selector) {
			return nil, common.NewError(common.ErrCodeReportUnknownSelector,
				fmt.Sprintf("Selector %q không thuộc danh mục", p.Selector),
				common.StatusBadRequest,
				details("selector", p.Selector, "allowed", v.Selectors()))
		}
		return p, nil

	case CallDurationByDateRange:
		return v.validateDateRange(raw)
	}

	return nil, unsupportedKind(kind)
}

func (v *ParamValidator) validateDateRange(raw map[string]string) (ReportParams, error) {
	startRaw, endRaw := raw[ParamStartDate], raw[ParamEndDate]
	for _, name := range []string{ParamStartDate, ParamEndDate} {
		if raw[name] == "" {
			return nil, missingParameter(name)
		}
	}

	start, err := ParseDay(startRaw, v.loc)
	if err != nil {
		return nil, invalidDateRange(fmt.Sprintf("startDate %q không phải ngày hợp lệ", startRaw), ParamStartDate)
	}
	end, err := ParseDay(endRaw, v.loc)
	if err != nil {
		return nil, invalidDateRange(fmt.Sprintf("endDate %q không phải ngày hợp lệ", endRaw), ParamEndDate)
	}
	if start.After(end) {
		return nil, invalidDateRange("startDate phải nhỏ hơn hoặc bằng endDate", ParamStartDate)
	}
	return DateRangeParams{Start: start, End: end}, nil
}

// checkRequired chạy struct validation, lỗi "required" thành MissingParameter
func (v *ParamValidator) checkRequired(p any, param string) error {
	err := v.validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return missingParameter(param)
	}
	return common.WrapError(common.ErrCodeReportMissingParameter, "Tham số không hợp lệ", common.StatusBadRequest, details("parameter", param), err)
}

// ParseDay đọc ngày dạng 2006-01-02 hoặc RFC3339 và trả về 00:00 của ngày đó trong loc.
// Giá trị RFC3339 được quy về ngày theo loc trước khi cắt giờ.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func missingParameter(name string) error {
	return common.NewError(common.ErrCodeReportMissingParameter,
		fmt.Sprintf("Thiếu tham số bắt buộc: %s", name),
		common.StatusBadRequest,
		details("parameter", name))
}

func invalidDateRange(msg, param string) error {
	return common.NewError(common.ErrCodeReportInvalidDateRange, msg, common.StatusBadRequest, details("parameter", param))
}

func unsupportedKind(kind ReportKind) error {
	return common.NewError(common.ErrCodeReportUnsupportedKind,
		fmt.Sprintf("Loại báo cáo không được hỗ trợ: %s", kind),
		common.StatusBadRequest,
		details("kind", kind.String()))
}

// details dựng map chi tiết lỗi từ các cặp key/value
func details(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return m
}
