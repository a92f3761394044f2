package common

import "errors"

// Nhóm lỗi của report engine
const (
	CategoryReportValidation = "Validation"
	CategoryReportBuild      = "Build"
	CategoryReportExecution  = "Execution"
)

// Loại lỗi (kind) của report engine, trả về cho client trong trường "kind"
const (
	KindMissingParameter      = "MissingParameter"
	KindInvalidDateRange      = "InvalidDateRange"
	KindUnknownSelector       = "UnknownSelector"
	KindUnsupportedReportKind = "UnsupportedReportKind"
	KindConnectionFailure     = "ConnectionFailure"
	KindExecutionTimeout      = "ExecutionTimeout"
	KindStoreFault            = "StoreFault"
)

// Report Errors (RPT_xxx)
var (
	ErrCodeReportMissingParameter = ErrorCode{
		Code:        "RPT_VAL_001",
		Category:    CategoryReportValidation,
		SubCategory: KindMissingParameter,
		Description: "Thiếu tham số bắt buộc của báo cáo",
	}

	ErrCodeReportInvalidDateRange = ErrorCode{
		Code:        "RPT_VAL_002",
		Category:    CategoryReportValidation,
		SubCategory: KindInvalidDateRange,
		Description: "Khoảng ngày không hợp lệ",
	}

	ErrCodeReportUnknownSelector = ErrorCode{
		Code:        "RPT_VAL_003",
		Category:    CategoryReportValidation,
		SubCategory: KindUnknownSelector,
		Description: "Selector không thuộc danh mục",
	}

	ErrCodeReportUnsupportedKind = ErrorCode{
		Code:        "RPT_BLD_001",
		Category:    CategoryReportBuild,
		SubCategory: KindUnsupportedReportKind,
		Description: "Loại báo cáo không được hỗ trợ",
	}

	ErrCodeReportConnection = ErrorCode{
		Code:        "RPT_EXE_001",
		Category:    CategoryReportExecution,
		SubCategory: KindConnectionFailure,
		Description: "Không kết nối được kho dữ liệu",
	}

	ErrCodeReportTimeout = ErrorCode{
		Code:        "RPT_EXE_002",
		Category:    CategoryReportExecution,
		SubCategory: KindExecutionTimeout,
		Description: "Truy vấn báo cáo vượt quá thời gian cho phép",
	}

	ErrCodeReportStoreFault = ErrorCode{
		Code:        "RPT_EXE_003",
		Category:    CategoryReportExecution,
		SubCategory: KindStoreFault,
		Description: "Kho dữ liệu từ chối hoặc lỗi khi thực thi truy vấn",
	}
)

// Sentinel dùng cho errors.Is
var (
	ErrMissingParameter      = NewError(ErrCodeReportMissingParameter, "Thiếu tham số bắt buộc", StatusBadRequest, nil)
	ErrInvalidDateRange      = NewError(ErrCodeReportInvalidDateRange, "Khoảng ngày không hợp lệ", StatusBadRequest, nil)
	ErrUnknownSelector       = NewError(ErrCodeReportUnknownSelector, "Selector không hợp lệ", StatusBadRequest, nil)
	ErrUnsupportedReportKind = NewError(ErrCodeReportUnsupportedKind, "Loại báo cáo không được hỗ trợ", StatusBadRequest, nil)
	ErrConnectionFailure     = NewError(ErrCodeReportConnection, MsgTryAgainLater, StatusServiceUnavailable, nil)
	ErrExecutionTimeout      = NewError(ErrCodeReportTimeout, MsgTryAgainLater, StatusGatewayTimeout, nil)
	ErrStoreFault            = NewError(ErrCodeReportStoreFault, MsgTryAgainLater, StatusInternalServerError, nil)
)

// ErrorKind trả về kind của lỗi (SubCategory), rỗng nếu không phải *Error
func ErrorKind(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.SubCategory
	}
	return ""
}

// HTTPStatus trả về status code tương ứng của lỗi, mặc định 500
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode
	}
	return StatusInternalServerError
}

// IsValidationError cho biết lỗi thuộc nhóm do client gây ra (validation/build)
func IsValidationError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code.Category == CategoryReportValidation || e.Code.Category == CategoryReportBuild
}
