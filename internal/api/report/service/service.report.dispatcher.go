package reportsvc

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nadiag01/apre/internal/common"
	"github.com/nadiag01/apre/internal/logger"
	"github.com/nadiag01/apre/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Stage của một request trong dispatcher
const (
	StageValidating = "validating"
	StageBuilding   = "building"
	StageExecuting  = "executing"
	StageShaping    = "shaping"
)

// ReportRequest là yêu cầu báo cáo: loại báo cáo và tham số thô từ path/query
type ReportRequest struct {
	Kind   ReportKind
	Params map[string]string
}

// DispatcherConfig là toàn bộ phụ thuộc của dispatcher, truyền vào khi khởi tạo
type DispatcherConfig struct {
	Store        DocumentStore
	Collections  Collections
	Timeout      time.Duration
	Location     *time.Location
	Selectors    []string
	SortDistinct bool
	Validator    *validator.Validate
	Metrics      *metrics.ReportMetrics
}

// Dispatcher điều phối validate -> build -> execute -> shape cho từng request.
// Không giữ state giữa các request nên dùng chung an toàn.
type Dispatcher struct {
	store     DocumentStore
	cols      Collections
	timeout   time.Duration
	loc       *time.Location
	params    *ParamValidator
	shapeOpts ShapeOptions
	metrics   *metrics.ReportMetrics
}

// NewDispatcher tạo dispatcher từ cấu hình
func NewDispatcher(cfg DispatcherConfig) (*Dispatcher, error) {
	if cfg.Store == nil {
		return nil, errors.New("report dispatcher: store is required")
	}
	if cfg.Collections.Sales == "" || cfg.Collections.AgentPerformance == "" {
		return nil, errors.New("report dispatcher: collection names are required")
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Dispatcher{
		store:     cfg.Store,
		cols:      cfg.Collections,
		timeout:   cfg.Timeout,
		loc:       loc,
		params:    NewParamValidator(cfg.Validator, cfg.Selectors, loc),
		shapeOpts: ShapeOptions{SortDistinct: cfg.SortDistinct},
		metrics:   cfg.Metrics,
	}, nil
}

// Selectors trả về danh mục selector của báo cáo SalesData
func (d *Dispatcher) Selectors() []string {
	return d.params.Selectors()
}

// Handle xử lý một request báo cáo. Lỗi trả về luôn là *common.Error
// với kind phân biệt lỗi đầu vào (validation/build) và lỗi hạ tầng (execution).
func (d *Dispatcher) Handle(ctx context.Context, req ReportRequest) ([]ReportRow, error) {
	started := time.Now()
	ctx = context.WithValue(ctx, logger.ReportKindKey, req.Kind.String())

	rows, stage, err := d.run(ctx, req)
	elapsed := time.Since(started)

	if err != nil {
		d.metrics.Observe(req.Kind.String(), common.ErrorKind(err), elapsed, 0)
		d.logFailure(ctx, stage, err)
		return nil, err
	}

	d.metrics.Observe(req.Kind.String(), metrics.OutcomeSuccess, elapsed, len(rows))
	logger.GetPerformanceLogger().WithFields(logrus.Fields{
		"report_kind": req.Kind.String(),
		"rows":        len(rows),
		"duration_ms": elapsed.Milliseconds(),
	}).Debug("Report completed")
	return rows, nil
}

func (d *Dispatcher) run(ctx context.Context, req ReportRequest) ([]ReportRow, string, error) {
	params, err := d.params.Validate(req.Kind, req.Params)
	if err != nil {
		return nil, StageValidating, err
	}

	p, err := Build(params, d.cols, d.loc)
	if err != nil {
		return nil, StageBuilding, err
	}

	records, err := Execute(ctx, d.store, p, d.timeout)
	if err != nil {
		return nil, StageExecuting, err
	}

	rows, err := Shape(req.Kind, records, d.shapeOpts)
	if err != nil {
		var ce *common.Error
		if !errors.As(err, &ce) {
			// Dữ liệu trong store không đúng kiểu mong đợi
			err = common.WrapError(common.ErrCodeReportStoreFault, common.MsgTryAgainLater, common.StatusInternalServerError, nil, err)
		}
		return nil, StageShaping, err
	}
	return rows, "", nil
}

// logFailure ghi lỗi một lần: lỗi đầu vào ở mức warn, lỗi hạ tầng ở mức error kèm lỗi gốc
func (d *Dispatcher) logFailure(ctx context.Context, stage string, err error) {
	entry := logger.WithContext(ctx).WithFields(logrus.Fields{
		"module":     "report",
		"stage":      stage,
		"error_kind": common.ErrorKind(err),
	})
	if common.IsValidationError(err) {
		entry.WithField("error", err.Error()).Warn("Report request rejected")
		return
	}
	if cause := errors.Unwrap(err); cause != nil {
		entry = entry.WithField("cause", cause.Error())
	}
	entry.Error("Report execution failed")
}
