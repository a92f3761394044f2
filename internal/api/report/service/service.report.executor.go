package reportsvc

import (
	"context"
	"errors"
	"time"

	"github.com/nadiag01/apre/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// DistinctValueKey là key chứa giá trị trong record của thao tác distinct
const DistinctValueKey = "value"

// Execute chạy pipeline trên store và trả về toàn bộ record.
// timeout > 0 giới hạn thời gian truy vấn; ctx bị hủy thì truy vấn cũng bị hủy.
// Không retry. Lỗi của store luôn được quy về ConnectionFailure, ExecutionTimeout hoặc StoreFault.
func Execute(ctx context.Context, store DocumentStore, p Pipeline, timeout time.Duration) ([]bson.M, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if p.IsDistinct() {
		values, err := store.Distinct(ctx, p.Collection, p.Distinct)
		if err != nil {
			return nil, classifyStoreError(ctx, err)
		}
		records := make([]bson.M, 0, len(values))
		for _, v := range values {
			records = append(records, bson.M{DistinctValueKey: v})
		}
		return records, nil
	}

	records, err := store.Aggregate(ctx, p.Collection, p.ToBSON())
	if err != nil {
		return nil, classifyStoreError(ctx, err)
	}
	if records == nil {
		records = []bson.M{}
	}
	return records, nil
}

// classifyStoreError quy lỗi driver về lỗi execution; lỗi gốc chỉ giữ lại để log
func classifyStoreError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled):
		// Client bỏ request: không phải timeout cũng không phải mất kết nối
		return common.WrapError(common.ErrCodeReportStoreFault, common.MsgTryAgainLater, common.StatusInternalServerError, nil, err)
	case isServerSelectionError(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsNetworkError(err):
		return common.WrapError(common.ErrCodeReportConnection, common.MsgTryAgainLater, common.StatusServiceUnavailable, nil, err)
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		return common.WrapError(common.ErrCodeReportTimeout, common.MsgTryAgainLater, common.StatusGatewayTimeout, nil, err)
	}
	return common.WrapError(common.ErrCodeReportStoreFault, common.MsgTryAgainLater, common.StatusInternalServerError, nil, err)
}

func isServerSelectionError(err error) bool {
	var sse topology.ServerSelectionError
	return errors.As(err, &sse) || errors.Is(err, topology.ErrServerSelectionTimeout)
}
