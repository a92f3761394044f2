package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorKind(t *testing.T) {
	err := NewError(ErrCodeReportInvalidDateRange, "start after end", StatusBadRequest, nil)
	assert.Equal(t, KindInvalidDateRange, ErrorKind(err))
	assert.Equal(t, KindInvalidDateRange, ErrorKind(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "", ErrorKind(errors.New("plain")))
	assert.True(t, errors.Is(err, ErrInvalidDateRange))
	assert.False(t, errors.Is(err, ErrMissingParameter))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, StatusBadRequest, HTTPStatus(ErrMissingParameter))
	assert.Equal(t, StatusServiceUnavailable, HTTPStatus(ErrConnectionFailure))
	assert.Equal(t, StatusGatewayTimeout, HTTPStatus(ErrExecutionTimeout))
	assert.Equal(t, StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrUnknownSelector))
	assert.True(t, IsValidationError(ErrUnsupportedReportKind))
	assert.False(t, IsValidationError(ErrStoreFault))
	assert.False(t, IsValidationError(nil))
}

func TestWrapError_KeepsCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := WrapError(ErrCodeReportConnection, MsgTryAgainLater, StatusServiceUnavailable, nil, cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConnectionFailure)
	assert.Equal(t, MsgTryAgainLater, err.Error())
}

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))
	assert.ErrorIs(t, ConvertMongoError(mongo.ErrNoDocuments), ErrNotFound)
	assert.Equal(t, StatusGatewayTimeout, HTTPStatus(ConvertMongoError(context.DeadlineExceeded)))
	assert.Equal(t, ErrInvalidInput, ConvertMongoError(ErrInvalidInput))
	assert.Equal(t, StatusInternalServerError, HTTPStatus(ConvertMongoError(errors.New("x"))))
}

func TestErrorIs_DistinguishesStatus(t *testing.T) {
	assert.False(t, errors.Is(ErrDuplicate, ErrNotFound))
	dup := WrapError(ErrCodeDatabaseQuery, MsgMongoDuplicate, StatusConflict, nil, errors.New("E11000"))
	assert.ErrorIs(t, dup, ErrDuplicate)
}
