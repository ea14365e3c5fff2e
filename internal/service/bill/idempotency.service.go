package bill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-quickteller/internal/common/enum"
	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/helper"
	"go-quickteller/internal/pkg/logger"
)

const (
	IdempotencyKeyHeader   = "Idempotency-Key"
	IdempotentReplayHeader = "Idempotent-Replayed"
	idempotencyKeyPrefix   = "idempotency:bill-advice:"
)

var (
	ErrIdempotencyKeyReused = errors.New("idempotency key was already used with a different request body")
	ErrRequestInProgress    = errors.New("a request with this idempotency key is still being processed")
)

type idempotencyRecord struct {
	Status   enum.IdempotencyStatus `json:"status"`
	BodyHash string                 `json:"body_hash"`
	Code     int                    `json:"code,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Data     json.RawMessage        `json:"data,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// withIdempotency runs fn at most once per key and body. A completed response
// is stored and replayed for the same key and body until the record expires.
// Responses of transport failures are not stored so the caller may retry.
func (s *Service) withIdempotency(ctx context.Context, key string, body any, fn func() *types.Response) *types.Response {
	if key == "" || s.redis == nil {
		return fn()
	}

	hash, err := helper.HashJSON(body)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		})
	}

	storeKey := idempotencyKeyPrefix + key
	stored, err := s.redis.SetNX(ctx, storeKey, idempotencyRecord{
		Status:   enum.PROCESSING,
		BodyHash: hash,
	}, s.idempotencyTTL)
	if err != nil {
		logger.Error.Printf("Failed to acquire idempotency key %s: %v", key, err)
		return storeUnavailable(err)
	}
	if !stored {
		return s.replay(ctx, storeKey, hash)
	}

	response := fn()

	// The outcome must be recorded even when the caller has gone away.
	storeCtx := context.WithoutCancel(ctx)
	if response.Code >= http.StatusInternalServerError {
		if err := s.redis.Del(storeCtx, storeKey); err != nil {
			logger.Warning.Printf("Failed to release idempotency key %s: %v", key, err)
		}
		return response
	}

	record := idempotencyRecord{
		Status:   enum.COMPLETE,
		BodyHash: hash,
		Code:     response.Code,
		Message:  response.Message,
	}
	if response.Data != nil {
		if data, err := json.Marshal(response.Data); err == nil {
			record.Data = data
		}
	}
	if response.Error != nil {
		record.Error = response.Error.Error()
	}
	if err := s.redis.Set(storeCtx, storeKey, record, s.idempotencyTTL); err != nil {
		logger.Warning.Printf("Failed to store idempotent response %s: %v", key, err)
	}

	return response
}

func (s *Service) replay(ctx context.Context, storeKey, hash string) *types.Response {
	raw, err := s.redis.Get(ctx, storeKey)
	if err != nil {
		logger.Error.Printf("Failed to read idempotency record %s: %v", storeKey, err)
		return storeUnavailable(err)
	}
	// The record expired or was released between SETNX and GET.
	if raw == "" {
		return conflict(ErrRequestInProgress)
	}

	record, err := helper.StringToStruct[idempotencyRecord](raw)
	if err != nil {
		return storeUnavailable(err)
	}

	if record.BodyHash != hash {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusUnprocessableEntity,
			Message: "Idempotency key reused",
			Error:   ErrIdempotencyKeyReused,
		})
	}
	if record.Status != enum.COMPLETE {
		return conflict(ErrRequestInProgress)
	}

	response := &types.Response{
		Code:    record.Code,
		Message: record.Message,
		Headers: map[string]string{IdempotentReplayHeader: "true"},
	}
	if len(record.Data) > 0 {
		response.Data = record.Data
	}
	if record.Error != "" {
		response.Error = errors.New(record.Error)
	}
	return helper.ParseResponse(response)
}

func conflict(err error) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusConflict,
		Message: "Request in progress",
		Error:   err,
	})
}

func storeUnavailable(err error) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusServiceUnavailable,
		Message: "Idempotency store unavailable",
		Error:   err,
	})
}
