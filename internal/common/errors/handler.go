package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler turns worker errors into Zeebe fail or throw commands.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

type jobAction int

const (
	actionFail jobAction = iota
	actionThrow
)

// HandleJobError fails the job with retries left for retryable codes, and
// throws a BPMN error otherwise so the process can take its error path.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	action, retries := decide(job.Retries, bpmnErr)
	h.logError(job, stdErr, bpmnErr, retries)

	switch action {
	case actionFail:
		h.failJob(ctx, client, job, bpmnErr, retries)
	default:
		h.throwBPMNError(ctx, client, job, bpmnErr)
	}
}

// decide picks the job command. Zeebe counts retries down; the job keeps at
// most the code's retry budget and is thrown once it would reach zero.
func decide(jobRetries int32, bpmnErr *BPMNError) (jobAction, int32) {
	if !bpmnErr.Retryable || bpmnErr.Retries == 0 {
		return actionThrow, 0
	}
	remaining := jobRetries - 1
	if remaining > int32(bpmnErr.Retries) {
		remaining = int32(bpmnErr.Retries)
	}
	if remaining <= 0 {
		return actionThrow, 0
	}
	return actionFail, remaining
}

// Normalize ensures we always have a StandardError. Deadline overruns that
// escaped the store or search layer are reported as query timeouts.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		stdErr := NewQueryTimeoutError("job")
		stdErr.cause = err
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int32) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(bpmnErr.Message)

	if vars, ok := encodeVariables(bpmnErr); ok {
		if withVars, err := cmd.VariablesFromString(vars); err == nil {
			_, err = withVars.Send(ctx)
			h.logSendError("fail", err)
			return
		}
	}
	_, err := cmd.Send(ctx)
	h.logSendError("fail", err)
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if vars, ok := encodeVariables(bpmnErr); ok {
		if withVars, err := cmd.VariablesFromString(vars); err == nil {
			_, err = withVars.Send(ctx)
			h.logSendError("throw", err)
			return
		}
	}
	_, err := cmd.Send(ctx)
	h.logSendError("throw", err)
}

func (h *ErrorHandler) logSendError(command string, err error) {
	if err == nil {
		return
	}
	h.logger.Error("failed to send job command", map[string]interface{}{
		"command": command,
		"error":   err,
	})
}

func encodeVariables(bpmnErr *BPMNError) (string, bool) {
	data, err := json.Marshal(bpmnErr.ToErrorVariables())
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retriesLeft":      retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
