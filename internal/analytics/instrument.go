package analytics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ValidationError marks a tool call rejected before any work happened:
// missing or malformed arguments. Classification looks for this type.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Classify maps an error to its category by inspecting the error's type
// only. Error messages are never examined; they may contain user content
// and must not influence what gets stored.
func Classify(err error) Category {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return CategoryValidation
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return CategoryTimeout
	}
	return CategoryRuntime
}

// Invocation measures one tool call. Obtain it from StartInvocation,
// finish it exactly once with Complete; later completions are no-ops.
// A nil Invocation is safe to complete, so callers need no nil checks
// when analytics is absent.
type Invocation struct {
	c     *Collector
	tool  ToolName
	start time.Time
	done  atomic.Bool
}

// StartInvocation begins measuring a tool call. Safe on a nil collector.
func (c *Collector) StartInvocation(tool ToolName) *Invocation {
	if c == nil {
		return nil
	}
	return &Invocation{c: c, tool: tool, start: time.Now()}
}

// Complete records the call's outcome. A nil err means success; anything
// else is classified by type.
func (iv *Invocation) Complete(err error) {
	if iv == nil || !iv.done.CompareAndSwap(false, true) {
		return
	}
	ev := Event{
		ToolName:   iv.tool,
		Timestamp:  time.Now().UTC(),
		Success:    err == nil,
		DurationMS: max(0, time.Since(iv.start).Milliseconds()),
		SessionID:  iv.c.SessionID(),
	}
	if err != nil {
		ev.ErrorCategory = Classify(err)
	}
	iv.c.TrackAsync(ev)
}

// fail records a failed call with an explicit category, bypassing
// classification. Used for panics and error-flagged results.
func (iv *Invocation) fail(cat Category) {
	if iv == nil || !iv.done.CompareAndSwap(false, true) {
		return
	}
	iv.c.TrackAsync(Event{
		ToolName:      iv.tool,
		Timestamp:     time.Now().UTC(),
		Success:       false,
		DurationMS:    max(0, time.Since(iv.start).Milliseconds()),
		SessionID:     iv.c.SessionID(),
		ErrorCategory: cat,
	})
}

// CollectorSource yields the collector to record against, resolved per
// call. *Collector is its own source; *Runtime resolves its current
// instance, so a runtime reset swaps collectors under a live server.
type CollectorSource interface {
	ActiveCollector() *Collector
}

// ToolMiddleware wraps every tool handler with instrumentation: one event
// per call, success or failure, with the failure classified by the
// handler's error type. A result carrying the error flag counts as a
// runtime failure. A panicking handler is recorded as unknown and turned
// into an error result instead of crashing the server.
//
// The middleware never changes a handler's result or error, and with a
// nil or disabled collector it is a pure passthrough.
func ToolMiddleware(src CollectorSource) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (res *mcp.CallToolResult, err error) {
			c := src.ActiveCollector()
			if c == nil || !c.Enabled() {
				return next(ctx, req)
			}
			iv := c.StartInvocation(ToolName(req.Params.Name))
			defer func() {
				if r := recover(); r != nil {
					iv.fail(CategoryUnknown)
					res = mcp.NewToolResultError(fmt.Sprintf("internal error in %s", req.Params.Name))
					err = nil
				}
			}()

			res, err = next(ctx, req)
			switch {
			case err != nil:
				iv.Complete(err)
			case res != nil && res.IsError:
				iv.fail(CategoryRuntime)
			default:
				iv.Complete(nil)
			}
			return res, err
		}
	}
}
