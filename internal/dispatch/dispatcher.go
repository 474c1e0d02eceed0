// Package dispatch maps named queries and mutations onto operations.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/playhub/community-api/internal/auth"
	apierrors "github.com/playhub/community-api/internal/errors"
	"github.com/playhub/community-api/internal/logging"
	"github.com/playhub/community-api/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Kind separates read-only queries from mutations
type Kind string

const (
	Query    Kind = "query"
	Mutation Kind = "mutation"
)

const outcomeOK = "OK"

// HandlerFunc runs an operation with its raw JSON arguments
type HandlerFunc func(ctx context.Context, args json.RawMessage, caller *auth.Caller) (interface{}, error)

// Operation is a registered query or mutation
type Operation struct {
	Name    string
	Kind    Kind
	handler HandlerFunc
}

// Dispatcher routes named operations to their handlers
type Dispatcher struct {
	operations map[string]*Operation
	validate   *validator.Validate
	log        logrus.FieldLogger
	metrics    *metrics.Collector
}

// New creates an empty Dispatcher. collector may be nil.
func New(log logrus.FieldLogger, collector *metrics.Collector) *Dispatcher {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Dispatcher{
		operations: make(map[string]*Operation),
		validate:   v,
		log:        log,
		metrics:    collector,
	}
}

// Register binds name to fn. Arguments are decoded into A and validated
// with its `validate` tags before fn runs. Registering a name twice panics.
func Register[A any](d *Dispatcher, name string, kind Kind, fn func(ctx context.Context, args A, caller *auth.Caller) (interface{}, error)) {
	if _, exists := d.operations[name]; exists {
		panic("dispatch: operation registered twice: " + name)
	}

	d.operations[name] = &Operation{
		Name: name,
		Kind: kind,
		handler: func(ctx context.Context, raw json.RawMessage, caller *auth.Caller) (interface{}, error) {
			var args A
			if err := d.decode(raw, &args); err != nil {
				return nil, err
			}
			return fn(ctx, args, caller)
		},
	}
}

func (d *Dispatcher) decode(raw json.RawMessage, dst interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, dst); err != nil {
			return apierrors.Validation("Invalid arguments", validationDetails(err))
		}
	}

	if reflect.Indirect(reflect.ValueOf(dst)).Kind() != reflect.Struct {
		return nil
	}
	if err := d.validate.Struct(dst); err != nil {
		return apierrors.Validation("Invalid arguments", validationDetails(err))
	}
	return nil
}

// Lookup returns the operation registered under name
func (d *Dispatcher) Lookup(name string) (*Operation, bool) {
	op, ok := d.operations[name]
	return op, ok
}

// Operations lists registered operation names in sorted order
func (d *Dispatcher) Operations() []string {
	names := make([]string, 0, len(d.operations))
	for name := range d.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named operation with the caller stored in ctx.
// Every failure is returned as an *apierrors.APIError.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	op, ok := d.operations[name]
	if !ok {
		d.log.WithField("operation", name).Warn("unknown operation")
		return nil, apierrors.NotFound("Unknown operation: " + name)
	}

	start := time.Now()
	result, err := op.handler(ctx, args, auth.CallerFromContext(ctx))
	elapsed := time.Since(start)

	code := outcomeOK
	if err != nil {
		apiErr := apierrors.FromError(err)
		code = apiErr.Code
		err = apiErr
	}
	d.metrics.ObserveOperation(op.Name, string(op.Kind), code, elapsed)

	entry := logging.FromContext(ctx, d.log).WithFields(logrus.Fields{
		"operation": op.Name,
		"kind":      op.Kind,
		"code":      code,
		"duration":  elapsed.String(),
	})
	switch code {
	case outcomeOK:
		entry.Debug("operation completed")
	case apierrors.ErrCodeOperationFailed, apierrors.ErrCodeInternalError:
		if cause := errors.Unwrap(err); cause != nil {
			entry = entry.WithError(cause)
		}
		entry.Error("operation failed")
	default:
		entry.Info("operation rejected")
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}
