package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/To0nsa/philo/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates optional fields with non-nil, zero-width
// expression objects, so a simple nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	// A real attribute occupies bytes in the file; a placeholder for an
	// omitted optional attribute has a zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// evalAttr evaluates expr without variables and rejects null or unknown results.
func evalAttr(expr hcl.Expression, attrName string) (cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid value for '%s': %w", attrName, diags)
	}
	if val.IsNull() || !val.IsKnown() {
		return cty.NilVal, fmt.Errorf("'%s' must have a value", attrName)
	}
	return val, nil
}

// decodeInt binds a whole number attribute. It returns nil when the
// attribute was omitted.
func decodeInt(ctx context.Context, expr hcl.Expression, attrName string) (*int, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, err := evalAttr(expr, attrName)
	if err != nil {
		return nil, err
	}
	if val.Type() != cty.Number {
		return nil, fmt.Errorf("'%s' must be a number, got %s", attrName, val.Type().FriendlyName())
	}
	var out int
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return nil, fmt.Errorf("'%s' must be a whole number: %w", attrName, err)
	}
	return &out, nil
}

// decodeDuration binds a duration attribute written as a Go duration string
// such as "100us" or "1ms". It returns nil when the attribute was omitted.
func decodeDuration(ctx context.Context, expr hcl.Expression, attrName string) (*time.Duration, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, err := evalAttr(expr, attrName)
	if err != nil {
		return nil, err
	}
	var raw string
	if err := gocty.FromCtyValue(val, &raw); err != nil {
		return nil, fmt.Errorf("'%s' must be a duration string: %w", attrName, err)
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", attrName, err)
	}
	return &d, nil
}
