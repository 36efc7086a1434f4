package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// decimalValue is a pflag.Value for optional fixed-point flags. An unset
// flag leaves the target nil.
type decimalValue struct {
	target **decimal.Decimal
}

var _ pflag.Value = (*decimalValue)(nil)

func newDecimalValue(target **decimal.Decimal) *decimalValue {
	return &decimalValue{target: target}
}

func (v *decimalValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return (*v.target).String()
}

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%q is not a valid decimal number", s)
	}
	if d.IsNegative() {
		return fmt.Errorf("%q must not be negative", s)
	}
	*v.target = &d
	return nil
}

func (v *decimalValue) Type() string { return "decimal" }
