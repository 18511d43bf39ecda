package framecheck

import (
	"github.com/framecheck/framecheck/pkg/dataset"
	"github.com/framecheck/framecheck/pkg/rules"
	"github.com/framecheck/framecheck/pkg/validate"
)

// Validate runs one rule set against one dataset with the environment
// defaults applied. It is the unattached form of a guard, for call sites
// that do not sit at a function boundary. Extra options are applied last
// and win over both the rule set and the environment.
func Validate(ds dataset.Dataset, set *rules.Set, opts ...validate.Option) error {
	if ds == nil {
		return ErrNilDataset
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	vopts := append(resolveOptions(cfg, set, overrides{}), opts...)
	v, err := validate.New(set, vopts...)
	if err != nil {
		return err
	}
	if report := v.Validate(ds); !report.Valid() {
		return report
	}
	return nil
}
