package tlcli

import (
	"context"

	"go.uber.org/multierr"
	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/tailor/lib/xmain"
	"oss.terrastruct.com/tailor/tlconfig"
)

func validateCmd(ctx context.Context, ms *xmain.State, f flags, paths []string) (err error) {
	defer xdefer.Errorf(&err, "failed to validate")

	if len(paths) == 0 && !f.base {
		return xmain.UsageErrorf("validate must be passed at least one fragment to be validated")
	}
	rc, err := resolve(ctx, ms, f, paths)
	if err != nil {
		return err
	}
	err = tlconfig.Validate(ctx, rc)
	if err != nil {
		errs := multierr.Errors(err)
		for _, verr := range errs {
			ms.Log.Error.Printf("%v", verr)
		}
		return xmain.ExitErrorf(1, "%d problems found", len(errs))
	}
	ms.Log.Success.Printf("%d fragments resolved without problems", len(paths)+boolInt(f.base))
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
