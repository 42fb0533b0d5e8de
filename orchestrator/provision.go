package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fliem/freesurfer-lgi/errors"
	"github.com/fliem/freesurfer-lgi/logger"
	"github.com/fliem/freesurfer-lgi/process"
)

// sharedAssets are the FreeSurfer reference templates recon-all -localGI
// expects to find next to the subject outputs: the average subject and the
// two hemisphere entorhinal-cortex averages.
var sharedAssets = []string{"fsaverage", "lh.EC_average", "rh.EC_average"}

// provisionAssets copies each shared asset from the FreeSurfer reference
// location into the output dir unless it is already there. A failed copy is
// fatal: recon-all would fail later with a far less obvious message.
func (o *Orchestrator) provisionAssets(ctx context.Context) error {
	for _, asset := range sharedAssets {
		dst := filepath.Join(o.cfg.OutputDir, asset)
		if _, err := os.Stat(dst); err == nil {
			o.log.Debug("shared asset present", logger.Fields("asset", asset))
			continue
		}

		src := filepath.Join(o.cfg.SubjectsDir, asset)
		o.log.Info("copying shared asset", logger.Fields("asset", asset, "from", src))
		_, err := o.runner.Run(ctx, process.Command{
			Binary: "cp",
			Args:   []string{"-rf", src, dst},
		})
		if err != nil {
			return errors.Precondition(
				fmt.Sprintf("failed to copy shared asset %s from %s", asset, src)).WithCause(err)
		}
	}
	return nil
}
