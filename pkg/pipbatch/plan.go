package pipbatch

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/kuvasto/kuvasto/pkg/pipfit"
	"github.com/olekukonko/tablewriter"
)

type FilePlan struct {
	Path   string
	Source pipfit.Dimensions
	Plan   pipfit.FitPlan
}

// Same decode+fit decisions Run() would make, but without writing anything.
func (p *Processor) ComputePlans(inputDir string) ([]FilePlan, error) {
	sourcePaths, err := p.listImages(inputDir)
	if err != nil {
		return nil, err
	}

	filePlans := []FilePlan{}

	for _, sourcePath := range sourcePaths {
		source, err := decodeImage(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sourcePath, err)
		}

		sourceDims := dimensionsOf(source)
		if sourceDims.Height == 0 || sourceDims.Width == 0 {
			return nil, fmt.Errorf("%s: degenerate image: %s", sourcePath, sourceDims)
		}

		filePlans = append(filePlans, FilePlan{
			Path:   sourcePath,
			Source: sourceDims,
			Plan:   pipfit.PlanFit(sourceDims, p.conf.Frame(), p.conf.ScreenFactor, p.conf.ScaleTolerance),
		})
	}

	return filePlans, nil
}

func explainPlans(filePlans []FilePlan, out io.Writer) {
	tblBuilder := tablewriter.NewWriter(out)
	tblBuilder.SetAutoFormatHeaders(false)
	tblBuilder.SetBorder(false)
	tblBuilder.SetHeader([]string{"File", "Source", "Destination", "Direction", "Factor", "Valid"})

	for _, filePlan := range filePlans {
		valid := "-"
		if filePlan.Plan.Valid != nil {
			valid = fmt.Sprintf("%t", *filePlan.Plan.Valid)
		}

		tblBuilder.Append([]string{
			filepath.Base(filePlan.Path),
			filePlan.Source.String(),
			filePlan.Plan.Destination.String(),
			string(filePlan.Plan.Direction),
			fmt.Sprintf("%d", filePlan.Plan.ResizeFactor),
			valid,
		})
	}

	tblBuilder.Render()
}
