package main

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"gear-optimizer/internal/builds"
)

const summarySheet = "Summary"

// ExportXLSX writes a summary sheet with one row per build, and one sheet per build with
// its gear, configuration and stats.
func ExportXLSX(path string, out BenchOutput) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return errors.WithStack(err)
	}
	header := []any{"Build", "Mode", "Metric", "DPS", "HPS", "Might", "Swiftness", "Evaluations", "Time (s)"}
	if err := setRow(f, summarySheet, 1, header); err != nil {
		return err
	}
	for i, run := range out.Runs {
		r := run.Result
		row := []any{r.Build, string(r.Mode), r.Metric, r.DPS, r.HPS, r.Might, r.Swiftness, r.Evaluations, float64(run.TimeMs) / 1000}
		if err := setRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
		if err := writeBuildSheet(f, r); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

func writeBuildSheet(f *excelize.File, r *builds.Result) error {
	sheet := r.Build
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "sheet %s", sheet)
	}

	row := 1
	put := func(values ...any) error {
		err := setRow(f, sheet, row, values)
		row++
		return err
	}

	if err := put("Slot", "Prefix"); err != nil {
		return err
	}
	for _, s := range r.Slots {
		if err := put(s.Slot, s.Prefix); err != nil {
			return err
		}
	}
	if len(r.Slots) == 0 {
		for _, w := range r.Weights {
			if err := put("(weight)", w.Prefix, w.Weight); err != nil {
				return err
			}
		}
	}

	row++
	for _, c := range r.Config {
		if err := put(c.Name, c.Value); err != nil {
			return err
		}
	}
	for _, inf := range r.Infusions {
		if err := put("infusion", inf.Stat, inf.Value); err != nil {
			return err
		}
	}

	row++
	if err := put("Stat", "Gear", "Total"); err != nil {
		return err
	}
	for i, g := range r.GearStats {
		if err := put(g.Stat, g.Value, r.TotalStats[i].Value); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "%s row %d", sheet, row)
	}
	return nil
}
