package ctrk

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV writes a decoded sample sequence to a CSV file, one row per
// sample, with both raw integer and calibrated columns. Grounded on the
// teacher's ExportCSV: encoding/csv, CRLF line endings to match the
// native reference tooling's own csv.writer dialect.
func WriteCSV(samples []Sample, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.UseCRLF = true

	header := []string{
		"lap", "epoch_ms", "lat", "lng", "speed_knots", "speed_kmh",
		"fuel_raw", "fuel_cc",
		"rpm_raw", "rpm", "gear",
		"tps_raw", "tps_pct", "aps_raw", "aps_pct",
		"launch", "tcs", "scs", "lif",
		"water_temp_raw", "water_temp_c", "intake_temp_raw", "intake_temp_c",
		"accel_x_raw", "accel_x_g", "accel_y_raw", "accel_y_g",
		"lean_raw", "lean_deg", "lean_signed_raw", "lean_signed_deg",
		"pitch_raw", "pitch_degs",
		"front_brake_raw", "front_brake_bar", "rear_brake_raw", "rear_brake_bar",
		"front_speed_raw", "front_speed_kmh", "rear_speed_raw", "rear_speed_kmh",
		"r_abs", "f_abs",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range samples {
		c := s.Calibrated()
		row := []string{
			fmt.Sprintf("%d", s.Lap),
			fmt.Sprintf("%d", s.EpochMs),
			fmt.Sprintf("%.7f", s.Lat),
			fmt.Sprintf("%.7f", s.Lng),
			fmt.Sprintf("%.3f", s.SpeedKnots),
			fmt.Sprintf("%.3f", c.SpeedKmh),
			fmt.Sprintf("%d", s.Fuel),
			fmt.Sprintf("%.2f", c.FuelCc),
			fmt.Sprintf("%d", s.Raw.RPM),
			fmt.Sprintf("%.0f", c.RPM),
			fmt.Sprintf("%d", c.Gear),
			fmt.Sprintf("%d", s.Raw.TPS),
			fmt.Sprintf("%.2f", c.TPSPercent),
			fmt.Sprintf("%d", s.Raw.APS),
			fmt.Sprintf("%.2f", c.APSPercent),
			boolStr(c.Launch), boolStr(c.TCS), boolStr(c.SCS), boolStr(c.LIF),
			fmt.Sprintf("%d", s.Raw.WaterTemp),
			fmt.Sprintf("%.1f", c.WaterTempC),
			fmt.Sprintf("%d", s.Raw.IntakeTemp),
			fmt.Sprintf("%.1f", c.IntakeTempC),
			fmt.Sprintf("%d", s.Raw.AccelX),
			fmt.Sprintf("%.3f", c.AccelXG),
			fmt.Sprintf("%d", s.Raw.AccelY),
			fmt.Sprintf("%.3f", c.AccelYG),
			fmt.Sprintf("%d", s.Raw.LeanRaw),
			fmt.Sprintf("%.1f", c.LeanDeg),
			fmt.Sprintf("%d", s.Raw.LeanSigned),
			fmt.Sprintf("%.1f", c.LeanSignedDeg),
			fmt.Sprintf("%d", s.Raw.Pitch),
			fmt.Sprintf("%.1f", c.PitchDegS),
			fmt.Sprintf("%d", s.Raw.FrontBrake),
			fmt.Sprintf("%.2f", c.FrontBrakeBar),
			fmt.Sprintf("%d", s.Raw.RearBrake),
			fmt.Sprintf("%.2f", c.RearBrakeBar),
			fmt.Sprintf("%d", s.Raw.FrontSpeed),
			fmt.Sprintf("%.2f", c.FrontSpeedKmh),
			fmt.Sprintf("%d", s.Raw.RearSpeed),
			fmt.Sprintf("%.2f", c.RearSpeedKmh),
			boolStr(c.RABS), boolStr(c.FABS),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
