package ctrk

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// TestSampleCalibratedTableDriven exercises Sample.Calibrated() across a
// table of raw channel states, using testify for readable assertions and
// go-cmp for a full-struct diff on mismatch — the richer failure output
// the ambient stack reserves testify/go-cmp for, as in the retrieved
// pack's test suites (the teacher itself uses plain testing only).
func TestSampleCalibratedTableDriven(t *testing.T) {
	cases := []struct {
		name string
		in   Sample
		want CalibratedSample
	}{
		{
			name: "all zero channels",
			in:   Sample{Lap: 1, EpochMs: 1000, Lat: 1, Lng: 2, SpeedKnots: 0},
			want: CalibratedSample{
				Lap: 1, EpochMs: 1000, Lat: 1, Lng: 2,
				SpeedKmh: 0, FuelCc: 0, RPM: 0,
				TPSPercent: 0, APSPercent: 0,
				WaterTempC: -30, IntakeTempC: -30,
				AccelXG: -7, AccelYG: -7,
				LeanDeg: -90, LeanSignedDeg: -90,
				PitchDegS: -300,
			},
		},
		{
			name: "centered lean and pitch",
			in: Sample{
				Lap: 2, EpochMs: 2000,
				Raw: channelState{LeanRaw: 9000, LeanSigned: 9000, Pitch: 30000},
			},
			want: CalibratedSample{
				Lap: 2, EpochMs: 2000,
				WaterTempC: -30, IntakeTempC: -30,
				AccelXG: -7, AccelYG: -7,
				LeanDeg: 0, LeanSignedDeg: 0,
				PitchDegS: 0,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Calibrated()
			require.InDelta(t, tc.want.LeanDeg, got.LeanDeg, 1e-9)
			require.InDelta(t, tc.want.PitchDegS, got.PitchDegS, 1e-9)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Calibrated() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
