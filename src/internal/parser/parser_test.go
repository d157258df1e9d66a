package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"vislog/src/internal/core"

	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBlob = "Pid# 1 Tim# Tue Jul 9 09:09:27 2024 612542us Tid# 1 Log# default Src# server Fil# vorb.C Lin# 1 Lvl# INFO Msg# test"

// brokerTime renders t the way the broker writes timestamps
func brokerTime(t time.Time) string {
	return t.Format("Mon Jan 2 15:04:05 2006") + fmt.Sprintf(" %06dus", t.Nanosecond()/1000)
}

func blobOf(r core.Record) string {
	return fmt.Sprintf("Pid# %d Tim# %s Tid# %d Log# %s Src# %s Fil# %s Lin# %d Lvl# %s Msg# %s\n",
		r.PID, brokerTime(r.Time), r.TID, r.Logger, r.Component, r.File, r.Line, r.Level, r.Message)
}

func TestParser_Parse(t *testing.T) {
	p := New("")

	t.Run("Scenario", func(t *testing.T) {
		rec, err := p.Parse(sampleBlob)
		require.NoError(t, err)

		assert.Equal(t, uint64(1), rec.PID)
		assert.Equal(t, uint64(1), rec.TID)
		assert.Equal(t, "default", rec.Logger)
		assert.Equal(t, "server", rec.Component)
		assert.Equal(t, "vorb.C", rec.File)
		assert.Equal(t, uint64(1), rec.Line)
		assert.Equal(t, core.LevelInfo, rec.Level)
		assert.Equal(t, "test", rec.Message)

		want := time.Date(2024, time.July, 9, 9, 9, 27, 612542000, time.UTC)
		assert.True(t, want.Equal(rec.Time), "got %s", rec.Time)
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := p.Parse(sampleBlob)
		require.NoError(t, err)
		second, err := p.Parse(sampleBlob)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("MessageKeepsMarkerLikeText", func(t *testing.T) {
		blob := strings.Replace(sampleBlob, "Msg# test", "Msg#   saw Pid# 7 and Lvl# DEBUG inside  \n", 1)
		rec, err := p.Parse(blob)
		require.NoError(t, err)
		assert.Equal(t, "saw Pid# 7 and Lvl# DEBUG inside", rec.Message)
		assert.Equal(t, core.LevelInfo, rec.Level)
	})

	t.Run("MultilineMessage", func(t *testing.T) {
		blob := strings.Replace(sampleBlob, "Msg# test", "Msg# first line\n\tsecond line\n", 1)
		rec, err := p.Parse(blob)
		require.NoError(t, err)
		assert.Equal(t, "first line\n\tsecond line", rec.Message)
	})

	t.Run("LevelAlias", func(t *testing.T) {
		rec, err := p.Parse(strings.Replace(sampleBlob, "Lvl# INFO", "Lvl# wrn", 1))
		require.NoError(t, err)
		assert.Equal(t, core.LevelWarning, rec.Level)
	})

	t.Run("GeneratedRecords", func(t *testing.T) {
		gofakeit.Seed(42)
		for i := 0; i < 50; i++ {
			want := fakeRecord()
			got, err := p.Parse(blobOf(want))
			require.NoError(t, err)
			assert.True(t, want.Time.Equal(got.Time))
			got.Time = want.Time
			assert.Equal(t, want, got)
		}
	})
}

func TestParser_MissingMarker(t *testing.T) {
	p := New("")

	for _, m := range core.Grammar {
		t.Run(m.Field, func(t *testing.T) {
			blob := strings.Replace(sampleBlob, m.Tag, "", 1)
			_, err := p.Parse(blob)
			require.Error(t, err)

			var mm *core.MissingMarkerError
			require.True(t, errors.As(err, &mm), "unexpected error type %T", err)
			assert.Equal(t, m.Tag, mm.Marker)
			assert.Equal(t, m.Field, mm.Field)
			assert.Equal(t, blob, mm.Blob)
			assert.Contains(t, err.Error(), m.Tag)
		})
	}

	t.Run("EmptyBlob", func(t *testing.T) {
		_, err := p.Parse("")
		var mm *core.MissingMarkerError
		require.True(t, errors.As(err, &mm))
		assert.Equal(t, core.MarkerPID, mm.Marker)
	})

	t.Run("MarkerOnlyInMessage", func(t *testing.T) {
		// Tim# is found inside the message, so Tid# is the marker missing after it
		blob := strings.Replace(sampleBlob, "Tim# Tue Jul 9 09:09:27 2024 612542us ", "", 1) + " Tim# later"
		_, err := p.Parse(blob)
		var mm *core.MissingMarkerError
		require.True(t, errors.As(err, &mm))
		assert.Equal(t, core.MarkerTID, mm.Marker)
	})

	t.Run("OutOfOrder", func(t *testing.T) {
		blob := "Pid# 1 Tid# 1 Tim# Tue Jul 9 09:09:27 2024 612542us Log# a Src# b Fil# c Lin# 1 Lvl# INFO Msg# m"
		_, err := p.Parse(blob)
		var mm *core.MissingMarkerError
		require.True(t, errors.As(err, &mm))
		assert.Equal(t, core.MarkerTID, mm.Marker)
	})
}

func TestParser_ConversionErrors(t *testing.T) {
	p := New("")

	testCases := []struct {
		name  string
		from  string
		to    string
		field string
		raw   string
	}{
		{name: "Pid", from: "Pid# 1", to: "Pid# x1", field: core.FieldPID, raw: "x1"},
		{name: "NegativePid", from: "Pid# 1", to: "Pid# -1", field: core.FieldPID, raw: "-1"},
		{name: "Tid", from: "Tid# 1", to: "Tid# 0x1f", field: core.FieldTID, raw: "0x1f"},
		{name: "Line", from: "Lin# 1", to: "Lin# ", field: core.FieldLine, raw: ""},
		{name: "Level", from: "Lvl# INFO", to: "Lvl# LOUD", field: core.FieldLevel, raw: "LOUD"},
		{name: "Time", from: "Tue Jul 9 09:09:27 2024 612542us", to: "yesterday", field: core.FieldTime, raw: "yesterday"},
		{name: "TimeShortMicros", from: "612542us", to: "5us", field: core.FieldTime, raw: "Tue Jul 9 09:09:27 2024 5us"},
		{name: "TimeLongMicros", from: "612542us", to: "6125420us", field: core.FieldTime, raw: "Tue Jul 9 09:09:27 2024 6125420us"},
		{name: "TimeMissingSuffix", from: "612542us", to: "612542", field: core.FieldTime, raw: "Tue Jul 9 09:09:27 2024 612542"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse(strings.Replace(sampleBlob, tc.from, tc.to, 1))
			require.Error(t, err)

			var fe *core.FieldConversionError
			require.True(t, errors.As(err, &fe), "unexpected error type %T", err)
			assert.Equal(t, tc.field, fe.Field)
			assert.Equal(t, tc.raw, fe.Raw)
			assert.Contains(t, err.Error(), "'"+tc.raw+"'")
		})
	}
}

func TestParser_CustomTimeFormat(t *testing.T) {
	p := New("%Y-%m-%d %H:%M:%S")
	assert.Equal(t, "%Y-%m-%d %H:%M:%S", p.TimeFormat())

	blob := strings.Replace(sampleBlob, "Tue Jul 9 09:09:27 2024 612542us", "2024-07-09 09:09:27", 1)
	rec, err := p.Parse(blob)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 7, 9, 9, 9, 27, 0, time.UTC).Equal(rec.Time))

	_, err = p.Parse(sampleBlob)
	assert.Error(t, err)
}

func TestFields(t *testing.T) {
	fields, err := Fields(sampleBlob)
	require.NoError(t, err)
	assert.Len(t, fields, len(core.Grammar))
	assert.Equal(t, "Tue Jul 9 09:09:27 2024 612542us", fields[core.FieldTime])
	assert.Equal(t, "vorb.C", fields[core.FieldFile])
}

func TestParseTime(t *testing.T) {
	t.Run("Unix", func(t *testing.T) {
		got, err := ParseTime("UNIX", "1720516167")
		require.NoError(t, err)
		assert.Equal(t, int64(1720516167), got.Unix())
		assert.Equal(t, "1720516167", FormatTime("UNIX", got))
	})

	t.Run("UnixInvalid", func(t *testing.T) {
		_, err := ParseTime("UNIX", "soon")
		assert.Error(t, err)
	})

	t.Run("MicrosNeedSixDigits", func(t *testing.T) {
		_, err := ParseTime(core.DefaultTimeFormat, "Tue Jul 9 09:09:27 2024 5us")
		assert.ErrorContains(t, err, "six digits")

		got, err := ParseTime(core.DefaultTimeFormat, "Tue Jul 9 09:09:27 2024 000005us")
		require.NoError(t, err)
		assert.Equal(t, 5000, got.Nanosecond())
	})

	t.Run("FormatRoundTrip", func(t *testing.T) {
		ts := time.Date(2024, 11, 21, 8, 0, 1, 5000, time.UTC)
		layout := "%Y-%m-%d %H:%M:%S.%f"
		got, err := ParseTime(layout, FormatTime(layout, ts))
		require.NoError(t, err)
		assert.True(t, ts.Equal(got))
	})
}

func fakeRecord() core.Record {
	levels := core.Levels()
	return core.Record{
		PID:       uint64(gofakeit.Number(1, 99999)),
		Time:      time.Date(gofakeit.Number(2000, 2030), time.Month(gofakeit.Number(1, 12)), gofakeit.Number(1, 28), gofakeit.Number(0, 23), gofakeit.Number(0, 59), gofakeit.Number(0, 59), gofakeit.Number(0, 999999)*1000, time.UTC),
		TID:       uint64(gofakeit.Number(1, 99999)),
		Logger:    gofakeit.Word(),
		Component: gofakeit.Word(),
		File:      gofakeit.Word() + ".C",
		Line:      uint64(gofakeit.Number(1, 5000)),
		Level:     levels[gofakeit.Number(0, len(levels)-1)],
		Message:   gofakeit.Sentence(8),
	}
}
