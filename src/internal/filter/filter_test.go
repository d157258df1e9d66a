package filter

import (
	"errors"
	"testing"
	"time"

	"vislog/src/internal/config"
	"vislog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const isoFormat = "%Y-%m-%d %H:%M:%S"

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func testRecord() core.Record {
	return core.Record{
		PID:       10,
		Time:      time.Date(2024, 7, 9, 9, 9, 27, 612542000, time.UTC),
		TID:       3,
		Logger:    "default",
		Component: "server",
		File:      "vorb.C",
		Line:      42,
		Level:     core.LevelError,
		Message:   "connection refused by peer",
	}
}

func TestBuildCriteria(t *testing.T) {
	t.Run("NothingSupplied", func(t *testing.T) {
		criteria, err := BuildCriteria(config.FilterConfig{}, core.DefaultTimeFormat)
		require.NoError(t, err)
		assert.Empty(t, criteria)
	})

	t.Run("AllSuppliedInOrder", func(t *testing.T) {
		cfg := config.FilterConfig{
			PID: "10", TID: "3", Logger: "default", Component: "server", Level: "err",
			Message: "refused", Before: "2024-07-09 10:00:00", After: "2024-07-09 09:00:00", Source: "vorb.C:42",
		}
		criteria, err := BuildCriteria(cfg, isoFormat)
		require.NoError(t, err)

		names := make([]string, len(criteria))
		for i, c := range criteria {
			names[i] = c.Name()
		}
		assert.Equal(t, []string{"tid", "logger", "component", "level", "message", "before", "after", "source", "pid"}, names)
		assert.Equal(t, LevelCriterion{Level: core.LevelError}, criteria[3])
		assert.Equal(t, SourceCriterion{File: "vorb.C", Line: 42, HasLine: true}, criteria[7])
	})

	t.Run("BrokerTimeFormat", func(t *testing.T) {
		criteria, err := BuildCriteria(config.FilterConfig{Before: "Tue Jul 9 09:09:27 2024 0us"}, core.DefaultTimeFormat)
		require.NoError(t, err)
		require.Len(t, criteria, 1)
		assert.Equal(t, BeforeCriterion{Unix: time.Date(2024, 7, 9, 9, 9, 27, 0, time.UTC).Unix()}, criteria[0])
	})

	t.Run("LooseTime", func(t *testing.T) {
		criteria, err := BuildCriteria(config.FilterConfig{After: "2024-07-09T09:09:27Z", LooseTime: true}, core.DefaultTimeFormat)
		require.NoError(t, err)
		require.Len(t, criteria, 1)
		assert.Equal(t, AfterCriterion{Unix: time.Date(2024, 7, 9, 9, 9, 27, 0, time.UTC).Unix()}, criteria[0])
	})

	errorCases := []struct {
		name   string
		cfg    config.FilterConfig
		option string
	}{
		{name: "BadTID", cfg: config.FilterConfig{TID: "three"}, option: "tid"},
		{name: "NegativePID", cfg: config.FilterConfig{PID: "-1"}, option: "pid"},
		{name: "BadLevel", cfg: config.FilterConfig{Level: "loud"}, option: "level"},
		{name: "BadRegex", cfg: config.FilterConfig{Message: "["}, option: "message"},
		{name: "BadBefore", cfg: config.FilterConfig{Before: "tomorrow"}, option: "before"},
		{name: "BadAfter", cfg: config.FilterConfig{After: "09/07/2024"}, option: "after"},
		{name: "BadLooseAfter", cfg: config.FilterConfig{After: "not a date", LooseTime: true}, option: "after"},
		{name: "EmptySourceLine", cfg: config.FilterConfig{Source: "vorb.C:"}, option: "source"},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			criteria, err := BuildCriteria(tc.cfg, isoFormat)
			require.Error(t, err)
			assert.Nil(t, criteria)

			var ce *core.ConfigurationError
			require.True(t, errors.As(err, &ce), "unexpected error type %T", err)
			assert.Equal(t, tc.option, ce.Option)
		})
	}
}

func TestCriterion_Accept(t *testing.T) {
	rec := testRecord()

	testCases := []struct {
		name      string
		criterion Criterion
		expected  bool
	}{
		{name: "PIDMatch", criterion: PIDCriterion{PID: 10}, expected: true},
		{name: "PIDMismatch", criterion: PIDCriterion{PID: 11}, expected: false},
		{name: "TIDMatch", criterion: TIDCriterion{TID: 3}, expected: true},
		{name: "TIDMismatch", criterion: TIDCriterion{TID: 4}, expected: false},
		{name: "LoggerExact", criterion: LoggerCriterion{Logger: "default"}, expected: true},
		{name: "LoggerPrefixIsNotEnough", criterion: LoggerCriterion{Logger: "def"}, expected: false},
		{name: "ComponentExact", criterion: ComponentCriterion{Component: "server"}, expected: true},
		{name: "ComponentCaseSensitive", criterion: ComponentCriterion{Component: "Server"}, expected: false},
		{name: "Level", criterion: LevelCriterion{Level: core.LevelError}, expected: true},
		{name: "LevelOther", criterion: LevelCriterion{Level: core.LevelCrit}, expected: false},
		{name: "SourceFile", criterion: SourceCriterion{File: "vorb.C"}, expected: true},
		{name: "SourceFileAndLine", criterion: SourceCriterion{File: "vorb.C", Line: 42, HasLine: true}, expected: true},
		{name: "SourceWrongLine", criterion: SourceCriterion{File: "vorb.C", Line: 43, HasLine: true}, expected: false},
		{name: "SourceWrongFile", criterion: SourceCriterion{File: "orb.C"}, expected: false},
		{name: "BeforeSameSecond", criterion: BeforeCriterion{Unix: rec.Time.Unix()}, expected: true},
		{name: "BeforeEarlier", criterion: BeforeCriterion{Unix: rec.Time.Unix() - 1}, expected: false},
		{name: "AfterSameSecond", criterion: AfterCriterion{Unix: rec.Time.Unix()}, expected: true},
		{name: "AfterLater", criterion: AfterCriterion{Unix: rec.Time.Unix() + 1}, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.criterion.Accept(rec))
		})
	}

	t.Run("MessageRegex", func(t *testing.T) {
		criteria, err := BuildCriteria(config.FilterConfig{Message: "refused\\s+by"}, isoFormat)
		require.NoError(t, err)
		assert.True(t, criteria[0].Accept(rec))

		criteria, err = BuildCriteria(config.FilterConfig{Message: "^refused"}, isoFormat)
		require.NoError(t, err)
		assert.False(t, criteria[0].Accept(rec))
	})
}

func TestTimeBoundsIgnoreSubSecond(t *testing.T) {
	early := testRecord()
	early.Time = time.Date(2024, 7, 9, 9, 9, 27, 1000, time.UTC)
	late := testRecord()
	late.Time = time.Date(2024, 7, 9, 9, 9, 27, 999999000, time.UTC)

	for _, value := range []string{"2024-07-09 09:09:26", "2024-07-09 09:09:27", "2024-07-09 09:09:28"} {
		criteria, err := BuildCriteria(config.FilterConfig{Before: value, After: value}, isoFormat)
		require.NoError(t, err)
		for _, c := range criteria {
			assert.Equal(t, c.Accept(early), c.Accept(late), "%s %s", c.Name(), value)
		}
	}

	criteria, err := BuildCriteria(config.FilterConfig{Before: "2024-07-09 09:09:27", After: "2024-07-09 09:09:27"}, isoFormat)
	require.NoError(t, err)
	chain := NewChainFrom(criteria, newTestLogger())
	assert.True(t, chain.Apply(early))
	assert.True(t, chain.Apply(late))
}

func TestParseSource(t *testing.T) {
	src, err := parseSource("vorb.C")
	require.NoError(t, err)
	assert.Equal(t, SourceCriterion{File: "vorb.C"}, src)

	src, err = parseSource("C:dir")
	require.NoError(t, err)
	assert.Equal(t, SourceCriterion{File: "C:dir"}, src)

	_, err = parseSource(":12")
	assert.Error(t, err)
}
