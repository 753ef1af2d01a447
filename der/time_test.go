package der

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTCTime(t *testing.T) {
	tests := []struct {
		text string
		time time.Time
	}{
		{"910506234540Z", time.Date(1991, 5, 6, 23, 45, 40, 0, time.UTC)},
		{"500101000000Z", time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"491231235959Z", time.Date(2049, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"000229120000Z", time.Date(2000, 2, 29, 12, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			b := Write(func(w *Writer) {
				w.WriteTLV(TagUTCTime, []byte(tc.text))
			})
			var v UTCTime
			require.NoError(t, ParseSingle(b, &v))
			assert.True(t, tc.time.Equal(v.Time), "got %v", v.Time)

			assert.Equal(t, b, writeElement(UTCTime{tc.time}))
		})
	}
}

func TestUTCTime_invalid(t *testing.T) {
	for _, s := range []string{
		"9105062345Z",
		"910506234540",
		"910506234540+0100",
		"910506234540.5Z",
		"911306234540Z",
		"910506234560Z",
		"",
	} {
		t.Run(s, func(t *testing.T) {
			b := Write(func(w *Writer) {
				w.WriteTLV(TagUTCTime, []byte(s))
			})
			var v UTCTime
			err := ParseSingle(b, &v)
			assert.True(t, Is(err, ErrInvalidValue), "got %v", err)
		})
	}
}

func TestUTCTimeRepresentable(t *testing.T) {
	assert.True(t, UTCTimeRepresentable(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, UTCTimeRepresentable(time.Date(2049, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, UTCTimeRepresentable(time.Date(1949, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, UTCTimeRepresentable(time.Date(2050, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGeneralizedTime(t *testing.T) {
	tests := []struct {
		text string
		time time.Time
	}{
		{"19851106210627Z", time.Date(1985, 11, 6, 21, 6, 27, 0, time.UTC)},
		{"19851106210627.3Z", time.Date(1985, 11, 6, 21, 6, 27, 300000000, time.UTC)},
		{"20500101000000Z", time.Date(2050, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"99991231235959Z", time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			b := Write(func(w *Writer) {
				w.WriteTLV(TagGeneralizedTime, []byte(tc.text))
			})
			var v GeneralizedTime
			require.NoError(t, ParseSingle(b, &v))
			assert.True(t, tc.time.Equal(v.Time), "got %v", v.Time)

			assert.Equal(t, b, writeElement(GeneralizedTime{tc.time}))
		})
	}
}

func TestGeneralizedTime_invalid(t *testing.T) {
	for _, s := range []string{
		"19851106210627",
		"198511062106Z",
		"19851106210627.30Z",
		"19851106210627.Z",
		"19851106210627+0100",
		"19851106250627Z",
	} {
		t.Run(s, func(t *testing.T) {
			b := Write(func(w *Writer) {
				w.WriteTLV(TagGeneralizedTime, []byte(s))
			})
			var v GeneralizedTime
			err := ParseSingle(b, &v)
			assert.True(t, Is(err, ErrInvalidValue), "got %v", err)
		})
	}
}

func TestTimes_convertToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	tm := time.Date(2020, 1, 1, 2, 0, 0, 0, zone)
	assert.Equal(t, hex2bytes("170d 3139313233313030303030305a"), writeElement(UTCTime{tm}))
	assert.Equal(t, hex2bytes("180f 32303139313233313030303030305a"), writeElement(GeneralizedTime{tm}))
}
