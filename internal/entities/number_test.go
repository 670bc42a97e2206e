package entities_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberRe = regexp.MustCompile(`^ORD\d{8}\d{4}$`)

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2024, 5, 17, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "ORD20240517", entities.OrderNumberPrefix(day))
	assert.Equal(t, "ORD202405170007", entities.FormatOrderNumber(day, 7))
	assert.Equal(t, "ORD202405179999", entities.FormatOrderNumber(day, 9999))
	assert.Regexp(t, orderNumberRe, entities.FormatOrderNumber(day, 1))
}

func TestParseOrderNumber(t *testing.T) {
	testCases := []struct {
		name       string
		number     string
		wantPrefix string
		wantSeq    int
		wantErr    bool
	}{
		{name: "valid", number: "ORD202405170007", wantPrefix: "ORD20240517", wantSeq: 7},
		{name: "valid max", number: "ORD202412319999", wantPrefix: "ORD20241231", wantSeq: 9999},
		{name: "wrong prefix", number: "INV202405170007", wantErr: true},
		{name: "too short", number: "ORD2024051707", wantErr: true},
		{name: "bad date", number: "ORD202413170007", wantErr: true},
		{name: "bad sequence", number: "ORD20240517000x", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prefix, seq, err := entities.ParseOrderNumber(tc.number)
			if tc.wantErr {
				assert.ErrorIs(t, err, entities.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPrefix, prefix)
			assert.Equal(t, tc.wantSeq, seq)
		})
	}
}
